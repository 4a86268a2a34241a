package domain

import (
	"errors"
	"fmt"
)

// ErrCodeConflict is returned when a product code collides with an
// existing record (unique constraint on products.code).
var ErrCodeConflict = errors.New("Data integrity violation exception")

// NotFoundError is returned when no product exists for the requested id.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find product by this id %d", e.ID)
}

// NewNotFoundError creates a not-found error for the given product id
func NewNotFoundError(id uint) *NotFoundError {
	return &NotFoundError{ID: id}
}
