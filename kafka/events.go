package kafka

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// Action identifies the mutation an event describes
type Action string

// Event actions
const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// eventTimeLayout renders UTC instants with millisecond precision and a
// literal Z suffix.
const eventTimeLayout = "2006-01-02T15:04:05.000Z"

// ProductPayload is the product snapshot embedded in created and updated
// events.
type ProductPayload struct {
	ID          uint            `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	PriceEur    decimal.Decimal `json:"priceEur"`
	Description string          `json:"description"`
	IsAvailable bool            `json:"isAvailable"`
}

// DeletedProductPayload carries only the id of the removed product
type DeletedProductPayload struct {
	ID uint `json:"id"`
}

// ProductCreatedEvent is published after a product is persisted
type ProductCreatedEvent struct {
	EventID   string         `json:"eventId"`
	Timestamp string         `json:"timestamp"`
	Action    Action         `json:"action"`
	Product   ProductPayload `json:"product"`
}

// ProductUpdatedEvent is published after a product is overwritten
type ProductUpdatedEvent struct {
	EventID   string         `json:"eventId"`
	Timestamp string         `json:"timestamp"`
	Action    Action         `json:"action"`
	Product   ProductPayload `json:"product"`
}

// ProductDeletedEvent is published after a product is removed
type ProductDeletedEvent struct {
	EventID   string                `json:"eventId"`
	Timestamp string                `json:"timestamp"`
	Action    Action                `json:"action"`
	Product   DeletedProductPayload `json:"product"`
}

// NewProductCreatedEvent builds a created event from a persisted product
func NewProductCreatedEvent(product *domain.Product) ProductCreatedEvent {
	return ProductCreatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: eventTimestamp(),
		Action:    ActionCreate,
		Product:   newProductPayload(product),
	}
}

// NewProductUpdatedEvent builds an updated event from a persisted product
func NewProductUpdatedEvent(product *domain.Product) ProductUpdatedEvent {
	return ProductUpdatedEvent{
		EventID:   uuid.NewString(),
		Timestamp: eventTimestamp(),
		Action:    ActionUpdate,
		Product:   newProductPayload(product),
	}
}

// NewProductDeletedEvent builds a deleted event carrying only the id
func NewProductDeletedEvent(id uint) ProductDeletedEvent {
	return ProductDeletedEvent{
		EventID:   uuid.NewString(),
		Timestamp: eventTimestamp(),
		Action:    ActionDelete,
		Product:   DeletedProductPayload{ID: id},
	}
}

func newProductPayload(product *domain.Product) ProductPayload {
	return ProductPayload{
		ID:          product.ID,
		Code:        product.Code,
		Name:        product.Name,
		PriceEur:    product.PriceEur,
		Description: product.Description,
		IsAvailable: product.IsAvailable,
	}
}

func eventTimestamp() string {
	return time.Now().UTC().Format(eventTimeLayout)
}
