package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products page by page.
// Page and size bounds are enforced by the HTTP boundary before the query
// reaches this handler.
type ListProductsQuery struct {
	Page int
	Size int
	Name string // Optional: case-insensitive substring filter
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query, ordered by id ascending
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	offset := query.Page * query.Size

	var products []domain.Product
	var err error
	if query.Name != "" {
		products, err = h.repo.FindByName(ctx, query.Name, query.Size, offset)
	} else {
		products, err = h.repo.FindAll(ctx, query.Size, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
