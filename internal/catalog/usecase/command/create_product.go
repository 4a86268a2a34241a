package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/kafka"
	"github.com/tair/product-catalog/pkg/logger"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Code        string
	Name        string
	PriceEur    decimal.Decimal
	Description string
	IsAvailable bool
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo      domain.ProductRepository
	publisher EventPublisher
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, publisher EventPublisher) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, publisher: publisher}
}

// Handle persists the product and publishes a created event. A publish
// failure is logged and absorbed; the mutation has already committed.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	existing, err := h.repo.FindByCode(ctx, cmd.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCodeConflict
	}

	product := &domain.Product{
		Code:        cmd.Code,
		Name:        cmd.Name,
		PriceEur:    cmd.PriceEur,
		Description: cmd.Description,
		IsAvailable: cmd.IsAvailable,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	event := kafka.NewProductCreatedEvent(product)
	if err := h.publisher.PublishProductCreated(ctx, event); err != nil {
		publishFailures.WithLabelValues(string(kafka.ActionCreate)).Inc()
		logger.WithContext(ctx).Error().
			Err(err).
			Str("event_id", event.EventID).
			Uint("product_id", product.ID).
			Msg("Failed to publish product created event")
	}

	return product, nil
}
