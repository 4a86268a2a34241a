package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/kafka"
	"github.com/tair/product-catalog/pkg/logger"
)

// UpdateProductCommand represents the command to overwrite a product
type UpdateProductCommand struct {
	ID          uint
	Code        string
	Name        string
	PriceEur    decimal.Decimal
	Description string
	IsAvailable bool
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo      domain.ProductRepository
	publisher EventPublisher
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, publisher EventPublisher) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, publisher: publisher}
}

// Handle overwrites all mutable fields of an existing product, persists it
// and publishes an updated event. The id is immutable.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	existing, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	other, err := h.repo.FindByCode(ctx, cmd.Code)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != existing.ID {
		return nil, domain.ErrCodeConflict
	}

	existing.Code = cmd.Code
	existing.Name = cmd.Name
	existing.PriceEur = cmd.PriceEur
	existing.Description = cmd.Description
	existing.IsAvailable = cmd.IsAvailable

	if err := h.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	event := kafka.NewProductUpdatedEvent(existing)
	if err := h.publisher.PublishProductUpdated(ctx, event); err != nil {
		publishFailures.WithLabelValues(string(kafka.ActionUpdate)).Inc()
		logger.WithContext(ctx).Error().
			Err(err).
			Str("event_id", event.EventID).
			Uint("product_id", existing.ID).
			Msg("Failed to publish product updated event")
	}

	return existing, nil
}
