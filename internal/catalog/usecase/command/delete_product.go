package command

import (
	"context"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/kafka"
	"github.com/tair/product-catalog/pkg/logger"
)

// DeleteProductCommand represents the command to remove a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo      domain.ProductRepository
	publisher EventPublisher
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, publisher EventPublisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, publisher: publisher}
}

// Handle removes an existing product and publishes a deleted event
// carrying only the id.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	existing, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, existing.ID); err != nil {
		return err
	}

	event := kafka.NewProductDeletedEvent(existing.ID)
	if err := h.publisher.PublishProductDeleted(ctx, event); err != nil {
		publishFailures.WithLabelValues(string(kafka.ActionDelete)).Inc()
		logger.WithContext(ctx).Error().
			Err(err).
			Str("event_id", event.EventID).
			Uint("product_id", existing.ID).
			Msg("Failed to publish product deleted event")
	}

	return nil
}
