package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/kafka"
)

func TestDeleteProduct_RemovesAndPublishesIDOnlyEvent(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	handler := NewDeleteProductHandler(repo, publisher)

	existing := seedProduct(t, repo, "ABCDEFGHIJ", "Fancy chair")

	require.NoError(t, handler.Handle(context.Background(), DeleteProductCommand{ID: existing.ID}))

	_, err := repo.FindByID(context.Background(), existing.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)

	require.Len(t, publisher.deleted, 1)
	event := publisher.deleted[0]
	assert.Equal(t, kafka.ActionDelete, event.Action)
	assert.Equal(t, existing.ID, event.Product.ID)
	assert.NotEmpty(t, event.EventID)
}

func TestDeleteProduct_NotFoundPublishesNothing(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	handler := NewDeleteProductHandler(repo, publisher)

	err := handler.Handle(context.Background(), DeleteProductCommand{ID: 42})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Could not find product by this id 42", err.Error())
	assert.Empty(t, publisher.deleted)
}

func TestDeleteProduct_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	handler := NewDeleteProductHandler(repo, publisher)

	existing := seedProduct(t, repo, "ABCDEFGHIJ", "Fancy chair")

	require.NoError(t, handler.Handle(context.Background(), DeleteProductCommand{ID: existing.ID}))

	// Record is gone even though the event publish failed
	_, err := repo.FindByID(context.Background(), existing.ID)
	require.Error(t, err)
}
