package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/kafka"
)

func TestCreateProduct_PersistsAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	handler := NewCreateProductHandler(repo, publisher)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Code:        "ABCDEFGHIJ",
		Name:        "Fancy chair",
		PriceEur:    decimal.RequireFromString("25.99"),
		Description: "four legs",
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "ABCDEFGHIJ", product.Code)

	require.Len(t, publisher.created, 1)
	event := publisher.created[0]
	assert.Equal(t, kafka.ActionCreate, event.Action)
	assert.Equal(t, product.ID, event.Product.ID)
	assert.Equal(t, "ABCDEFGHIJ", event.Product.Code)
	assert.True(t, event.Product.PriceEur.Equal(decimal.RequireFromString("25.99")))
	assert.NotEmpty(t, event.EventID)
}

func TestCreateProduct_DuplicateCodePublishesNothing(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	handler := NewCreateProductHandler(repo, publisher)

	cmd := CreateProductCommand{
		Code:     "ABCDEFGHIJ",
		Name:     "Fancy chair",
		PriceEur: decimal.RequireFromString("25.99"),
	}

	_, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Name = "Other chair"
	_, err = handler.Handle(context.Background(), cmd)
	require.ErrorIs(t, err, domain.ErrCodeConflict)

	assert.Len(t, publisher.created, 1)
}

func TestCreateProduct_CodeLookupFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.findByCodeErr = errors.New("connection refused")
	publisher := &fakePublisher{}
	handler := NewCreateProductHandler(repo, publisher)

	_, err := handler.Handle(context.Background(), CreateProductCommand{
		Code:     "ABCDEFGHIJ",
		Name:     "Fancy chair",
		PriceEur: decimal.RequireFromString("25.99"),
	})
	require.ErrorIs(t, err, repo.findByCodeErr)
	assert.NotErrorIs(t, err, domain.ErrCodeConflict)

	assert.Empty(t, repo.products, "nothing persisted on a failed lookup")
	assert.Empty(t, publisher.created)
}

func TestCreateProduct_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := newFakeRepo()
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	handler := NewCreateProductHandler(repo, publisher)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Code:     "ABCDEFGHIJ",
		Name:     "Fancy chair",
		PriceEur: decimal.RequireFromString("25.99"),
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	// Mutation committed despite the publish fault
	stored, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHIJ", stored.Code)
}
