package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// ProductRepositoryWithTracing decorates a ProductRepository with spans on
// the write path and the id/list reads. Code and name lookups pass through.
type ProductRepositoryWithTracing struct {
	domain.ProductRepository
}

// NewProductRepositoryWithTracing creates a tracing decorator around next
func NewProductRepositoryWithTracing(next domain.ProductRepository) *ProductRepositoryWithTracing {
	return &ProductRepositoryWithTracing{ProductRepository: next}
}

// Create records a span around the wrapped Create
func (r *ProductRepositoryWithTracing) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.code", product.Code),
			attribute.String("product.name", product.Name),
			attribute.String("product.price_eur", product.PriceEur.String()),
		),
	)
	defer span.End()

	err := r.ProductRepository.Create(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

// FindByID records a span around the wrapped FindByID
func (r *ProductRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	product, err := r.ProductRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.code", product.Code),
		attribute.Bool("product.is_available", product.IsAvailable),
	)
	return product, nil
}

// Update records a span around the wrapped Update
func (r *ProductRepositoryWithTracing) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.Int("product.id", int(product.ID)),
			attribute.String("product.code", product.Code),
		),
	)
	defer span.End()

	err := r.ProductRepository.Update(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Delete records a span around the wrapped Delete
func (r *ProductRepositoryWithTracing) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	err := r.ProductRepository.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindAll records a span around the wrapped FindAll
func (r *ProductRepositoryWithTracing) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	products, err := r.ProductRepository.FindAll(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("query.result_count", len(products)))
	return products, nil
}
