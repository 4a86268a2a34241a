package command

import (
	"context"
	"sort"
	"strings"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/kafka"
)

// fakeRepo is an in-memory domain.ProductRepository
type fakeRepo struct {
	products      map[uint]domain.Product
	nextID        uint
	findByCodeErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[uint]domain.Product{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, product *domain.Product) error {
	for _, p := range r.products {
		if p.Code == product.Code {
			return domain.ErrCodeConflict
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.NewNotFoundError(id)
	}
	return &p, nil
}

func (r *fakeRepo) FindByCode(_ context.Context, code string) (*domain.Product, error) {
	if r.findByCodeErr != nil {
		return nil, r.findByCodeErr
	}
	for _, p := range r.products {
		if p.Code == code {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context, limit, offset int) ([]domain.Product, error) {
	ids := make([]uint, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var page []domain.Product
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(page) == limit {
			break
		}
		page = append(page, r.products[id])
	}
	return page, nil
}

func (r *fakeRepo) FindByName(ctx context.Context, name string, limit, offset int) ([]domain.Product, error) {
	all, _ := r.FindAll(ctx, len(r.products), 0)
	var matched []domain.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			matched = append(matched, p)
		}
	}
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeRepo) Update(_ context.Context, product *domain.Product) error {
	for _, p := range r.products {
		if p.Code == product.Code && p.ID != product.ID {
			return domain.ErrCodeConflict
		}
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

// fakePublisher records published events and optionally fails
type fakePublisher struct {
	created []kafka.ProductCreatedEvent
	updated []kafka.ProductUpdatedEvent
	deleted []kafka.ProductDeletedEvent
	err     error
}

func (p *fakePublisher) PublishProductCreated(ctx context.Context, event kafka.ProductCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, event)
	return nil
}

func (p *fakePublisher) PublishProductUpdated(ctx context.Context, event kafka.ProductUpdatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.updated = append(p.updated, event)
	return nil
}

func (p *fakePublisher) PublishProductDeleted(ctx context.Context, event kafka.ProductDeletedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.deleted = append(p.deleted, event)
	return nil
}
