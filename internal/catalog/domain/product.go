package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the product entity
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Code        string          `json:"code" gorm:"size:10;uniqueIndex;not null"`
	Name        string          `json:"name" gorm:"not null"`
	PriceEur    decimal.Decimal `json:"priceEur" gorm:"type:numeric;not null"`
	Description string          `json:"description"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductRepository defines the contract for product data access.
// FindByCode reports a missing product as (nil, nil); an error always
// means the lookup itself failed.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)
	FindByName(ctx context.Context, name string, limit, offset int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
