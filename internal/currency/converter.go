package currency

import (
	"context"

	"github.com/shopspring/decimal"
)

// Converter computes USD prices from EUR prices using the cached rate
type Converter struct {
	cache *Cache
}

// NewConverter creates a converter over the given rate cache
func NewConverter(cache *Cache) *Converter {
	return &Converter{cache: cache}
}

// ToUSD converts a EUR price to USD, rounded to 2 decimal places half-up.
// The result only changes when the cache is repopulated between calls.
func (c *Converter) ToUSD(ctx context.Context, priceEur decimal.Decimal) (decimal.Decimal, error) {
	rate, err := c.cache.Rate(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return priceEur.Mul(rate).Round(2), nil
}
