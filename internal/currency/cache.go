package currency

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/pkg/logger"
)

// RateSource provides the current USD buying rate as a decimal string
type RateSource interface {
	FetchUSDBuyingRate(ctx context.Context) (string, error)
}

// Cache holds the single process-wide EUR to USD rate. The rate is
// populated lazily on first read or explicitly via Populate, and swapped
// atomically so concurrent readers never observe a partial write. There is
// no TTL; the value lives until the next successful Populate or process
// restart.
type Cache struct {
	source RateSource
	rate   atomic.Pointer[decimal.Decimal]
}

// NewCache creates an empty cache backed by the given rate source
func NewCache(source RateSource) *Cache {
	return &Cache{source: source}
}

// Rate returns the cached USD rate, populating the cache first when it is
// empty. Concurrent lazy populates may both fetch; last write wins and the
// results are identical, so no lock is taken around the fetch.
func (c *Cache) Rate(ctx context.Context) (decimal.Decimal, error) {
	if rate := c.rate.Load(); rate != nil {
		return *rate, nil
	}

	logger.Logger.Info().Msg("Currency cache is empty")
	if err := c.Populate(ctx); err != nil {
		return decimal.Decimal{}, err
	}
	return *c.rate.Load(), nil
}

// Populate fetches the current USD rate, rounds it to 2 decimal places
// half-up and overwrites the cached value. On failure the previous value,
// if any, is left untouched.
func (c *Cache) Populate(ctx context.Context) error {
	logger.Logger.Info().Msg("Populating USD currency")

	raw, err := c.source.FetchUSDBuyingRate(ctx)
	if err != nil {
		return err
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("failed to parse usd rate %q: %w", raw, err)
	}

	rounded := rate.Round(2)
	c.rate.Store(&rounded)

	logger.Logger.Info().
		Str("rate", rounded.String()).
		Msg("Currency cache populated")
	return nil
}
