package currency

import (
	"context"
	"sync"
	"time"

	"github.com/tair/product-catalog/pkg/logger"
)

// Refresher periodically repopulates the currency cache. Refresh is opt-in:
// with Enabled false every tick logs and returns without touching the cache.
// A failed refresh is logged and swallowed so the next tick always runs.
type Refresher struct {
	cache    *Cache
	interval time.Duration
	enabled  bool

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// RefresherConfig configures the currency cache refresher
type RefresherConfig struct {
	Interval time.Duration
	Enabled  bool
}

// NewRefresher creates a new cache refresher
func NewRefresher(cache *Cache, cfg RefresherConfig) *Refresher {
	return &Refresher{
		cache:    cache,
		interval: cfg.Interval,
		enabled:  cfg.Enabled,
		stopChan: make(chan struct{}),
	}
}

// Start begins the refresh loop
func (r *Refresher) Start() {
	r.wg.Add(1)
	go r.run()

	logger.Logger.Info().
		Dur("interval", r.interval).
		Bool("enabled", r.enabled).
		Msg("Currency refresher started")
}

// Stop shuts the refresh loop down and waits for it to finish
func (r *Refresher) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.refresh(context.Background())
		}
	}
}

// refresh performs a single scheduled refresh. It never propagates
// failures; a missed refresh waits for the next tick.
func (r *Refresher) refresh(ctx context.Context) {
	logger.Logger.Info().Msg("USD currency refresh started")

	if !r.enabled {
		logger.Logger.Info().Msg("USD currency refresh is disabled")
		return
	}

	if err := r.cache.Populate(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Error in populating USD currency")
	}

	logger.Logger.Info().Msg("USD currency refresh finished")
}
