package command

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-catalog/kafka"
)

// EventPublisher delivers product domain events to the products topic
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, event kafka.ProductCreatedEvent) error
	PublishProductUpdated(ctx context.Context, event kafka.ProductUpdatedEvent) error
	PublishProductDeleted(ctx context.Context, event kafka.ProductDeletedEvent) error
}

// publishFailures counts absorbed event-publish errors. The mutation has
// already committed when a publish fails, so the failure never reaches the
// HTTP caller; this counter keeps it visible.
var publishFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_event_publish_failures_total",
		Help: "Total number of product event publish failures",
	},
	[]string{"action"},
)

func init() {
	prometheus.MustRegister(publishFailures)
}
