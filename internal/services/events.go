package services

import (
	"context"

	"go.uber.org/zap"
)

// EventPublisher publishes a domain event under a routing key.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// publishEvent is best effort: a nil publisher disables events and
// a failed publish is logged, never returned.
func publishEvent(ctx context.Context, events EventPublisher, log *zap.Logger, routingKey string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
