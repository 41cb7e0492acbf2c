package ports

import "context"

// EventPublisher delivers serialized domain events to the message broker.
// The outbox relay is its only caller; use cases never publish directly.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}
