package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event captured in the same transaction as the
// state change that produced it, waiting to be published to the broker.
type OutboxMessage struct {
	ID         kernel.UUID
	RoutingKey string
	Payload    []byte
	CreatedAt  time.Time
}

// OutboxRepository defines the persistence contract for the transactional
// outbox. Events are written inside the business transaction and relayed to
// the broker afterwards, so a publish never precedes its commit.
type OutboxRepository interface {
	// Add stores messages for later publication.
	Add(ctx context.Context, messages []OutboxMessage) error

	// GetUnpublished retrieves up to limit unpublished messages, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished marks the given messages as delivered to the broker.
	MarkPublished(ctx context.Context, ids []kernel.UUID) error
}
