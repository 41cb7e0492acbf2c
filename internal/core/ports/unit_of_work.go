package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and tracks aggregate changes; on commit the pending
// domain events of every tracked aggregate are drained into the outbox inside
// the same transaction. Client code must explicitly manage the transaction
// lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit stores the tracked aggregates' pending events in the outbox and
	// commits the current transaction. Returns an error if no transaction is
	// active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context) error

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
