package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates. An
// order is always stored and loaded together with its delivery and the
// delivery's requests.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Fails with a
	// version conflict when the stored aggregate has moved past the version
	// this one was loaded at.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCourier retrieves the orders in the given set the courier is
	// actively working on. Dispatch loads them to estimate the courier's
	// remaining workload.
	GetByCourier(ctx context.Context, orderIDs []kernel.UUID) ([]*order.Order, error)

	// GetAllUncompleted retrieves every order that has not reached a terminal
	// status.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)

	// GetWithStaleRequests retrieves orders whose delivery has an open
	// courier request issued before the cutoff. The timeout sweep expires
	// those requests.
	GetWithStaleRequests(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
