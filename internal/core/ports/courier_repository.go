// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the event publisher, the
// courier location index, the payment gateway, and the timeout scheduler.
// Adapters implement them; use cases depend only on these interfaces.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate. Fails with a
	// version conflict when the stored aggregate has moved past the version
	// this one was loaded at.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllOnShift retrieves every courier currently on shift.
	GetAllOnShift(ctx context.Context) ([]*courier.Courier, error)

	// GetByIDsOnShift retrieves the couriers among ids that are on shift.
	// Couriers that are off shift or unknown are silently omitted; dispatch
	// treats them as unavailable candidates.
	GetByIDsOnShift(ctx context.Context, ids []kernel.UUID) ([]*courier.Courier, error)
}
