package courier

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/kernel"
)

// Routing keys for courier events.
const (
	QueueCourierAdded        = "courier.added"
	QueueCourierShiftStarted = "courier.shiftStarted"
	QueueCourierShiftStopped = "courier.shiftStopped"
	QueueLocationUpdated     = "courier.locationUpdated"
)

// CourierAdded is published when a new courier is registered.
type CourierAdded struct {
	CourierID uuid.UUID `json:"courierId"`
	Name      string    `json:"name"`
	OnShift   bool      `json:"onShift"`
}

// RoutingKey implements kernel.DomainEvent.
func (CourierAdded) RoutingKey() string { return QueueCourierAdded }

// CourierShiftStarted is published when a courier declares availability.
type CourierShiftStarted struct {
	CourierID uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (CourierShiftStarted) RoutingKey() string { return QueueCourierShiftStarted }

// CourierShiftStopped is published when a courier ends their shift.
type CourierShiftStopped struct {
	CourierID uuid.UUID `json:"courierId"`
}

// RoutingKey implements kernel.DomainEvent.
func (CourierShiftStopped) RoutingKey() string { return QueueCourierShiftStopped }

// CourierLocationUpdated is published on every location report so interested
// consumers (e.g. live order tracking) can follow the courier.
type CourierLocationUpdated struct {
	CourierID  uuid.UUID       `json:"courierId"`
	Location   kernel.GeoPoint `json:"location"`
	ReportedAt time.Time       `json:"reportedAt"`
}

// RoutingKey implements kernel.DomainEvent.
func (CourierLocationUpdated) RoutingKey() string { return QueueLocationUpdated }
