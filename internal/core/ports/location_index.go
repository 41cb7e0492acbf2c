package ports

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// CourierLocation is a courier's last reported position.
type CourierLocation struct {
	CourierID  kernel.UUID
	Location   kernel.GeoPoint
	ReportedAt time.Time
}

// LocationIndex keeps the last known location of every courier and answers
// proximity queries for dispatch. Locations are transient operational data:
// the index lives in memory and is rebuilt from fresh reports after a
// restart, so its methods carry no context and return no errors.
type LocationIndex interface {
	// Report records the courier's current position, replacing any earlier one.
	Report(courierID kernel.UUID, location kernel.GeoPoint, reportedAt time.Time)

	// Get returns the courier's last reported position.
	Get(courierID kernel.UUID) (CourierLocation, bool)

	// Nearest returns up to limit couriers closest to the given point,
	// nearest first, skipping the excluded ids.
	Nearest(to kernel.GeoPoint, limit int, exclude []kernel.UUID) []CourierLocation
}
