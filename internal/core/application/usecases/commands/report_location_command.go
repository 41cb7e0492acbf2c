package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand carries a courier's current position. Couriers send
// it periodically while on shift; dispatch ranks candidates by the last
// reported position.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	courierID  kernel.UUID
	location   kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to record a courier's position.
func NewReportLocationCommand(courierID kernel.UUID, location kernel.GeoPoint, reportedAt time.Time) (ReportLocationCommand, error) {
	if err := errors.Join(courierID.Validate(), location.Validate()); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		courierID:  courierID,
		location:   location,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c ReportLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c ReportLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// ReportedAt returns when the position was captured.
func (c ReportLocationCommand) ReportedAt() time.Time {
	return c.reportedAt
}
