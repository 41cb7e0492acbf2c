package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/retry"
)

// ReportLocationCommandHandler records a courier's position in the location
// index and publishes a CourierLocationUpdated event. The index is the only
// store dispatch consults for proximity; positions are never written to the
// database.
type ReportLocationCommandHandler struct {
	uowFactory    CourierUoWFactory
	locationIndex ports.LocationIndex
}

// NewReportLocationCommandHandler creates a handler for courier location reports.
func NewReportLocationCommandHandler(
	uowFactory CourierUoWFactory,
	locationIndex ports.LocationIndex,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory:    uowFactory,
		locationIndex: locationIndex,
	}
}

// Handle verifies the courier exists, updates the location index, and emits
// the location event through the courier aggregate.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := retry.Optimistic(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		courierEntity, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
		if err != nil {
			return err
		}

		courierEntity.RegisterEvent(courier.CourierLocationUpdated{
			CourierID:  cmd.CourierID().Bytes(),
			Location:   cmd.Location(),
			ReportedAt: cmd.ReportedAt(),
		})

		if err = uow.CourierRepository().Update(ctx, courierEntity); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
	if err != nil {
		return err
	}

	h.locationIndex.Report(cmd.CourierID(), cmd.Location(), cmd.ReportedAt())
	return nil
}
