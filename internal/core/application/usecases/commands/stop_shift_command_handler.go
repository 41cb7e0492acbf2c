package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// StopShiftCommandHandler marks a courier as off shift. Stopping an already
// stopped shift is a no-op.
type StopShiftCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewStopShiftCommandHandler creates a handler for stopping courier shifts.
func NewStopShiftCommandHandler(uowFactory CourierUoWFactory) StopShiftCommandHandler {
	return StopShiftCommandHandler{uowFactory: uowFactory}
}

// Handle loads the courier, stops the shift, and persists the change.
// Retries on concurrent modification.
func (h *StopShiftCommandHandler) Handle(ctx context.Context, cmd StopShiftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retry.Optimistic(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
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

		courierEntity.StopShift()

		if err = uow.CourierRepository().Update(ctx, courierEntity); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
