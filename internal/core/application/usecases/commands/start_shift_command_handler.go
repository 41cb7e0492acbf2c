package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// StartShiftCommandHandler marks a courier as on shift. Starting an already
// started shift is a no-op, so redelivered commands are safe.
type StartShiftCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewStartShiftCommandHandler creates a handler for starting courier shifts.
func NewStartShiftCommandHandler(uowFactory CourierUoWFactory) StartShiftCommandHandler {
	return StartShiftCommandHandler{uowFactory: uowFactory}
}

// Handle loads the courier, starts the shift, and persists the change.
// Retries on concurrent modification.
func (h *StartShiftCommandHandler) Handle(ctx context.Context, cmd StartShiftCommand) error {
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

		courierEntity.StartShift()

		if err = uow.CourierRepository().Update(ctx, courierEntity); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
