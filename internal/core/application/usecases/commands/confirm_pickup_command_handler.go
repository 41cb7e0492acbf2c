package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// ConfirmPickupCommandHandler moves an order into delivery once its assigned
// courier collects it. Only the assigned courier may confirm.
type ConfirmPickupCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmation.
func NewConfirmPickupCommandHandler(uowFactory OrderUoWFactory) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{uowFactory: uowFactory}
}

// Handle records the pickup on the order.
func (h *ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) error {
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

		orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = orderAggregate.ConfirmPickup(cmd.CourierID()); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
