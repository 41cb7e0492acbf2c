package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// ConfirmDropoffCommandHandler completes a delivery: the order reaches its
// terminal Delivered status and leaves the courier's active set, freeing
// capacity for new assignments. Both aggregates change in one transaction.
type ConfirmDropoffCommandHandler struct {
	uowFactory UoWFactory
}

// NewConfirmDropoffCommandHandler creates a handler for dropoff confirmation.
func NewConfirmDropoffCommandHandler(uowFactory UoWFactory) ConfirmDropoffCommandHandler {
	return ConfirmDropoffCommandHandler{uowFactory: uowFactory}
}

// Handle records the dropoff on the order and releases the courier.
func (h *ConfirmDropoffCommandHandler) Handle(ctx context.Context, cmd ConfirmDropoffCommand) error {
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
		courierAggregate, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
		if err != nil {
			return err
		}

		alreadyDelivered := orderAggregate.Status().IsFinal()
		if err = orderAggregate.ConfirmDropoff(cmd.CourierID()); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}

		if !alreadyDelivered {
			if err = courierAggregate.CompleteOrder(cmd.OrderID()); err != nil {
				return err
			}
			if err = uow.CourierRepository().Update(ctx, courierAggregate); err != nil {
				return err
			}
		}

		return uow.Commit(ctx)
	})
}
