package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// TimeoutDeliveryRequestCommandHandler expires an unanswered delivery
// request. A request the courier resolved in the meantime is left untouched,
// so the timer and the sweep job can both fire without racing the courier's
// answer.
type TimeoutDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewTimeoutDeliveryRequestCommandHandler creates a handler for request timeouts.
func NewTimeoutDeliveryRequestCommandHandler(uowFactory UoWFactory) TimeoutDeliveryRequestCommandHandler {
	return TimeoutDeliveryRequestCommandHandler{uowFactory: uowFactory}
}

// Handle expires the courier's request on the order and clears the courier's
// pending-request bookkeeping.
func (h *TimeoutDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd TimeoutDeliveryRequestCommand) error {
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

		if err = orderAggregate.TimeoutDeliveryRequest(cmd.CourierID()); err != nil {
			return err
		}
		if err = courierAggregate.RemovePendingRequest(orderAggregate.Delivery().ID()); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}
		if err = uow.CourierRepository().Update(ctx, courierAggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
