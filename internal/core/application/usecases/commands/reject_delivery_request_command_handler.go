package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// RejectDeliveryRequestCommandHandler records a courier declining a delivery
// request. The delivery stays pending; the rejection event triggers the next
// dispatch attempt.
type RejectDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewRejectDeliveryRequestCommandHandler creates a handler for request rejection.
func NewRejectDeliveryRequestCommandHandler(uowFactory UoWFactory) RejectDeliveryRequestCommandHandler {
	return RejectDeliveryRequestCommandHandler{uowFactory: uowFactory}
}

// Handle applies the courier's rejection to the order and clears the
// courier's pending-request bookkeeping.
func (h *RejectDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd RejectDeliveryRequestCommand) error {
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

		if err = orderAggregate.RejectDeliveryRequest(cmd.CourierID()); err != nil {
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
