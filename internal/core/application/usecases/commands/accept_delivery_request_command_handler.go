package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// AcceptDeliveryRequestCommandHandler records a courier taking a delivery.
// The acceptance lands on both aggregates in one transaction: the order's
// delivery confirms the courier, and the courier's active set gains the
// order. A redelivered acceptance is a no-op on both sides.
type AcceptDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptDeliveryRequestCommandHandler creates a handler for request acceptance.
func NewAcceptDeliveryRequestCommandHandler(uowFactory UoWFactory) AcceptDeliveryRequestCommandHandler {
	return AcceptDeliveryRequestCommandHandler{uowFactory: uowFactory}
}

// Handle applies the courier's acceptance to the order and the courier.
func (h *AcceptDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryRequestCommand) error {
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

		if err = orderAggregate.AcceptDeliveryRequest(cmd.CourierID()); err != nil {
			return err
		}
		if err = courierAggregate.AssignOrder(cmd.OrderID()); err != nil {
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
