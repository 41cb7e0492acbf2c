package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler creates new orders. The order starts in Placed
// status with a pending delivery; dispatch begins once payment is confirmed.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for placing orders.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{uowFactory: uowFactory}
}

// Handle creates the order aggregate and persists it within a transaction.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.RestaurantID(),
		cmd.PickupAddress(),
		cmd.DropoffAddress(),
		cmd.Items(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, orderAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
