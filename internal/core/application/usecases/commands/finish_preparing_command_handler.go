package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// FinishPreparingCommandHandler marks an order as ready for pickup.
type FinishPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewFinishPreparingCommandHandler creates a handler for finishing preparation.
func NewFinishPreparingCommandHandler(uowFactory OrderUoWFactory) FinishPreparingCommandHandler {
	return FinishPreparingCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, finishes preparation, and persists the change.
func (h *FinishPreparingCommandHandler) Handle(ctx context.Context, cmd FinishPreparingCommand) error {
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

		if err = orderAggregate.FinishPreparing(); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
