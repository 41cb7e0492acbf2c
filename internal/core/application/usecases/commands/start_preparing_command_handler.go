package commands

import (
	"context"

	"dispatch/internal/pkg/retry"
)

// StartPreparingCommandHandler moves a paid order into preparation.
type StartPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartPreparingCommandHandler creates a handler for starting preparation.
func NewStartPreparingCommandHandler(uowFactory OrderUoWFactory) StartPreparingCommandHandler {
	return StartPreparingCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, starts preparation, and persists the change.
func (h *StartPreparingCommandHandler) Handle(ctx context.Context, cmd StartPreparingCommand) error {
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

		if err = orderAggregate.StartPreparing(); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
