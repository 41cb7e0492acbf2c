package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/retry"
)

// PayOrderCommandHandler charges the customer for a placed order. A
// successful charge confirms the order as paid, which triggers courier
// dispatch; a declined charge cancels the order. Confirming an already paid
// order is a no-op, so a redelivered payment signal never double-charges the
// state machine.
type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	payments   ports.PaymentService
}

// NewPayOrderCommandHandler creates a handler for order payment.
func NewPayOrderCommandHandler(uowFactory OrderUoWFactory, payments ports.PaymentService) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
	}
}

// Handle charges the order total and records the outcome. The charge happens
// exactly once, outside the retry loop: a version conflict while recording
// the outcome must not charge the customer again.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderAggregate, err := h.loadOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	chargeErr := h.payments.Charge(ctx, orderAggregate.UserID(), cmd.PaymentMethodID(), orderAggregate.Total())
	if chargeErr != nil && !errors.Is(chargeErr, ports.ErrPaymentDeclined) {
		return chargeErr
	}

	err = retry.Optimistic(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
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

		if chargeErr == nil {
			err = orderAggregate.ConfirmPaid()
		} else {
			err = orderAggregate.Cancel("payment declined")
		}
		if err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
	if err != nil {
		return err
	}

	// the cancellation is recorded; the caller still learns the charge failed
	return chargeErr
}

func (h *PayOrderCommandHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, orderID)
}
