package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/retry"

	"github.com/Rhymond/go-money"
)

// CancelOrderCommandHandler abandons an order before pickup. A courier who
// already confirmed the delivery gets the order removed from their active set
// and their pending-request bookkeeping cleared, and a customer who already
// paid is refunded.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	payments   ports.PaymentService
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, payments ports.PaymentService) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
	}
}

// Handle cancels the order, fails its delivery, and releases the assigned
// courier if there is one.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var refundUserID string
	var refundAmount *money.Money

	err := retry.Optimistic(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		refundUserID = ""

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

		assignedCourier := orderAggregate.AssignedCourierID()
		if wasCharged(orderAggregate.Status()) {
			refundUserID = orderAggregate.UserID()
			refundAmount = orderAggregate.Total()
		}

		if err = orderAggregate.Cancel(cmd.Reason()); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}

		if assignedCourier != nil {
			courierAggregate, err := uow.CourierRepository().Get(ctx, *assignedCourier)
			if err != nil {
				return err
			}

			// the courier may not hold the order yet if the cancellation
			// races the acceptance, so a missing assignment is tolerated
			_ = courierAggregate.CompleteOrder(cmd.OrderID())
			if err = courierAggregate.RemovePendingRequest(orderAggregate.Delivery().ID()); err != nil {
				return err
			}
			if err = uow.CourierRepository().Update(ctx, courierAggregate); err != nil {
				return err
			}
		}

		return uow.Commit(ctx)
	})
	if err != nil {
		return err
	}

	// the refund runs after the commit so a version conflict cannot issue it
	// twice; an already canceled order records no refund
	if refundUserID != "" {
		return h.payments.Refund(ctx, refundUserID, refundAmount)
	}
	return nil
}

// wasCharged reports whether the customer paid for an order in this status.
func wasCharged(status order.Status) bool {
	switch status {
	case order.StatusPaid, order.StatusPreparing, order.StatusAwaitingPickup:
		return true
	default:
		return false
	}
}
