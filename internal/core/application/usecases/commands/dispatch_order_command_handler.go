package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/retry"
)

// CandidatePoolSize caps how many nearby couriers dispatch evaluates per
// attempt. Scoring a candidate loads their active orders, so the pool keeps
// the database round trips bounded.
const CandidatePoolSize = 10

// DispatchOrderCommandHandler finds a courier for an order's delivery.
//
// One attempt asks exactly one courier: the handler takes the couriers
// closest to the restaurant, skips everyone already asked for this delivery,
// keeps those on shift, scores them by estimated completion time, and opens a
// delivery request for the winner. A timeout is scheduled so an unanswered
// request expires and the next attempt can run. When no candidate remains the
// order is canceled.
//
// The handler is idempotent: re-dispatching an order that already has an open
// request, a confirmed courier, or a terminal status does nothing. It is safe
// to feed it redelivered broker messages.
type DispatchOrderCommandHandler struct {
	uowFactory     UoWFactory
	locationIndex  ports.LocationIndex
	scheduler      ports.Scheduler
	scorer         services.CourierScorer
	requestTimeout time.Duration
	timeouts       TimeoutDeliveryRequestCommandHandler
}

// NewDispatchOrderCommandHandler creates the dispatch handler.
// requestTimeout bounds how long a courier may leave a request unanswered.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	locationIndex ports.LocationIndex,
	scheduler ports.Scheduler,
	requestTimeout time.Duration,
	timeouts TimeoutDeliveryRequestCommandHandler,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:     uowFactory,
		locationIndex:  locationIndex,
		scheduler:      scheduler,
		scorer:         services.NewCourierScorer(),
		requestTimeout: requestTimeout,
		timeouts:       timeouts,
	}
}

// Handle runs one dispatch attempt for the order.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var requestedCourier *kernel.UUID

	err := retry.Optimistic(ctx, retry.DefaultAttempts, func(ctx context.Context) error {
		requestedCourier = nil

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

		if !h.needsDispatch(orderAggregate) {
			return nil
		}

		pickup := orderAggregate.Delivery().PickupAddress().Location()
		dropoff := orderAggregate.Delivery().DropoffAddress().Location()

		candidates, err := h.collectCandidates(ctx, uow, orderAggregate, pickup)
		if err != nil {
			return err
		}

		best, err := h.scorer.BestCandidate(pickup, dropoff, candidates)
		if errors.Is(err, services.ErrCourierNotFound) {
			// nobody left to ask
			if err = orderAggregate.Cancel("no couriers available"); err != nil {
				return err
			}
			if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
				return err
			}
			return uow.Commit(ctx)
		}
		if err != nil {
			return err
		}

		if _, err = orderAggregate.RequestCourier(best.ID(), time.Now()); err != nil {
			return err
		}
		if err = best.AddPendingRequest(orderAggregate.Delivery().ID()); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
			return err
		}
		if err = uow.CourierRepository().Update(ctx, best); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		id := best.ID()
		requestedCourier = &id
		return nil
	})
	if err != nil {
		return err
	}

	if requestedCourier != nil {
		h.scheduleTimeout(cmd.OrderID(), *requestedCourier)
	}
	return nil
}

// needsDispatch reports whether the order still waits for a courier. Orders
// with a confirmed courier, an open request, or a terminal status are left
// alone.
func (h *DispatchOrderCommandHandler) needsDispatch(o *order.Order) bool {
	if o.Status().IsFinal() {
		return false
	}
	if o.Delivery().Status() != order.DeliveryPending {
		return false
	}
	return o.Delivery().OpenRequest() == nil
}

// collectCandidates pairs the couriers nearest to the pickup point with their
// locations and active orders. Couriers already asked for this delivery are
// excluded; couriers off shift or unknown are dropped by the repository.
func (h *DispatchOrderCommandHandler) collectCandidates(
	ctx context.Context,
	uow UoW,
	orderAggregate *order.Order,
	pickup kernel.GeoPoint,
) ([]services.Candidate, error) {
	exclude := orderAggregate.Delivery().RequestedCourierIDs()
	locations := h.locationIndex.Nearest(pickup, CandidatePoolSize, exclude)
	if len(locations) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.CourierID)
	}

	couriers, err := uow.CourierRepository().GetByIDsOnShift(ctx, ids)
	if err != nil {
		return nil, err
	}

	locationByID := make(map[kernel.UUID]ports.CourierLocation, len(locations))
	for _, l := range locations {
		locationByID[l.CourierID] = l
	}

	candidates := make([]services.Candidate, 0, len(couriers))
	for _, c := range couriers {
		location, ok := locationByID[c.ID()]
		if !ok {
			continue
		}

		activeOrders, err := uow.OrderRepository().GetByCourier(ctx, c.ActiveOrders())
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, services.Candidate{
			Courier:      c,
			Location:     location.Location,
			ActiveOrders: activeOrders,
		})
	}

	return candidates, nil
}

// scheduleTimeout expires the courier's request if it stays unanswered. The
// periodic sweep job covers timers lost to a restart.
func (h *DispatchOrderCommandHandler) scheduleTimeout(orderID kernel.UUID, courierID kernel.UUID) {
	h.scheduler.AfterFunc(h.requestTimeout, func() {
		cmd, err := NewTimeoutDeliveryRequestCommand(orderID, courierID)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
		defer cancel()

		_ = h.timeouts.Handle(ctx, cmd)
	})
}
