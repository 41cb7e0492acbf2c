package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no suitable courier is available for a
// delivery. This occurs when no candidates are provided or none of them are
// on shift.
var ErrCourierNotFound = errors.New("courier not found")

// PendingWorkloadFactor penalizes couriers that still have orders to finish.
// A busy courier must beat an idle one by more than their raw travel estimate
// to win the delivery.
const PendingWorkloadFactor = 1.2

// Candidate pairs a courier with their last reported location and the orders
// they are currently working on. The caller assembles candidates from the
// location index and the courier and order repositories.
type Candidate struct {
	Courier      *courier.Courier
	Location     kernel.GeoPoint
	ActiveOrders []*order.Order
}

// CourierScorer is a domain service that picks the courier expected to
// complete a new delivery soonest.
//
// Scoring model, per candidate:
//
//	score = remainingWorkload * PendingWorkloadFactor + newDeliveryEstimate
//
// where remainingWorkload sums the travel still ahead of the courier for
// their active orders and newDeliveryEstimate is the travel from the
// courier's location to the pickup point plus the pickup-to-dropoff leg.
// Travel estimates are straight-line distances; we assume couriers move at
// roughly equal speed so distance orders candidates the same way time would.
type CourierScorer struct{}

// NewCourierScorer creates a new CourierScorer instance.
func NewCourierScorer() CourierScorer {
	return CourierScorer{}
}

// BestCandidate returns the on-shift candidate with the lowest score for a
// delivery from pickup to dropoff, or ErrCourierNotFound when no candidate
// qualifies. Ties go to the earlier candidate in the slice.
func (s CourierScorer) BestCandidate(
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	candidates []Candidate,
) (*courier.Courier, error) {
	var (
		best      *courier.Courier
		bestScore = math.MaxFloat64
	)

	for _, candidate := range candidates {
		if err := candidate.Courier.Validate(); err != nil {
			return nil, err
		}
		if !candidate.Courier.IsOnShift() {
			continue
		}

		score, err := s.Score(candidate, pickup, dropoff)
		if err != nil {
			return nil, err
		}

		if score < bestScore {
			bestScore = score
			best = candidate.Courier
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}
	return best, nil
}

// Score estimates how long the candidate would take to complete a new
// delivery from pickup to dropoff, in distance units. Lower is better.
func (s CourierScorer) Score(candidate Candidate, pickup kernel.GeoPoint, dropoff kernel.GeoPoint) (float64, error) {
	workload, err := s.remainingWorkload(candidate)
	if err != nil {
		return 0, err
	}

	toPickup, err := candidate.Location.DistanceTo(pickup)
	if err != nil {
		return 0, err
	}
	toDropoff, err := pickup.DistanceTo(dropoff)
	if err != nil {
		return 0, err
	}

	return workload*PendingWorkloadFactor + toPickup + toDropoff, nil
}

// remainingWorkload sums the travel still ahead of the courier for their
// active orders. An order not yet picked up costs the trip to its restaurant
// plus the restaurant-to-customer leg; an order in delivery costs only the
// remaining trip to the customer. Finished and canceled orders cost nothing.
func (s CourierScorer) remainingWorkload(candidate Candidate) (float64, error) {
	var total float64

	for _, o := range candidate.ActiveOrders {
		orderPickup := o.Delivery().PickupAddress().Location()
		orderDropoff := o.Delivery().DropoffAddress().Location()

		switch o.Status() {
		case order.StatusPlaced, order.StatusPaid, order.StatusPreparing, order.StatusAwaitingPickup:
			toPickup, err := candidate.Location.DistanceTo(orderPickup)
			if err != nil {
				return 0, err
			}
			toDropoff, err := orderPickup.DistanceTo(orderDropoff)
			if err != nil {
				return 0, err
			}
			total += toPickup + toDropoff
		case order.StatusInDelivery:
			toDropoff, err := candidate.Location.DistanceTo(orderDropoff)
			if err != nil {
				return 0, err
			}
			total += toDropoff
		}
	}

	return total, nil
}
