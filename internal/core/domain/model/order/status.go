package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions are monotonic along the main sequence:
//
//	Placed ──> Paid ──> Preparing ──> AwaitingPickup ──> InDelivery ──> Delivered
//	   │         │          │               │
//	   └─────────┴──────────┴───────────────┴──────> Canceled
//
// Canceled is reachable from any pre-delivery state and is terminal, as is
// Delivered. Status is a value object; the Order aggregate enforces the
// transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPlaced is the initial status set at checkout.
	StatusPlaced

	// StatusPaid indicates payment was confirmed; the order is eligible for dispatch.
	StatusPaid

	// StatusPreparing indicates the restaurant has started preparing the order.
	StatusPreparing

	// StatusAwaitingPickup indicates preparation finished and the order awaits
	// courier arrival.
	StatusAwaitingPickup

	// StatusInDelivery indicates the assigned courier has picked up the order.
	StatusInDelivery

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered

	// StatusCanceled indicates the order was canceled before delivery. Terminal.
	StatusCanceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusPlaced:         "Placed",
		StatusPaid:           "Paid",
		StatusPreparing:      "Preparing",
		StatusAwaitingPickup: "AwaitingPickup",
		StatusInDelivery:     "InDelivery",
		StatusDelivered:      "Delivered",
		StatusCanceled:       "Canceled",
	}
}

// Validate checks if the Status value is one of the defined order states.
// StatusUnknown and any other values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// StatusFromString parses a stored status name. Unrecognized names map to
// StatusUnknown, which fails validation.
func StatusFromString(s string) Status {
	for status, name := range getStatusStrings() {
		if name == s {
			return status
		}
	}
	return StatusUnknown
}

// String implements fmt.Stringer; invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanBeCanceled reports whether an order in this status may still be canceled.
// Cancellation is allowed from any pre-delivery state; once the courier has
// picked the order up it must run to completion.
func (s Status) CanBeCanceled() bool {
	switch s {
	case StatusPlaced, StatusPaid, StatusPreparing, StatusAwaitingPickup:
		return true
	default:
		return false
	}
}
