package order

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// RequestStatus represents the outcome of asking one courier to take one
// delivery. Requested is the only non-terminal state; Accepted, Rejected, and
// TimedOut are terminal.
type RequestStatus int

const (
	// RequestUnknown represents an invalid or undefined request status.
	RequestUnknown RequestStatus = iota
	// Requested means the courier has been asked and has not yet answered.
	Requested
	// RequestAccepted means the courier agreed to take the delivery. Terminal.
	RequestAccepted
	// RequestRejected means the courier declined. Terminal.
	RequestRejected
	// RequestTimedOut means the courier did not answer within the window. Terminal.
	RequestTimedOut
)

func getRequestStatusStrings() map[RequestStatus]string {
	return map[RequestStatus]string{
		RequestUnknown:  "Unknown",
		Requested:       "Requested",
		RequestAccepted: "Accepted",
		RequestRejected: "Rejected",
		RequestTimedOut: "TimedOut",
	}
}

// Validate checks if the RequestStatus value is one of the defined states.
func (s RequestStatus) Validate() error {
	if s == RequestUnknown {
		return errs.NewValueIsInvalidErrorWithCause("request status",
			fmt.Errorf("%d is not a valid request status", s))
	}
	if _, ok := getRequestStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("request status",
			fmt.Errorf("%d is not a valid request status", s))
	}
	return nil
}

// RequestStatusFromString parses a stored status name. Unrecognized names
// map to RequestUnknown, which fails validation.
func RequestStatusFromString(s string) RequestStatus {
	for status, name := range getRequestStatusStrings() {
		if name == s {
			return status
		}
	}
	return RequestUnknown
}

// String implements fmt.Stringer; invalid values render as "Unknown".
func (s RequestStatus) String() string {
	if str, ok := getRequestStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the request has been resolved.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestAccepted || s == RequestRejected || s == RequestTimedOut
}

// DeliveryRequest records one courier being asked to take one delivery.
// There is at most one request per courier per delivery; the Delivery entity
// enforces that invariant. Transitions out of Requested are terminal: the
// Delivery entity treats a repeat of the same terminal transition as an
// idempotent no-op and a conflicting one as an error.
type DeliveryRequest struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	courierID   kernel.UUID
	status      RequestStatus
	requestedAt time.Time
}

// newDeliveryRequest creates a request in Requested state. Only Delivery
// creates requests, via RequestCourier.
func newDeliveryRequest(deliveryID kernel.UUID, courierID kernel.UUID, requestedAt time.Time) *DeliveryRequest {
	return &DeliveryRequest{
		id:          kernel.NewUUID(),
		deliveryID:  deliveryID,
		courierID:   courierID,
		status:      Requested,
		requestedAt: requestedAt,
	}
}

// RestoreDeliveryRequest reconstructs a request from persistent storage.
func RestoreDeliveryRequest(
	id kernel.UUID,
	deliveryID kernel.UUID,
	courierID kernel.UUID,
	status RequestStatus,
	requestedAt time.Time,
) (*DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryRequest{
		id:          id,
		deliveryID:  deliveryID,
		courierID:   courierID,
		status:      status,
		requestedAt: requestedAt,
	}, nil
}

// ID returns the request's unique identifier.
func (r *DeliveryRequest) ID() kernel.UUID {
	return r.id
}

// DeliveryID returns the delivery this request belongs to.
func (r *DeliveryRequest) DeliveryID() kernel.UUID {
	return r.deliveryID
}

// CourierID returns the courier this request was addressed to.
func (r *DeliveryRequest) CourierID() kernel.UUID {
	return r.courierID
}

// Status returns the current request status.
func (r *DeliveryRequest) Status() RequestStatus {
	return r.status
}

// RequestedAt returns when the courier was asked; the timeout sweep uses it
// to find stale requests.
func (r *DeliveryRequest) RequestedAt() time.Time {
	return r.requestedAt
}

func (r *DeliveryRequest) accept()  { r.status = RequestAccepted }
func (r *DeliveryRequest) reject()  { r.status = RequestRejected }
func (r *DeliveryRequest) timeout() { r.status = RequestTimedOut }
