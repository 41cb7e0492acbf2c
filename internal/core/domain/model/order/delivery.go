package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when attempting to use a Delivery
	// that was created via the default constructor.
	ErrDeliveryIsNotConstructed = errors.New("delivery is not constructed, use restore constructor")

	// ErrAlreadyRequested is returned when a courier who already answered a
	// request for this delivery is asked again.
	ErrAlreadyRequested = errors.New("courier has already been requested for this delivery")

	// ErrNotRequested is returned when a courier answers a request that was
	// never made to them.
	ErrNotRequested = errors.New("no delivery request exists for this courier")

	// ErrInvalidTransition is returned when an operation conflicts with the
	// delivery's current state.
	ErrInvalidTransition = errors.New("operation is not allowed in the current delivery state")

	// ErrCourierMismatch is returned when a courier other than the assigned one
	// tries to confirm pickup or dropoff.
	ErrCourierMismatch = errors.New("courier is not assigned to this delivery")
)

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus int

const (
	// DeliveryStatusUnknown represents an invalid or undefined delivery status.
	DeliveryStatusUnknown DeliveryStatus = iota
	// DeliveryPending means no courier has confirmed the delivery yet.
	DeliveryPending
	// DeliveryCourierConfirmed means a courier accepted the delivery request.
	DeliveryCourierConfirmed
	// DeliveryPickedUp means the assigned courier collected the order.
	DeliveryPickedUp
	// DeliveryCompleted means the order reached the customer. Terminal.
	DeliveryCompleted
	// DeliveryFailed means the delivery was abandoned, for example because the
	// order was canceled. Terminal.
	DeliveryFailed
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryStatusUnknown:    "Unknown",
		DeliveryPending:          "Pending",
		DeliveryCourierConfirmed: "CourierConfirmed",
		DeliveryPickedUp:         "PickedUp",
		DeliveryCompleted:        "Completed",
		DeliveryFailed:           "Failed",
	}
}

// Validate checks if the DeliveryStatus value is one of the defined states.
func (s DeliveryStatus) Validate() error {
	if s == DeliveryStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// DeliveryStatusFromString parses a stored status name. Unrecognized names
// map to DeliveryStatusUnknown, which fails validation.
func DeliveryStatusFromString(s string) DeliveryStatus {
	for status, name := range getDeliveryStatusStrings() {
		if name == s {
			return status
		}
	}
	return DeliveryStatusUnknown
}

// String implements fmt.Stringer; invalid values render as "Unknown".
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the delivery can no longer change state.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryCompleted || s == DeliveryFailed
}

// Delivery tracks moving one order from the restaurant to the customer. It is
// an entity owned by the Order aggregate; all mutation goes through Order.
//
// The delivery owns every DeliveryRequest ever made for it. At most one
// request is open (Requested) at a time, and a courier who already resolved a
// request for this delivery is never asked again.
type Delivery struct {
	id                kernel.UUID
	orderID           kernel.UUID
	pickupAddress     kernel.Address
	dropoffAddress    kernel.Address
	status            DeliveryStatus
	assignedCourierID *kernel.UUID
	requests          []*DeliveryRequest
	events            []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// newDelivery creates a pending delivery for an order. Only Order creates
// deliveries.
func newDelivery(orderID kernel.UUID, pickupAddress kernel.Address, dropoffAddress kernel.Address) (*Delivery, error) {
	if err := errors.Join(
		pickupAddress.Validate(),
		dropoffAddress.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:             kernel.NewUUID(),
		orderID:        orderID,
		pickupAddress:  pickupAddress,
		dropoffAddress: dropoffAddress,
		status:         DeliveryPending,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistent storage.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	pickupAddress kernel.Address,
	dropoffAddress kernel.Address,
	status DeliveryStatus,
	assignedCourierID *kernel.UUID,
	requests []*DeliveryRequest,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		pickupAddress.Validate(),
		dropoffAddress.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if assignedCourierID != nil {
		if err := assignedCourierID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Delivery{
		id:                id,
		orderID:           orderID,
		pickupAddress:     pickupAddress,
		dropoffAddress:    dropoffAddress,
		status:            status,
		assignedCourierID: assignedCourierID,
		requests:          requests,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the order this delivery belongs to.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// PickupAddress returns the restaurant address.
func (d *Delivery) PickupAddress() kernel.Address {
	return d.pickupAddress
}

// DropoffAddress returns the customer address.
func (d *Delivery) DropoffAddress() kernel.Address {
	return d.dropoffAddress
}

// Status returns the current delivery status.
func (d *Delivery) Status() DeliveryStatus {
	return d.status
}

// AssignedCourierID returns the confirmed courier, or nil while the delivery
// is pending.
func (d *Delivery) AssignedCourierID() *kernel.UUID {
	return d.assignedCourierID
}

// Requests returns every delivery request ever made for this delivery.
func (d *Delivery) Requests() []*DeliveryRequest {
	return d.requests
}

// OpenRequest returns the single unresolved request, or nil when there is none.
func (d *Delivery) OpenRequest() *DeliveryRequest {
	for _, r := range d.requests {
		if r.Status() == Requested {
			return r
		}
	}
	return nil
}

// RequestedCourierIDs returns the ids of every courier ever asked to take this
// delivery, regardless of how they answered. Dispatch uses it as an exclusion
// set so the same courier is never asked twice.
func (d *Delivery) RequestedCourierIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(d.requests))
	for _, r := range d.requests {
		ids = append(ids, r.CourierID())
	}
	return ids
}

func (d *Delivery) requestFor(courierID kernel.UUID) *DeliveryRequest {
	for _, r := range d.requests {
		if r.CourierID().IsEqual(courierID) {
			return r
		}
	}
	return nil
}

// requestCourier opens a delivery request addressed to the given courier.
// Asking the courier who already holds the open request returns that request
// unchanged, so retried dispatch attempts stay idempotent.
func (d *Delivery) requestCourier(courierID kernel.UUID, requestedAt time.Time) (*DeliveryRequest, error) {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return nil, err
	}
	if d.status != DeliveryPending {
		return nil, ErrInvalidTransition
	}

	if existing := d.requestFor(courierID); existing != nil {
		if existing.Status() == Requested {
			return existing, nil
		}
		return nil, ErrAlreadyRequested
	}
	if open := d.OpenRequest(); open != nil {
		return nil, ErrInvalidTransition
	}

	request := newDeliveryRequest(d.id, courierID, requestedAt)
	d.requests = append(d.requests, request)
	d.registerEvent(NewDeliveryCourierRequested(d, request))
	return request, nil
}

// acceptRequest resolves the courier's open request as accepted and assigns
// the courier to the delivery. Repeating an already accepted answer from the
// same courier is a no-op.
func (d *Delivery) acceptRequest(courierID kernel.UUID) error {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}

	request := d.requestFor(courierID)
	if request == nil {
		return ErrNotRequested
	}

	switch request.Status() {
	case RequestAccepted:
		return nil
	case RequestRejected, RequestTimedOut:
		return ErrInvalidTransition
	}
	if d.status != DeliveryPending {
		return ErrInvalidTransition
	}

	request.accept()
	id := courierID
	d.assignedCourierID = &id
	d.status = DeliveryCourierConfirmed
	d.registerEvent(NewDeliveryRequestAccepted(d, request))
	return nil
}

// rejectRequest resolves the courier's open request as rejected. The delivery
// stays pending so dispatch can try the next candidate. Repeating a rejection
// is a no-op.
func (d *Delivery) rejectRequest(courierID kernel.UUID) error {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}

	request := d.requestFor(courierID)
	if request == nil {
		return ErrNotRequested
	}

	switch request.Status() {
	case RequestRejected:
		return nil
	case RequestAccepted, RequestTimedOut:
		return ErrInvalidTransition
	}

	request.reject()
	d.registerEvent(NewDeliveryRequestRejected(d, request))
	return nil
}

// timeoutRequest expires the courier's open request. A request that was
// already resolved, by the courier or by an earlier sweep, is left untouched.
func (d *Delivery) timeoutRequest(courierID kernel.UUID) error {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}

	request := d.requestFor(courierID)
	if request == nil {
		return ErrNotRequested
	}
	if request.Status() != Requested {
		return nil
	}

	request.timeout()
	d.registerEvent(NewDeliveryRequestTimedOut(d, request))
	return nil
}

// confirmPickup records that the assigned courier collected the order.
func (d *Delivery) confirmPickup(courierID kernel.UUID) error {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}
	if d.assignedCourierID == nil || !d.assignedCourierID.IsEqual(courierID) {
		return ErrCourierMismatch
	}

	switch d.status {
	case DeliveryPickedUp, DeliveryCompleted:
		return nil
	case DeliveryCourierConfirmed:
		d.status = DeliveryPickedUp
		return nil
	default:
		return ErrInvalidTransition
	}
}

// confirmDropoff records that the assigned courier handed the order to the
// customer.
func (d *Delivery) confirmDropoff(courierID kernel.UUID) error {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}
	if d.assignedCourierID == nil || !d.assignedCourierID.IsEqual(courierID) {
		return ErrCourierMismatch
	}

	switch d.status {
	case DeliveryCompleted:
		return nil
	case DeliveryPickedUp:
		d.status = DeliveryCompleted
		return nil
	default:
		return ErrInvalidTransition
	}
}

// fail abandons the delivery. Any still-open request is expired so the
// courier's answer can no longer land. Allowed before pickup only.
func (d *Delivery) fail() error {
	if err := d.guard.Validate(ErrDeliveryIsNotConstructed); err != nil {
		return err
	}

	switch d.status {
	case DeliveryFailed:
		return nil
	case DeliveryPending, DeliveryCourierConfirmed:
		if open := d.OpenRequest(); open != nil {
			open.timeout()
			d.registerEvent(NewDeliveryRequestTimedOut(d, open))
		}
		d.status = DeliveryFailed
		return nil
	default:
		return ErrInvalidTransition
	}
}

func (d *Delivery) registerEvent(event kernel.DomainEvent) {
	d.events = append(d.events, event)
}

func (d *Delivery) takeEvents() []kernel.DomainEvent {
	events := d.events
	d.events = nil
	return events
}
