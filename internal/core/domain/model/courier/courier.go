package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrNotOnShift is returned when assigning an order to a courier who is off shift.
	ErrNotOnShift = errors.New("courier is not on shift")
	// ErrUnknownAssignment is returned when completing an order that is not in the
	// courier's active set.
	ErrUnknownAssignment = errors.New("order is not assigned to this courier")
)

// Courier is the aggregate root for a delivery courier. It owns the courier's
// shift availability, the set of orders they are actively delivering, and the
// set of delivery requests currently awaiting their answer.
//
// Business rules:
//   - A courier may only be assigned a new order while on shift.
//   - Going off shift does not revoke orders already being delivered.
//   - Active orders and pending requests have set semantics: repeated adds and
//     removes of the same id are idempotent.
//
// The active-order and pending-request sets hold ids only; related Order and
// Delivery aggregates are loaded explicitly by the use case that needs them,
// never through live object references.
type Courier struct {
	kernel.BaseAggregate

	id              kernel.UUID
	name            string
	onShift         bool
	activeOrders    map[kernel.UUID]struct{}
	pendingRequests map[kernel.UUID]struct{}
	guard           guard.ConstructorGuard
}

// NewCourier creates a new Courier. Newly registered couriers start off shift
// with no active orders; a CourierAdded event is registered.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must be non-empty)
//
// Returns the courier, or a validation error if any parameter is invalid.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		BaseAggregate:   kernel.NewBaseAggregate(),
		activeOrders:    make(map[kernel.UUID]struct{}),
		pendingRequests: make(map[kernel.UUID]struct{}),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setName(name)); err != nil {
		return nil, err
	}

	c.RegisterEvent(CourierAdded{
		CourierID: c.id.Bytes(),
		Name:      c.name,
		OnShift:   c.onShift,
	})

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage at
// the given optimistic-concurrency version. Unlike NewCourier it restores
// shift status and the active/pending id sets and registers no events.
func RestoreCourier(
	id kernel.UUID,
	name string,
	onShift bool,
	activeOrders []kernel.UUID,
	pendingRequests []kernel.UUID,
	version int,
) (*Courier, error) {
	c := &Courier{
		BaseAggregate:   kernel.RestoreBaseAggregate(version),
		onShift:         onShift,
		activeOrders:    make(map[kernel.UUID]struct{}, len(activeOrders)),
		pendingRequests: make(map[kernel.UUID]struct{}, len(pendingRequests)),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setName(name)); err != nil {
		return nil, err
	}

	for _, orderID := range activeOrders {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
		c.activeOrders[orderID] = struct{}{}
	}
	for _, deliveryID := range pendingRequests {
		if err := deliveryID.Validate(); err != nil {
			return nil, err
		}
		c.pendingRequests[deliveryID] = struct{}{}
	}

	return c, nil
}

// Validate checks that the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// IsOnShift reports whether the courier has declared availability for new deliveries.
func (c *Courier) IsOnShift() bool {
	return c.onShift
}

// ActiveOrders returns the ids of orders the courier is currently delivering.
func (c *Courier) ActiveOrders() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(c.activeOrders))
	for id := range c.activeOrders {
		out = append(out, id)
	}
	return out
}

// PendingRequests returns the ids of deliveries with a request awaiting this
// courier's answer.
func (c *Courier) PendingRequests() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(c.pendingRequests))
	for id := range c.pendingRequests {
		out = append(out, id)
	}
	return out
}

// HasPendingRequest reports whether a request for the given delivery awaits
// this courier's answer.
func (c *Courier) HasPendingRequest(deliveryID kernel.UUID) bool {
	_, ok := c.pendingRequests[deliveryID]
	return ok
}

// StartShift marks the courier as available for new deliveries.
// Starting an already started shift is an idempotent no-op.
func (c *Courier) StartShift() {
	if c.onShift {
		return
	}
	c.onShift = true
	c.RegisterEvent(CourierShiftStarted{CourierID: c.id.Bytes()})
}

// StopShift marks the courier as unavailable for new deliveries. Orders
// already in the active set stay there: the courier is expected to finish
// them. Stopping an already stopped shift is an idempotent no-op.
func (c *Courier) StopShift() {
	if !c.onShift {
		return
	}
	c.onShift = false
	c.RegisterEvent(CourierShiftStopped{CourierID: c.id.Bytes()})
}

// AssignOrder adds an order to the courier's active set.
//
// Fails with ErrNotOnShift when the courier is off shift. Assigning an order
// already in the set is an idempotent no-op (set semantics).
func (c *Courier) AssignOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !c.onShift {
		return ErrNotOnShift
	}

	c.activeOrders[orderID] = struct{}{}
	return nil
}

// CompleteOrder removes a delivered order from the courier's active set.
// Fails with ErrUnknownAssignment when the order is not in the set.
func (c *Courier) CompleteOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if _, ok := c.activeOrders[orderID]; !ok {
		return ErrUnknownAssignment
	}

	delete(c.activeOrders, orderID)
	return nil
}

// AddPendingRequest records an in-flight delivery request awaiting this
// courier's answer. Idempotent for an already recorded delivery.
func (c *Courier) AddPendingRequest(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.pendingRequests[deliveryID] = struct{}{}
	return nil
}

// RemovePendingRequest clears the pending-request bookkeeping for a delivery
// once the request is resolved by accept, reject, or timeout. Removing an
// absent id is an idempotent no-op: resolution signals may be redelivered.
func (c *Courier) RemovePendingRequest(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	delete(c.pendingRequests, deliveryID)
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
