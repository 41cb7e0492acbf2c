package order

import (
	"errors"
	"time"

	"github.com/Rhymond/go-money"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrUserIDIsRequired is returned when attempting to create an order without a customer.
	ErrUserIDIsRequired = errs.NewValueIsRequiredError("userID")
	// ErrItemsAreRequired is returned when attempting to create an order with no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrItemNameIsRequired is returned when an order item has no name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("item name")
	// ErrItemPriceIsRequired is returned when an order item has no price.
	ErrItemPriceIsRequired = errs.NewValueIsRequiredError("item price")
)

// OrderItem is one line of an order: a named product, how many, and the price
// per unit.
type OrderItem struct {
	name     string
	quantity int
	price    *money.Money
}

// NewOrderItem creates an order line. The name must be non-empty, the quantity
// positive, and the price present.
func NewOrderItem(name string, quantity int, price *money.Money) (OrderItem, error) {
	if name == "" {
		return OrderItem{}, ErrItemNameIsRequired
	}
	if quantity <= 0 {
		return OrderItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if price == nil {
		return OrderItem{}, ErrItemPriceIsRequired
	}

	return OrderItem{name: name, quantity: quantity, price: price}, nil
}

// Name returns the product name.
func (i OrderItem) Name() string { return i.name }

// Quantity returns how many units were ordered.
func (i OrderItem) Quantity() int { return i.quantity }

// Price returns the price per unit.
func (i OrderItem) Price() *money.Money { return i.price }

// Subtotal returns price multiplied by quantity.
func (i OrderItem) Subtotal() *money.Money {
	return money.New(i.price.Amount()*int64(i.quantity), i.price.Currency().Code)
}

// Order is the aggregate root for a customer order. It owns the order's
// status lifecycle, its priced line items, and the Delivery entity that moves
// it from the restaurant to the customer. Couriers are referenced by id only;
// the Courier aggregate is loaded explicitly by use cases.
//
// Status lifecycle:
//
//	Placed -> Paid -> Preparing -> AwaitingPickup -> InDelivery -> Delivered
//
// Cancellation is allowed from any state before InDelivery. Delivered and
// Canceled are terminal.
type Order struct {
	kernel.BaseAggregate

	id           kernel.UUID
	userID       string
	restaurantID kernel.UUID
	items        []OrderItem
	total        *money.Money
	status       Status
	delivery     *Delivery
	guard        guard.ConstructorGuard
}

// NewOrder creates a new Order in Placed status together with its pending
// delivery from the pickup address to the dropoff address. The total is the
// sum of item subtotals; all items must share one currency. An OrderPlaced
// event is registered.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - userID: the ordering customer (must be non-empty)
//   - restaurantID: the restaurant preparing the order (must be a valid UUID)
//   - pickupAddress: the restaurant address
//   - dropoffAddress: the customer address
//   - items: at least one priced line item
//
// Returns the order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	userID string,
	restaurantID kernel.UUID,
	pickupAddress kernel.Address,
	dropoffAddress kernel.Address,
	items []OrderItem,
) (*Order, error) {
	if err := errors.Join(id.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrUserIDIsRequired
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	total, err := sumItems(items)
	if err != nil {
		return nil, err
	}

	delivery, err := newDelivery(id, pickupAddress, dropoffAddress)
	if err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregate: kernel.NewBaseAggregate(),
		id:            id,
		userID:        userID,
		restaurantID:  restaurantID,
		items:         items,
		total:         total,
		status:        StatusPlaced,
		delivery:      delivery,
		guard:         guard.NewConstructorGuard(),
	}

	o.RegisterEvent(OrderPlaced{
		OrderID:        o.id.Bytes(),
		UserID:         o.userID,
		RestaurantID:   o.restaurantID.Bytes(),
		TotalAmount:    total.Amount(),
		Currency:       total.Currency().Code,
		PickupAddress:  pickupAddress,
		DropoffAddress: dropoffAddress,
	})

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage at the
// given optimistic-concurrency version. It registers no events.
func RestoreOrder(
	id kernel.UUID,
	userID string,
	restaurantID kernel.UUID,
	items []OrderItem,
	total *money.Money,
	status Status,
	delivery *Delivery,
	version int,
) (*Order, error) {
	if err := errors.Join(id.Validate(), restaurantID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrUserIDIsRequired
	}
	if delivery == nil {
		return nil, errs.NewValueIsRequiredError("delivery")
	}

	return &Order{
		BaseAggregate: kernel.RestoreBaseAggregate(version),
		id:            id,
		userID:        userID,
		restaurantID:  restaurantID,
		items:         items,
		total:         total,
		status:        status,
		delivery:      delivery,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func sumItems(items []OrderItem) (*money.Money, error) {
	total := money.New(0, items[0].Price().Currency().Code)
	for _, item := range items {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("items", err)
		}
		total = sum
	}
	return total, nil
}

// Validate checks that the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the ordering customer's identifier.
func (o *Order) UserID() string {
	return o.userID
}

// RestaurantID returns the restaurant preparing the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Items returns the order's line items.
func (o *Order) Items() []OrderItem {
	return o.items
}

// Total returns the order's total price.
func (o *Order) Total() *money.Money {
	return o.total
}

// Status returns the order's current status.
func (o *Order) Status() Status {
	return o.status
}

// Delivery returns the order's delivery.
func (o *Order) Delivery() *Delivery {
	return o.delivery
}

// AssignedCourierID returns the courier confirmed for this order's delivery,
// or nil while no courier has accepted.
func (o *Order) AssignedCourierID() *kernel.UUID {
	return o.delivery.AssignedCourierID()
}

// ConfirmPaid moves a placed order to Paid and registers an OrderPaid event.
// Confirming an already paid order is an idempotent no-op: payment signals
// may be redelivered.
func (o *Order) ConfirmPaid() error {
	switch o.status {
	case StatusPaid:
		return nil
	case StatusPlaced:
		o.status = StatusPaid
		o.RegisterEvent(OrderPaid{OrderID: o.id.Bytes()})
		return nil
	default:
		return ErrInvalidTransition
	}
}

// StartPreparing records that the restaurant started cooking a paid order.
// Idempotent when preparation has already started.
func (o *Order) StartPreparing() error {
	switch o.status {
	case StatusPreparing:
		return nil
	case StatusPaid:
		o.status = StatusPreparing
		o.RegisterEvent(OrderPreparationStarted{OrderID: o.id.Bytes()})
		return nil
	default:
		return ErrInvalidTransition
	}
}

// FinishPreparing records that the order is cooked and waiting for its
// courier. Idempotent when the order already awaits pickup.
func (o *Order) FinishPreparing() error {
	switch o.status {
	case StatusAwaitingPickup:
		return nil
	case StatusPreparing:
		o.status = StatusAwaitingPickup
		o.RegisterEvent(OrderPreparationFinished{OrderID: o.id.Bytes()})
		return nil
	default:
		return ErrInvalidTransition
	}
}

// RequestCourier opens a delivery request asking the given courier to take
// this order. The order must be paid and not yet in delivery, and the
// delivery must have no other open request. Asking the courier who already
// holds the open request returns that request unchanged.
func (o *Order) RequestCourier(courierID kernel.UUID, requestedAt time.Time) (*DeliveryRequest, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	switch o.status {
	case StatusPaid, StatusPreparing, StatusAwaitingPickup:
		return o.delivery.requestCourier(courierID, requestedAt)
	default:
		return nil, ErrInvalidTransition
	}
}

// AcceptDeliveryRequest records the courier's acceptance of their delivery
// request and assigns them to the delivery. On the first acceptance an
// OrderAssigned event is registered; repeating the same acceptance is a
// no-op.
func (o *Order) AcceptDeliveryRequest(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	alreadyConfirmed := o.delivery.Status() == DeliveryCourierConfirmed
	if err := o.delivery.acceptRequest(courierID); err != nil {
		return err
	}

	if !alreadyConfirmed && o.delivery.Status() == DeliveryCourierConfirmed {
		o.RegisterEvent(OrderAssigned{
			OrderID:    o.id.Bytes(),
			DeliveryID: o.delivery.ID().Bytes(),
			CourierID:  courierID.Bytes(),
		})
	}
	return nil
}

// RejectDeliveryRequest records the courier's refusal of their delivery
// request. The delivery stays pending so dispatch can try another courier.
func (o *Order) RejectDeliveryRequest(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	return o.delivery.rejectRequest(courierID)
}

// TimeoutDeliveryRequest expires the courier's unanswered delivery request.
// A request the courier already resolved is left untouched.
func (o *Order) TimeoutDeliveryRequest(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	return o.delivery.timeoutRequest(courierID)
}

// ConfirmPickup records that the assigned courier collected the order from
// the restaurant and moves the order to InDelivery. Only the assigned courier
// may confirm; a repeated confirmation is a no-op.
func (o *Order) ConfirmPickup(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	switch o.status {
	case StatusAwaitingPickup, StatusInDelivery, StatusDelivered:
	default:
		return ErrInvalidTransition
	}

	if err := o.delivery.confirmPickup(courierID); err != nil {
		return err
	}

	if o.status == StatusAwaitingPickup {
		o.status = StatusInDelivery
		o.RegisterEvent(OrderPickedUp{OrderID: o.id.Bytes(), CourierID: courierID.Bytes()})
	}
	return nil
}

// ConfirmDropoff records that the assigned courier handed the order to the
// customer and moves the order to its terminal Delivered status. Only the
// assigned courier may confirm; a repeated confirmation is a no-op.
func (o *Order) ConfirmDropoff(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	switch o.status {
	case StatusInDelivery, StatusDelivered:
	default:
		return ErrInvalidTransition
	}

	if err := o.delivery.confirmDropoff(courierID); err != nil {
		return err
	}

	if o.status == StatusInDelivery {
		o.status = StatusDelivered
		o.RegisterEvent(OrderDelivered{OrderID: o.id.Bytes(), CourierID: courierID.Bytes()})
	}
	return nil
}

// Cancel abandons the order before delivery starts and fails its delivery,
// expiring any open delivery request. Canceling an already canceled order is
// a no-op; an order in delivery or delivered cannot be canceled.
func (o *Order) Cancel(reason string) error {
	if o.status == StatusCanceled {
		return nil
	}
	if !o.status.CanBeCanceled() {
		return ErrInvalidTransition
	}

	if err := o.delivery.fail(); err != nil {
		return err
	}

	o.status = StatusCanceled
	o.RegisterEvent(OrderCanceled{OrderID: o.id.Bytes(), Reason: reason})
	return nil
}

// TakeEvents drains and returns all pending events of the aggregate,
// including those registered by its Delivery entity.
func (o *Order) TakeEvents() []kernel.DomainEvent {
	events := o.BaseAggregate.TakeEvents()
	return append(events, o.delivery.takeEvents()...)
}
