package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrUserIsRequired  = errors.New("user id is required")
	ErrItemsAreMissing = errors.New("order items are required")
)

// PlaceOrderCommand represents a customer submitting a new order: who orders,
// from which restaurant, which items, and where to bring them.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand("user-42", restaurantID, pickup, dropoff, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Placed order %s", cmd.OrderID())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	userID         string
	restaurantID   kernel.UUID
	pickupAddress  kernel.Address
	dropoffAddress kernel.Address
	items          []order.OrderItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order. Automatically
// generates a unique ID for the order.
func NewPlaceOrderCommand(
	userID string,
	restaurantID kernel.UUID,
	pickupAddress kernel.Address,
	dropoffAddress kernel.Address,
	items []order.OrderItem,
) (PlaceOrderCommand, error) {
	if userID == "" {
		return PlaceOrderCommand{}, ErrUserIsRequired
	}
	if len(items) == 0 {
		return PlaceOrderCommand{}, ErrItemsAreMissing
	}
	if err := errors.Join(
		restaurantID.Validate(),
		pickupAddress.Validate(),
		dropoffAddress.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:        kernel.NewUUID(),
		userID:         userID,
		restaurantID:   restaurantID,
		pickupAddress:  pickupAddress,
		dropoffAddress: dropoffAddress,
		items:          items,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the generated order ID.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the ordering customer.
func (c PlaceOrderCommand) UserID() string {
	return c.userID
}

// RestaurantID returns the restaurant preparing the order.
func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// PickupAddress returns the restaurant address.
func (c PlaceOrderCommand) PickupAddress() kernel.Address {
	return c.pickupAddress
}

// DropoffAddress returns the customer address.
func (c PlaceOrderCommand) DropoffAddress() kernel.Address {
	return c.dropoffAddress
}

// Items returns the ordered line items.
func (c PlaceOrderCommand) Items() []order.OrderItem {
	return c.items
}
