package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand represents the assigned courier reporting that they
// collected the order from the restaurant.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command to confirm order pickup.
func NewConfirmPickupCommand(orderID kernel.UUID, courierID kernel.UUID) (ConfirmPickupCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return ConfirmPickupCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// OrderID returns the picked-up order.
func (c ConfirmPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the reporting courier.
func (c ConfirmPickupCommand) CourierID() kernel.UUID {
	return c.courierID
}
