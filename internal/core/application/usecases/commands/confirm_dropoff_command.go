package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmDropoffCommandIsNotConstructed = errors.New(
	"ConfirmDropoffCommand must be created via NewConfirmDropoffCommand constructor",
)

// ConfirmDropoffCommand represents the assigned courier reporting that they
// handed the order to the customer.
type ConfirmDropoffCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmDropoffCommand creates a command to confirm order dropoff.
func NewConfirmDropoffCommand(orderID kernel.UUID, courierID kernel.UUID) (ConfirmDropoffCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return ConfirmDropoffCommand{}, err
	}

	return ConfirmDropoffCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDropoffCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDropoffCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c ConfirmDropoffCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the reporting courier.
func (c ConfirmDropoffCommand) CourierID() kernel.UUID {
	return c.courierID
}
