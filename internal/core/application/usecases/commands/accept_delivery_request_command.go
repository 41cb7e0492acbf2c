package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptDeliveryRequestCommandIsNotConstructed = errors.New(
	"AcceptDeliveryRequestCommand must be created via NewAcceptDeliveryRequestCommand constructor",
)

// AcceptDeliveryRequestCommand represents a courier agreeing to take the
// delivery they were asked about.
type AcceptDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryRequestCommand creates a command for a courier accepting
// their delivery request.
func NewAcceptDeliveryRequestCommand(orderID kernel.UUID, courierID kernel.UUID) (AcceptDeliveryRequestCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return AcceptDeliveryRequestCommand{}, err
	}

	return AcceptDeliveryRequestCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryRequestCommandIsNotConstructed)
}

// OrderID returns the order whose delivery is accepted.
func (c AcceptDeliveryRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the accepting courier.
func (c AcceptDeliveryRequestCommand) CourierID() kernel.UUID {
	return c.courierID
}
