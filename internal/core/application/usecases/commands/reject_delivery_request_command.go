package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectDeliveryRequestCommandIsNotConstructed = errors.New(
	"RejectDeliveryRequestCommand must be created via NewRejectDeliveryRequestCommand constructor",
)

// RejectDeliveryRequestCommand represents a courier declining the delivery
// they were asked about.
type RejectDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectDeliveryRequestCommand creates a command for a courier rejecting
// their delivery request.
func NewRejectDeliveryRequestCommand(orderID kernel.UUID, courierID kernel.UUID) (RejectDeliveryRequestCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return RejectDeliveryRequestCommand{}, err
	}

	return RejectDeliveryRequestCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryRequestCommandIsNotConstructed)
}

// OrderID returns the order whose delivery is rejected.
func (c RejectDeliveryRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the rejecting courier.
func (c RejectDeliveryRequestCommand) CourierID() kernel.UUID {
	return c.courierID
}
