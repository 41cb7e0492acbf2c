package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrTimeoutDeliveryRequestCommandIsNotConstructed = errors.New(
	"TimeoutDeliveryRequestCommand must be created via NewTimeoutDeliveryRequestCommand constructor",
)

// TimeoutDeliveryRequestCommand expires a delivery request the courier never
// answered. Issued by the in-process timer and by the periodic sweep job.
type TimeoutDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTimeoutDeliveryRequestCommand creates a command to time out a delivery request.
func NewTimeoutDeliveryRequestCommand(orderID kernel.UUID, courierID kernel.UUID) (TimeoutDeliveryRequestCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return TimeoutDeliveryRequestCommand{}, err
	}

	return TimeoutDeliveryRequestCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TimeoutDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrTimeoutDeliveryRequestCommandIsNotConstructed)
}

// OrderID returns the order whose request expires.
func (c TimeoutDeliveryRequestCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier who never answered.
func (c TimeoutDeliveryRequestCommand) CourierID() kernel.UUID {
	return c.courierID
}
