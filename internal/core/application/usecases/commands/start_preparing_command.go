package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartPreparingCommandIsNotConstructed = errors.New(
	"StartPreparingCommand must be created via NewStartPreparingCommand constructor",
)

// StartPreparingCommand represents the restaurant starting to cook an order.
type StartPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparingCommand creates a command to start order preparation.
func NewStartPreparingCommand(orderID kernel.UUID) (StartPreparingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartPreparingCommand{}, err
	}

	return StartPreparingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparingCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparingCommandIsNotConstructed)
}

// OrderID returns the order being prepared.
func (c StartPreparingCommand) OrderID() kernel.UUID {
	return c.orderID
}
