package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrFinishPreparingCommandIsNotConstructed = errors.New(
	"FinishPreparingCommand must be created via NewFinishPreparingCommand constructor",
)

// FinishPreparingCommand represents the restaurant finishing an order, ready
// for courier pickup.
type FinishPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinishPreparingCommand creates a command to finish order preparation.
func NewFinishPreparingCommand(orderID kernel.UUID) (FinishPreparingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FinishPreparingCommand{}, err
	}

	return FinishPreparingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishPreparingCommand) Validate() error {
	return c.guard.Validate(ErrFinishPreparingCommandIsNotConstructed)
}

// OrderID returns the prepared order.
func (c FinishPreparingCommand) OrderID() kernel.UUID {
	return c.orderID
}
