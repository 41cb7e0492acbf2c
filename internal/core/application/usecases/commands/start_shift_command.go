package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartShiftCommandIsNotConstructed = errors.New(
	"StartShiftCommand must be created via NewStartShiftCommand constructor",
)

// StartShiftCommand represents a courier declaring availability for new
// deliveries.
type StartShiftCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartShiftCommand creates a command to start the courier's shift.
func NewStartShiftCommand(courierID kernel.UUID) (StartShiftCommand, error) {
	if err := courierID.Validate(); err != nil {
		return StartShiftCommand{}, err
	}

	return StartShiftCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartShiftCommand) Validate() error {
	return c.guard.Validate(ErrStartShiftCommandIsNotConstructed)
}

// CourierID returns the courier starting the shift.
func (c StartShiftCommand) CourierID() kernel.UUID {
	return c.courierID
}
