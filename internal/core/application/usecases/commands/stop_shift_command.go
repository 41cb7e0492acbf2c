package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStopShiftCommandIsNotConstructed = errors.New(
	"StopShiftCommand must be created via NewStopShiftCommand constructor",
)

// StopShiftCommand represents a courier ending their shift. Orders already in
// delivery stay with the courier until dropped off.
type StopShiftCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStopShiftCommand creates a command to stop the courier's shift.
func NewStopShiftCommand(courierID kernel.UUID) (StopShiftCommand, error) {
	if err := courierID.Validate(); err != nil {
		return StopShiftCommand{}, err
	}

	return StopShiftCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StopShiftCommand) Validate() error {
	return c.guard.Validate(ErrStopShiftCommandIsNotConstructed)
}

// CourierID returns the courier stopping the shift.
func (c StopShiftCommand) CourierID() kernel.UUID {
	return c.courierID
}
