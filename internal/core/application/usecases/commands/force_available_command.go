package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrForceAvailableCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrForceAvailableCommandIsNotConstructed = errors.New(
	"ForceAvailableCommand must be created via NewForceAvailableCommand constructor",
)

// ForceAvailableCommand is the operator override that returns a courier to
// rotation regardless of current availability. Used to repair couriers left
// busy by a lost completion signal.
type ForceAvailableCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewForceAvailableCommand creates a command to force a courier online.
func NewForceAvailableCommand(courierID kernel.UUID) (ForceAvailableCommand, error) {
	cmd := ForceAvailableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return ForceAvailableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceAvailableCommand) Validate() error {
	return c.guard.Validate(ErrForceAvailableCommandIsNotConstructed)
}

// CourierID returns the courier to force online.
func (c ForceAvailableCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ForceAvailableCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
