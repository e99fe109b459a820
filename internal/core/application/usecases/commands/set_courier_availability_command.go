package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrSetCourierAvailabilityCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand moves a courier between Online and Offline at
// the courier's own request. Busy couriers cannot change availability; their
// active order must resolve first.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	availability courier.Availability

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to set a courier's
// availability. Only Online and Offline are accepted; Busy is owned by the
// dispatch loop.
func NewSetCourierAvailabilityCommand(
	courierID kernel.UUID,
	availability courier.Availability,
) (SetCourierAvailabilityCommand, error) {
	cmd := SetCourierAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setAvailability(availability),
	); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the courier changing availability.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Availability returns the requested availability.
func (c SetCourierAvailabilityCommand) Availability() courier.Availability {
	return c.availability
}

func (c *SetCourierAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *SetCourierAvailabilityCommand) setAvailability(availability courier.Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	if availability == courier.Busy {
		return courier.ErrCourierIsBusy
	}
	c.availability = availability
	return nil
}
