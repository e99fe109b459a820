package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCreateCourierCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier with the fleet. New couriers
// start offline and must go online before receiving offers.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
func NewCreateCourierCommand(courierID kernel.UUID, name string) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the new courier's identity.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return courier.ErrNameIsRequired
	}
	c.name = name
	return nil
}
