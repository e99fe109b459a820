package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// ErrFlagStuckCouriersCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrFlagStuckCouriersCommandIsNotConstructed = errors.New(
	"FlagStuckCouriersCommand must be created via NewFlagStuckCouriersCommand constructor",
)

// FlagStuckCouriersCommand scans for couriers marked busy with no active
// order behind them. Detection only; repair stays with the operator.
type FlagStuckCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewFlagStuckCouriersCommand creates a stuck-courier scan command.
func NewFlagStuckCouriersCommand() (FlagStuckCouriersCommand, error) {
	return FlagStuckCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FlagStuckCouriersCommand) Validate() error {
	return c.guard.Validate(ErrFlagStuckCouriersCommandIsNotConstructed)
}
