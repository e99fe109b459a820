package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// ErrOfferNextOrderCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrOfferNextOrderCommandIsNotConstructed = errors.New(
	"OfferNextOrderCommand must be created via NewOfferNextOrderCommand constructor",
)

// OfferNextOrderCommand drives one tick of the automatic dispatch loop:
// pick the most urgent offerable order inside its gate window and place an
// offer with an eligible courier. Carries no data; the handler resolves
// everything from current state.
type OfferNextOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewOfferNextOrderCommand creates a dispatch tick command.
func NewOfferNextOrderCommand() (OfferNextOrderCommand, error) {
	return OfferNextOrderCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c OfferNextOrderCommand) Validate() error {
	return c.guard.Validate(ErrOfferNextOrderCommandIsNotConstructed)
}
