package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed is returned when the command bypassed
// its constructor.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand terminally withdraws an order from dispatch.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order. The reason is
// optional and travels on the published event when present.
func NewCancelOrderCommand(orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the optional cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
