package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrUnassignOrderCommandIsNotConstructed is returned when the command
	// bypassed its constructor.
	ErrUnassignOrderCommandIsNotConstructed = errors.New(
		"UnassignOrderCommand must be created via NewUnassignOrderCommand constructor",
	)
	// ErrReasonIsRequired is returned when unassigning without a reason;
	// operator interventions are always audited.
	ErrReasonIsRequired = errors.New("reason is required")
)

// UnassignOrderCommand represents an operator revoking an outstanding offer
// or active assignment. Used to cancel stale offers (offers have no timeout)
// and to repair desynchronized assignments.
type UnassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewUnassignOrderCommand creates a command to free an order's courier and
// return the order to the dispatch pool. The reason is mandatory.
func NewUnassignOrderCommand(orderID kernel.UUID, reason string) (UnassignOrderCommand, error) {
	cmd := UnassignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return UnassignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderCommandIsNotConstructed)
}

// OrderID returns the order to unassign.
func (c UnassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the operator-supplied audit reason.
func (c UnassignOrderCommand) Reason() string {
	return c.reason
}

func (c *UnassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UnassignOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	c.reason = reason
	return nil
}
