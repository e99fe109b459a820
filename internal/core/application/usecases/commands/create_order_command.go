package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command bypassed
// its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a confirmed booking on the dispatch board.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	reference         string
	scheduledPickupAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register an order. The reference
// is the external booking identifier and must be unique; scheduledPickupAt is
// nil for on-demand orders, which dispatch immediately.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	reference string,
	scheduledPickupAt *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		scheduledPickupAt: scheduledPickupAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReference(reference),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the new order's identity.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reference returns the external booking reference.
func (c CreateOrderCommand) Reference() string {
	return c.reference
}

// ScheduledPickupAt returns the pickup time, nil for on-demand orders.
func (c CreateOrderCommand) ScheduledPickupAt() *time.Time {
	return c.scheduledPickupAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setReference(reference string) error {
	if reference == "" {
		return order.ErrReferenceIsRequired
	}
	c.reference = reference
	return nil
}
