package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrOfferOrderCommandIsNotConstructed is returned when the command bypassed
// its constructor.
var ErrOfferOrderCommandIsNotConstructed = errors.New(
	"OfferOrderCommand must be created via NewOfferOrderCommand constructor",
)

// OfferOrderCommand represents an operator placing a specific order with a
// specific courier.
//
// Example:
//
//	cmd, err := NewOfferOrderCommand(orderID, courierID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrGateClosed):
//	    // scheduled order, too early to dispatch
//	case errors.Is(err, order.ErrOrderAlreadyAssigned):
//	    // another offer is already outstanding
//	}
type OfferOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOfferOrderCommand creates a command to offer an order to a courier.
// Both identifiers must be valid UUIDs.
func NewOfferOrderCommand(orderID, courierID kernel.UUID) (OfferOrderCommand, error) {
	cmd := OfferOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return OfferOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OfferOrderCommand) Validate() error {
	return c.guard.Validate(ErrOfferOrderCommandIsNotConstructed)
}

// OrderID returns the order to offer.
func (c OfferOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier to offer the order to.
func (c OfferOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *OfferOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *OfferOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
