package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrApplyCourierResponseCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrApplyCourierResponseCommandIsNotConstructed = errors.New(
	"ApplyCourierResponseCommand must be created via NewApplyCourierResponseCommand constructor",
)

// Response enumerates the signals a courier can send about an order.
type Response string

const (
	// ResponseAccept confirms the outstanding offer.
	ResponseAccept Response = "accept"
	// ResponseRefuse turns the outstanding offer down.
	ResponseRefuse Response = "refuse"
	// ResponseArrived reports arrival at the pickup point.
	ResponseArrived Response = "arrived"
	// ResponseStarted reports the shipment picked up and delivery underway.
	ResponseStarted Response = "started"
	// ResponseDelivered reports terminal, successful completion.
	ResponseDelivered Response = "delivered"
)

// Validate checks that the response names a known signal.
func (r Response) Validate() error {
	switch r {
	case ResponseAccept, ResponseRefuse, ResponseArrived, ResponseStarted, ResponseDelivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("response is invalid",
			fmt.Errorf("%q is not a valid courier response", string(r)))
	}
}

// ApplyCourierResponseCommand folds one courier signal into order and courier
// state. This is the sole path by which external actor signals reach the
// coordinator; the change feed may redeliver it, so handling is idempotent.
type ApplyCourierResponseCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	response  Response
	reason    string

	guard guard.ConstructorGuard
}

// NewApplyCourierResponseCommand creates a command carrying one courier signal.
// The reason is only meaningful for refusals and may be empty.
func NewApplyCourierResponseCommand(
	orderID, courierID kernel.UUID,
	response Response,
	reason string,
) (ApplyCourierResponseCommand, error) {
	cmd := ApplyCourierResponseCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setResponse(response),
	); err != nil {
		return ApplyCourierResponseCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCourierResponseCommand) Validate() error {
	return c.guard.Validate(ErrApplyCourierResponseCommandIsNotConstructed)
}

// OrderID returns the order the signal concerns.
func (c ApplyCourierResponseCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier that sent the signal.
func (c ApplyCourierResponseCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Response returns the signal kind.
func (c ApplyCourierResponseCommand) Response() Response {
	return c.response
}

// Reason returns the courier-supplied refusal reason, possibly empty.
func (c ApplyCourierResponseCommand) Reason() string {
	return c.reason
}

func (c *ApplyCourierResponseCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ApplyCourierResponseCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *ApplyCourierResponseCommand) setResponse(response Response) error {
	if err := response.Validate(); err != nil {
		return err
	}
	c.response = response
	return nil
}
