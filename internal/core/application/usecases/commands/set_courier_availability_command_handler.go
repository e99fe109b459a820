package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// SetCourierAvailabilityCommandHandler applies a courier-requested
// availability change. Returns courier.ErrCourierIsBusy when the courier
// holds an active order.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierAvailabilityCommandHandler creates a handler for availability
// changes.
func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability change.
func (h SetCourierAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command SetCourierAvailabilityCommand,
) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if command.Availability() == courier.Online {
		err = c.GoOnline()
	} else {
		err = c.GoOffline()
	}
	if err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
