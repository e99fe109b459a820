package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler registers a courier with the fleet.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the create command.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, command CreateCourierCommand) error {
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

	c, err := courier.NewCourier(command.CourierID(), command.Name())
	if err != nil {
		return err
	}

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
