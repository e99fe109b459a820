package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// ForceAvailableCommandHandler applies the operator availability override.
// It touches only the courier; any order the courier appeared to hold must
// be repaired separately via unassign.
type ForceAvailableCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      ports.Clock
	publisher  eventPublisher
}

// NewForceAvailableCommandHandler creates a handler for the availability
// override.
func NewForceAvailableCommandHandler(
	uowFactory CourierUoWFactory,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) ForceAvailableCommandHandler {
	return ForceAvailableCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
	}
}

// Handle processes the override command.
func (h ForceAvailableCommandHandler) Handle(ctx context.Context, command ForceAvailableCommand) error {
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

	c.ForceAvailable()

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.publish(ctx, events.NewCourierEvent(
		events.CourierForcedAvailable, c.ID().String(), "operator override", h.clock.Now()))
	return nil
}
