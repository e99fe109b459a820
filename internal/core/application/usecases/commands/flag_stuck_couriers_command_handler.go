package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// FlagStuckCouriersCommandHandler detects couriers whose busy flag has no
// active order behind it (a lost completion signal or a crashed writer). It
// changes nothing; each finding is published as a `courier.stuck` event for
// operators to act on.
type FlagStuckCouriersCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	publisher  eventPublisher
	logger     *slog.Logger
}

// NewFlagStuckCouriersCommandHandler creates a handler for the stuck scan.
func NewFlagStuckCouriersCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) FlagStuckCouriersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return FlagStuckCouriersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
		logger:     logger,
	}
}

// Handle runs one scan over all busy couriers.
func (h FlagStuckCouriersCommandHandler) Handle(ctx context.Context, command FlagStuckCouriersCommand) error {
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

	busy, err := uow.CourierRepository().GetAllBusy(ctx)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	now := h.clock.Now()

	for _, c := range busy {
		_, err = orderRepo.GetActiveByCourier(ctx, c.ID())
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		h.logger.WarnContext(ctx, "Courier is busy with no active order",
			"courier_id", c.ID().String(),
			"courier_name", c.Name())
		h.publisher.publish(ctx, events.NewCourierEvent(
			events.CourierStuck, c.ID().String(), "busy with no active order", now))
	}

	return uow.Commit(ctx)
}
