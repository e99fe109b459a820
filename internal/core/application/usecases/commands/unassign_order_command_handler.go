package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// UnassignOrderCommandHandler frees an order's courier and returns the order
// to Ready. The audit reason travels on the published event; the feed is the
// audit log for operator interventions.
type UnassignOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	publisher  eventPublisher
}

// NewUnassignOrderCommandHandler creates a handler for operator unassignment.
func NewUnassignOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) UnassignOrderCommandHandler {
	return UnassignOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
	}
}

// Handle processes the unassign command. Returns order.ErrOrderNotAssigned
// when no courier holds the order and order.ErrOrderIsTerminal for delivered
// or cancelled orders.
func (h UnassignOrderCommandHandler) Handle(ctx context.Context, command UnassignOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	heldBy := o.Courier()
	expectedStatus := o.Status()
	if err = o.Unassign(); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, o, expectedStatus); err != nil {
		return err
	}

	if heldBy != nil {
		c, courierErr := courierRepo.Get(ctx, *heldBy)
		if courierErr != nil {
			return courierErr
		}
		c.Release()
		if courierErr = courierRepo.Update(ctx, c); courierErr != nil {
			return courierErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	ev := events.NewOrderEvent(events.OrderUnassigned, o, h.clock.Now())
	if heldBy != nil {
		ev.CourierID = heldBy.String()
	}
	ev.Reason = command.Reason()
	h.publisher.publish(ctx, ev)
	return nil
}
