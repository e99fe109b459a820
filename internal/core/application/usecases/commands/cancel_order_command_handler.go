package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// CancelOrderCommandHandler terminally cancels an order. A cancelled order
// never re-enters the dispatch pool; if a courier held it, the courier is
// freed in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	publisher  eventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
	}
}

// Handle processes the cancel command. Returns order.ErrOrderIsTerminal when
// the order is already delivered or cancelled.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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
	if err = o.Cancel(); err != nil {
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

	ev := events.NewOrderEvent(events.OrderCancelled, o, h.clock.Now())
	if heldBy != nil {
		ev.CourierID = heldBy.String()
	}
	ev.Reason = command.Reason()
	h.publisher.publish(ctx, ev)
	return nil
}
