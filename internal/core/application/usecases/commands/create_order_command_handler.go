package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler registers a booking on the board. Creation is
// idempotent on the external reference: a redelivered booking confirmation
// finds the existing order and succeeds without a duplicate.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	publisher  eventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order registration.
// Registration only touches the order aggregate, so an order-only unit of
// work suffices.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
		logger:     logger,
	}
}

// Handle processes the create command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
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

	_, err := orderRepo.GetByReference(ctx, command.Reference())
	if err == nil {
		h.logger.DebugContext(ctx, "Order already registered for reference",
			"reference", command.Reference())
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	o, err := order.NewOrder(command.OrderID(), command.Reference(), command.ScheduledPickupAt())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.publish(ctx, events.NewOrderEvent(events.OrderCreated, o, h.clock.Now()))
	return nil
}
