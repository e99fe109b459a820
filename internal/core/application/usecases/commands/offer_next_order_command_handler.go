package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrNoOfferableOrderFound is returned when no order is ready for dispatch
	// inside its gate window. Expected on most ticks.
	ErrNoOfferableOrderFound = errors.New("no offerable order found")
	// ErrNoCouriersOnline is returned when an order is due but no eligible
	// courier exists. Expected while the fleet is idle or cooling down.
	ErrNoCouriersOnline = errors.New("no couriers online")
)

// OfferNextOrderCommandHandler runs one tick of automatic dispatch: the most
// urgent order whose gate is open gets offered to one eligible courier.
//
// Candidate orders come back earliest-pickup first, so urgency ordering is
// the repository's. Courier choice is the picker's; a courier that just
// refused the order is avoided when any alternative is online.
type OfferNextOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.OfferPolicy
	picker     services.CourierPicker
	clock      ports.Clock
	publisher  eventPublisher
}

// NewOfferNextOrderCommandHandler creates a handler for the dispatch tick.
func NewOfferNextOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.OfferPolicy,
	picker services.CourierPicker,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) OfferNextOrderCommandHandler {
	return OfferNextOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		picker:     picker,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
	}
}

// Handle processes one dispatch tick.
func (h OfferNextOrderCommandHandler) Handle(ctx context.Context, command OfferNextOrderCommand) error {
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

	now := h.clock.Now()

	// The gate admits orders whose pickup is at most the gate window away,
	// so the repository cutoff is now plus the window.
	o, err := orderRepo.GetFirstOfferable(ctx, now.Add(h.policy.GateWindow()))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrNoOfferableOrderFound
		}
		return err
	}

	couriers, err := courierRepo.GetAllOnline(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return ErrNoCouriersOnline
	}

	c, err := h.picker.Pick(o, couriers, now)
	if err != nil {
		if errors.Is(err, services.ErrNoCourierEligible) {
			return ErrNoCouriersOnline
		}
		return err
	}

	expectedStatus := o.Status()
	expectedAvailability := c.Availability()
	if err = o.Offer(c.ID()); err != nil {
		return err
	}
	if err = c.MarkBusy(); err != nil {
		return err
	}

	if err = orderRepo.UpdateWithStatusGuard(ctx, o, expectedStatus); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return order.ErrOrderAlreadyAssigned
		}
		return err
	}

	// Availability compare-and-swap: a concurrent tick or operator offer for
	// a different order may have booked this courier already.
	if err = courierRepo.UpdateWithAvailabilityGuard(ctx, c, expectedAvailability); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return courier.ErrCourierUnavailable
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.publish(ctx, events.NewOrderEvent(events.OrderOffered, o, now))
	return nil
}
