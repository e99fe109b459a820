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

// OfferOrderCommandHandler orchestrates placing an offer with a courier.
//
// The offer is the exclusivity-critical operation: at most one offer per
// order may be outstanding. Exclusivity is enforced twice: by the aggregate
// (an already-assigned order refuses a second offer) and by the
// status-guarded update (two racing offers both pass the in-memory check,
// but only one conditional write succeeds; the loser gets
// order.ErrOrderAlreadyAssigned with no partial write).
//
// Business failures: order.ErrOrderNotOfferable, order.ErrOrderAlreadyAssigned,
// courier.ErrCourierUnavailable, services.ErrGateClosed,
// services.ErrCourierRecentlyRefused. All returned, never rolled into a
// partial state.
type OfferOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.OfferPolicy
	clock      ports.Clock
	publisher  eventPublisher
}

// NewOfferOrderCommandHandler creates a handler for operator-driven offers.
func NewOfferOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.OfferPolicy,
	clock ports.Clock,
	feed ports.ChangeFeed,
	logger *slog.Logger,
) OfferOrderCommandHandler {
	return OfferOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		publisher:  newEventPublisher(feed, logger),
	}
}

// Handle processes the offer command.
// Loads the order and courier, checks the gate and cooldown policy, applies
// the offer transition to both aggregates and persists them atomically
// (order first, then courier). Publishes `order.offered` after commit.
func (h OfferOrderCommandHandler) Handle(ctx context.Context, command OfferOrderCommand) error {
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

	c, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = h.policy.ValidateOffer(o, c, now); err != nil {
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
		// A failed status guard means another offer (or a cancel) won the
		// race between our read and our write; nothing was persisted.
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return order.ErrOrderAlreadyAssigned
		}
		return err
	}

	// The courier write is guarded too: a concurrent offer for a different
	// order passes its own status guard, so only the availability
	// compare-and-swap keeps the courier from being double booked.
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
