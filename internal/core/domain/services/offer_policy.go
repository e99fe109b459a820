package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

const (
	// DefaultGateWindow is how early before the scheduled pickup a dispatch
	// offer may be placed. Offers for scheduled orders earlier than this are
	// rejected with ErrGateClosed.
	DefaultGateWindow = 45 * time.Minute

	// DefaultRefusalCooldown is how long the courier that refused an order
	// last is barred from receiving the same order again. Other couriers are
	// eligible immediately.
	DefaultRefusalCooldown = 5 * time.Minute
)

var (
	// ErrGateClosed is returned when an offer targets a scheduled order
	// whose dispatch gate has not opened yet.
	ErrGateClosed = errors.New("dispatch gate is closed for this order")

	// ErrCourierRecentlyRefused is returned when an offer targets the
	// courier that refused the order within the cooldown window.
	ErrCourierRecentlyRefused = errors.New("courier refused this order within the cooldown window")
)

// OfferPolicy is a domain service deciding whether an order may be offered
// to a courier at a given moment. It owns the two timing rules the aggregates
// cannot express alone:
//
//   - the dispatch gate: a scheduled order may not be offered earlier than
//     the gate window before its pickup time (immediate jobs have no gate);
//   - the refusal cooldown: the courier that refused the order last is not
//     re-offered it until the cooldown elapses.
//
// The current time is passed in by the caller (from the injected Clock) so
// the policy stays deterministic under test.
type OfferPolicy struct {
	gateWindow      time.Duration
	refusalCooldown time.Duration
}

// NewOfferPolicy creates an OfferPolicy with the default gate window and
// refusal cooldown.
func NewOfferPolicy() OfferPolicy {
	return OfferPolicy{
		gateWindow:      DefaultGateWindow,
		refusalCooldown: DefaultRefusalCooldown,
	}
}

// NewOfferPolicyWith creates an OfferPolicy with explicit durations.
// Non-positive values fall back to the defaults.
func NewOfferPolicyWith(gateWindow, refusalCooldown time.Duration) OfferPolicy {
	p := NewOfferPolicy()
	if gateWindow > 0 {
		p.gateWindow = gateWindow
	}
	if refusalCooldown > 0 {
		p.refusalCooldown = refusalCooldown
	}
	return p
}

// GateWindow returns how early before a scheduled pickup offers open.
func (p OfferPolicy) GateWindow() time.Duration {
	return p.gateWindow
}

// GateOpensAt returns the earliest moment the order may be offered.
// Immediate jobs (no scheduled pickup) are open from creation.
func (p OfferPolicy) GateOpensAt(o *order.Order) time.Time {
	scheduled := o.ScheduledPickupAt()
	if scheduled == nil {
		return time.Time{}
	}
	return scheduled.Add(-p.gateWindow)
}

// ValidateGate checks the dispatch gate for the order at the given moment.
// Returns ErrGateClosed when the order is scheduled and now precedes the
// gate opening.
func (p OfferPolicy) ValidateGate(o *order.Order, now time.Time) error {
	scheduled := o.ScheduledPickupAt()
	if scheduled == nil {
		return nil
	}
	if now.Before(scheduled.Add(-p.gateWindow)) {
		return ErrGateClosed
	}
	return nil
}

// ValidateCooldown checks the refusal cooldown for the order/courier pair at
// the given moment. Only the most recent refuser is barred, and only until
// the cooldown elapses.
func (p OfferPolicy) ValidateCooldown(o *order.Order, courierID kernel.UUID, now time.Time) error {
	lastBy := o.LastRefusedBy()
	lastAt := o.LastRefusedAt()
	if lastBy == nil || lastAt == nil {
		return nil
	}
	if !lastBy.IsEqual(courierID) {
		return nil
	}
	if now.Before(lastAt.Add(p.refusalCooldown)) {
		return ErrCourierRecentlyRefused
	}
	return nil
}

// ValidateOffer runs every offer precondition the policy owns: the order and
// courier must be valid aggregates, the gate must be open and the cooldown
// must not bar the courier. Status and availability preconditions live on
// the aggregates themselves and are checked by the offer transition.
func (p OfferPolicy) ValidateOffer(o *order.Order, c *courier.Courier, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := p.ValidateGate(o, now); err != nil {
		return err
	}
	return p.ValidateCooldown(o, c.ID(), now)
}
