package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoCourierEligible is returned when none of the candidate couriers can
// receive the offer: none are online, or the only online candidates are
// barred by the refusal cooldown.
var ErrNoCourierEligible = errors.New("no eligible courier for this order")

// CourierPicker is a domain service selecting a courier for tick-driven
// dispatch. Operators pick couriers themselves; the periodic gate tick uses
// this service to choose automatically among the online candidates.
//
// Selection rules:
//   - only Online couriers are considered
//   - the courier barred by the refusal cooldown is skipped
//   - among the rest, any courier other than the last refuser is preferred;
//     ties keep the first candidate
type CourierPicker struct {
	policy OfferPolicy
}

// NewCourierPicker creates a CourierPicker applying the given offer policy.
func NewCourierPicker(policy OfferPolicy) CourierPicker {
	return CourierPicker{policy: policy}
}

// Pick selects the courier to offer the order to, or ErrNoCourierEligible
// when no candidate qualifies.
func (cp CourierPicker) Pick(o *order.Order, candidates []*courier.Courier, now time.Time) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var best *courier.Courier
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsOnline() {
			continue
		}

		if err := cp.policy.ValidateCooldown(o, c.ID(), now); err != nil {
			continue
		}

		if best == nil || cp.prefers(o, c, best) {
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoCourierEligible
	}

	return best, nil
}

// prefers reports whether candidate should replace current for the order.
// A courier other than the last refuser is preferred over the last refuser
// even once the cooldown has elapsed.
func (cp CourierPicker) prefers(o *order.Order, candidate, current *courier.Courier) bool {
	lastBy := o.LastRefusedBy()
	if lastBy == nil {
		return false
	}
	return lastBy.IsEqual(current.ID()) && !lastBy.IsEqual(candidate.ID())
}
