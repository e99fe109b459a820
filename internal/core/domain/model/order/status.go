package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the dispatch workflow.
//
// State transitions:
//
//	Ready ──> Offered ──> CourierAccepted ──> ArrivedPickup ──> InProgress ──> Delivered
//	  ^          │
//	  │          ├──> Refused (courier turned the offer down; re-offerable)
//	  └──────────┘    (unassign)
//
//	any non-terminal state ──> Cancelled
//
// Progress signals from couriers are monotonic: a later-stage signal may be
// applied even if an earlier one was missed, but status never moves backward.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and the change feed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Ready is the initial status of an order awaiting dispatch.
	Ready

	// Offered means exactly one courier has an outstanding offer for the order.
	Offered

	// CourierAccepted means the offered courier confirmed the job.
	CourierAccepted

	// ArrivedPickup means the courier reported arrival at the pickup point.
	ArrivedPickup

	// InProgress means the courier picked the shipment up and is delivering.
	InProgress

	// Delivered is a terminal status: the shipment reached its destination.
	Delivered

	// Cancelled is a terminal status: the order was withdrawn by an operator.
	Cancelled

	// Refused means the last offered courier turned the offer down.
	// The order is re-offerable, subject to the refusal cooldown.
	Refused
)

// getStatusStrings returns the string representation for every Status value,
// including Unknown, to support display and logging.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Ready:           "ready",
		Offered:         "offered",
		CourierAccepted: "courier_accepted",
		ArrivedPickup:   "arrived_pickup",
		InProgress:      "in_progress",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
		Refused:         "refused",
	}
}

// getValidStatusStrings returns only valid Status values to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Ready:           "ready",
		Offered:         "offered",
		CourierAccepted: "courier_accepted",
		ArrivedPickup:   "arrived_pickup",
		InProgress:      "in_progress",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
		Refused:         "refused",
	}
}

// StatusFromString parses a status from its feed/persistence representation.
// Returns an error for strings that do not name a valid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the feed representation of the status ("ready", "offered", ...).
// Implements fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Delivered and Cancelled orders are immutable.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsOfferable reports whether an order in this status may be offered to a
// courier. Ready orders and Refused orders (re-offerable after a refusal)
// qualify.
func (s Status) IsOfferable() bool {
	return s == Ready || s == Refused
}

// IsActiveAssignment reports whether the status implies a courier currently
// holds the order. These are exactly the statuses in which an order must
// carry an assigned courier.
func (s Status) IsActiveAssignment() bool {
	switch s {
	case Offered, CourierAccepted, ArrivedPickup, InProgress:
		return true
	default:
		return false
	}
}

// progressRank orders the courier-driven progress stages so that signals can
// be applied monotonically. Statuses outside the progression rank as zero.
func (s Status) progressRank() int {
	switch s {
	case Offered:
		return 1
	case CourierAccepted:
		return 2
	case ArrivedPickup:
		return 3
	case InProgress:
		return 4
	default:
		return 0
	}
}

// CanProgressTo reports whether a courier progress signal targeting the given
// status moves the order strictly forward. A signal that would repeat the
// current stage or move it backward is stale.
func (s Status) CanProgressTo(target Status) bool {
	if !s.IsActiveAssignment() || !target.IsActiveAssignment() {
		return false
	}
	return target.progressRank() > s.progressRank()
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment: an order carries a courier exactly while the offer or
// assignment is active.
//
// Parameters:
//   - courier: whether the order has a courier assigned
//
// Returns:
//   - error: validation error if status and courier assignment are inconsistent
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && !s.IsActiveAssignment() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !courier && s.IsActiveAssignment() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}
