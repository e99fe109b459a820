package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations. These are the business errors the
// coordinator returns synchronously; none of them indicate infrastructure
// failure and none require rollback beyond the enclosing transaction.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrReferenceIsRequired is returned when creating an order without a
	// human-readable reference code.
	ErrReferenceIsRequired = errs.NewValueIsRequiredError("reference")

	// ErrOrderNotOfferable is returned when an offer targets an order whose
	// status does not allow dispatch (terminal, or mid-delivery).
	ErrOrderNotOfferable = errors.New("order is not eligible for an offer")

	// ErrOrderAlreadyAssigned is returned when an offer targets an order that
	// already has an outstanding offer or an active assignment. At most one
	// offer per order may be outstanding at any time.
	ErrOrderAlreadyAssigned = errors.New("order already has an outstanding offer or active assignment")

	// ErrStaleSignal marks a duplicate or out-of-order courier signal.
	// The change feed delivers at least once, so callers treat this as a
	// silent no-op rather than a failure.
	ErrStaleSignal = errors.New("stale courier signal")

	// ErrOrderNotAssigned is returned when unassigning an order that holds
	// no courier.
	ErrOrderNotAssigned = errors.New("order has no assigned courier")

	// ErrOrderIsTerminal is returned when mutating a delivered or cancelled
	// order.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Order is the aggregate root for a delivery job flowing through the
// dispatch engine. It owns the status state machine, the courier assignment,
// and the refusal bookkeeping used by the re-offer cooldown.
//
// Invariants:
//   - A courier is assigned iff the status is an active assignment
//     (Offered, CourierAccepted, ArrivedPickup, InProgress).
//   - Status transitions follow the dispatch workflow; progress signals are
//     monotonic and terminal statuses are immutable.
//   - Refusal bookkeeping (count, last refuser, refusal time) changes only
//     through Refuse.
//
// The struct uses private fields and can only be created via NewOrder or
// RestoreOrder so that every instance satisfies the invariants.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// reference is the human-readable order code, e.g. "A-100"
	reference string

	// status is the current state in the dispatch lifecycle
	status Status

	// scheduledPickupAt is the agreed pickup time; nil means an immediate job
	scheduledPickupAt *time.Time

	// courierID is the courier holding the offer or assignment (nil if none)
	courierID *kernel.UUID

	// refusalCount is how many times couriers have refused this order
	refusalCount int

	// lastRefusedBy identifies the courier that refused most recently
	lastRefusedBy *kernel.UUID

	// lastRefusedAt is when the most recent refusal happened
	lastRefusedAt *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates an Order in Ready status awaiting dispatch.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - reference: human-readable order code (must be non-empty)
//   - scheduledPickupAt: agreed pickup time; nil for immediate jobs
//
// Returns a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, reference string, scheduledPickupAt *time.Time) (*Order, error) {
	o := &Order{
		status: Ready,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
	); err != nil {
		return nil, err
	}

	o.scheduledPickupAt = scheduledPickupAt
	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it restores the full persisted state, including the
// assignment and refusal bookkeeping, and verifies the courier/status
// consistency invariant before handing the aggregate back.
func RestoreOrder(
	id kernel.UUID,
	reference string,
	status Status,
	scheduledPickupAt *time.Time,
	courierID *kernel.UUID,
	refusalCount int,
	lastRefusedBy *kernel.UUID,
	lastRefusedAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		status.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}
	if refusalCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("refusalCount", refusalCount, 0, int(^uint(0)>>1))
	}

	o.status = status
	o.scheduledPickupAt = scheduledPickupAt
	o.courierID = courierID
	o.refusalCount = refusalCount
	o.lastRefusedBy = lastRefusedBy
	o.lastRefusedAt = lastRefusedAt
	return o, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Reference returns the human-readable order code.
func (o *Order) Reference() string {
	return o.reference
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ScheduledPickupAt returns the agreed pickup time, or nil for immediate jobs.
func (o *Order) ScheduledPickupAt() *time.Time {
	return o.scheduledPickupAt
}

// Courier returns the ID of the courier holding the offer or assignment.
// Returns nil if no courier is assigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// RefusalCount returns how many times couriers have refused this order.
func (o *Order) RefusalCount() int {
	return o.refusalCount
}

// LastRefusedBy returns the courier that refused most recently, or nil.
func (o *Order) LastRefusedBy() *kernel.UUID {
	return o.lastRefusedBy
}

// LastRefusedAt returns when the most recent refusal happened, or nil.
func (o *Order) LastRefusedAt() *time.Time {
	return o.lastRefusedAt
}

// HasActiveAssignment reports whether a courier currently holds the order.
func (o *Order) HasActiveAssignment() bool {
	return o.status.IsActiveAssignment()
}

// isHeldBy reports whether the given courier currently holds the offer or
// assignment for this order.
func (o *Order) isHeldBy(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// Offer places the order with a single courier.
//
// Valid only from an offerable status (Ready or Refused). An order with an
// outstanding offer or active assignment returns ErrOrderAlreadyAssigned,
// which is what guarantees at most one outstanding offer per order; any other
// ineligible status returns ErrOrderNotOfferable.
//
// The dispatch gate and refusal cooldown are checked by the OfferPolicy
// domain service before this method is called.
func (o *Order) Offer(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status.IsActiveAssignment() {
		return ErrOrderAlreadyAssigned
	}
	if !o.status.IsOfferable() {
		return ErrOrderNotOfferable
	}

	o.status = Offered
	o.courierID = &courierID
	return nil
}

// Accept records the courier's acceptance of an outstanding offer.
//
// Valid only from Offered and only for the courier holding the offer.
// A duplicate accept (already CourierAccepted by the same courier) and any
// other mismatch return ErrStaleSignal, which callers treat as a no-op so
// that redelivered signals are idempotent.
func (o *Order) Accept(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if !o.isHeldBy(courierID) || o.status != Offered {
		return ErrStaleSignal
	}

	o.status = CourierAccepted
	return nil
}

// Refuse records the courier turning an outstanding offer down.
//
// Valid only from Offered and only for the courier holding the offer. The
// assignment is cleared, the refusal bookkeeping is updated, and the order
// becomes Refused: re-offerable, but subject to the cooldown against the
// refusing courier. This transition must never leave the order captured by
// the courier that rejected it.
func (o *Order) Refuse(courierID kernel.UUID, refusedAt time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if !o.isHeldBy(courierID) || o.status != Offered {
		return ErrStaleSignal
	}

	o.status = Refused
	o.courierID = nil
	o.refusalCount++
	o.lastRefusedBy = &courierID
	o.lastRefusedAt = &refusedAt
	return nil
}

// ArriveAtPickup records the courier's arrival at the pickup point.
// Monotonic: applied from any earlier active stage (a missed accept does not
// block it); a repeat or backward signal returns ErrStaleSignal.
func (o *Order) ArriveAtPickup(courierID kernel.UUID) error {
	return o.progressTo(courierID, ArrivedPickup)
}

// StartDelivery records the courier picking the shipment up.
// Monotonic in the same way as ArriveAtPickup.
func (o *Order) StartDelivery(courierID kernel.UUID) error {
	return o.progressTo(courierID, InProgress)
}

// progressTo applies a monotonic courier progress signal.
func (o *Order) progressTo(courierID kernel.UUID, target Status) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if !o.isHeldBy(courierID) || !o.status.CanProgressTo(target) {
		return ErrStaleSignal
	}

	o.status = target
	return nil
}

// CompleteDelivery marks the order Delivered.
//
// Valid from any active-assignment status held by the signalling courier;
// the assignment is always cleared so the courier is freed even if
// intermediate signals were lost. Terminal thereafter.
func (o *Order) CompleteDelivery(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if !o.isHeldBy(courierID) || !o.status.IsActiveAssignment() {
		return ErrStaleSignal
	}

	o.status = Delivered
	o.courierID = nil
	return nil
}

// Unassign releases the courier and returns the order to Ready.
//
// Operator-invoked: used to revoke stale offers and to repair
// desynchronized assignments. Valid for any active-assignment status.
func (o *Order) Unassign() error {
	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}
	if !o.status.IsActiveAssignment() {
		return ErrOrderNotAssigned
	}

	o.status = Ready
	o.courierID = nil
	return nil
}

// Cancel withdraws the order. Valid from any non-terminal status; clears the
// assignment if a courier holds the order. Terminal thereafter.
func (o *Order) Cancel() error {
	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	o.status = Cancelled
	o.courierID = nil
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setReference validates and sets the human-readable order code.
func (o *Order) setReference(reference string) error {
	if reference == "" {
		return ErrReferenceIsRequired
	}
	o.reference = reference
	return nil
}
