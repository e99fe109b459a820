package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
	// ErrCourierUnavailable is returned when an offer targets a courier that
	// is not Online (offline, or already Busy with another order).
	ErrCourierUnavailable = errors.New("courier is not available for an offer")
	// ErrCourierIsBusy is returned when a Busy courier tries to go offline
	// or online; the held order must be released first (or the operator must
	// use ForceAvailable).
	ErrCourierIsBusy = errors.New("courier holds an active order")
)

// Courier is the aggregate root tracking a courier's identity and
// availability for dispatch.
//
// Invariant: a courier is Busy iff it holds exactly one order with an
// outstanding offer or active assignment. The coordinator is the sole writer
// of availability; a Busy courier with no corresponding active order is a
// "stuck" condition that is surfaced to operators and repaired only through
// the audited ForceAvailable operation, never silently.
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// availability is the courier's current dispatch state
	availability Availability
	// guard ensures the courier was created via a constructor
	guard guard.ConstructorGuard
}

// NewCourier creates a Courier in the Offline state.
// The courier must go online before receiving offers.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		availability: Offline,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving its availability at the time of persistence.
func RestoreCourier(id kernel.UUID, name string, availability Availability) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		availability.Validate(),
	); err != nil {
		return nil, err
	}

	c.availability = availability
	return c, nil
}

// Validate ensures the Courier instance was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Availability returns the courier's current dispatch state.
func (c *Courier) Availability() Availability {
	return c.availability
}

// IsOnline reports whether the courier may receive an offer.
func (c *Courier) IsOnline() bool {
	return c.availability == Online
}

// GoOnline makes the courier reachable for offers.
// Idempotent when already Online; a Busy courier must release its order first.
func (c *Courier) GoOnline() error {
	if c.availability == Busy {
		return ErrCourierIsBusy
	}
	c.availability = Online
	return nil
}

// GoOffline withdraws the courier from dispatch.
// Idempotent when already Offline; a Busy courier must release its order first.
func (c *Courier) GoOffline() error {
	if c.availability == Busy {
		return ErrCourierIsBusy
	}
	c.availability = Offline
	return nil
}

// MarkBusy records that an offer was placed with the courier.
// Valid only from Online: an Offline courier cannot receive offers and a
// Busy courier already holds its one order.
func (c *Courier) MarkBusy() error {
	if c.availability != Online {
		return ErrCourierUnavailable
	}
	c.availability = Busy
	return nil
}

// Release frees the courier after its held order was refused, unassigned,
// delivered or cancelled. Idempotent: releasing an already-free courier is a
// no-op, so redelivered terminal signals cannot corrupt availability.
func (c *Courier) Release() {
	if c.availability == Busy {
		c.availability = Online
	}
}

// ForceAvailable unconditionally marks the courier Online.
//
// Operator escape hatch for the stuck-courier condition (Busy with no active
// order after missed or out-of-order signals). The caller publishes an audit
// event; the state machine is deliberately bypassed here and only here.
func (c *Courier) ForceAvailable() {
	c.availability = Online
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the courier's name.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
