// Package refusal provides the append-only refusal record used by the
// re-offer cooldown and by operators to explain why an order is marked
// refused. Records are immutable once written; the ledger knows no updates
// and therefore no update races.
package refusal

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrRecordIsNotConstructed is returned when using an improperly initialized Record.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")
	// ErrReasonIsRequired is returned when recording a refusal without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// Record captures one courier refusing one offer: who refused which order,
// why, and when. Append-only.
type Record struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	reason    string
	refusedAt time.Time
	guard     guard.ConstructorGuard
}

// NewRecord creates a refusal record for the given order and courier.
func NewRecord(orderID, courierID kernel.UUID, reason string, refusedAt time.Time) (*Record, error) {
	return RestoreRecord(kernel.NewUUID(), orderID, courierID, reason, refusedAt)
}

// RestoreRecord reconstructs a refusal record from persistent storage.
func RestoreRecord(id, orderID, courierID kernel.UUID, reason string, refusedAt time.Time) (*Record, error) {
	r := &Record{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonIsRequired
	}

	r.id = id
	r.orderID = orderID
	r.courierID = courierID
	r.reason = reason
	r.refusedAt = refusedAt
	return r, nil
}

// Validate ensures the Record instance was created through a constructor.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the refused order's identifier.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// CourierID returns the refusing courier's identifier.
func (r *Record) CourierID() kernel.UUID {
	return r.courierID
}

// Reason returns the courier-supplied refusal reason.
func (r *Record) Reason() string {
	return r.reason
}

// RefusedAt returns when the refusal happened.
func (r *Record) RefusedAt() time.Time {
	return r.refusedAt
}
