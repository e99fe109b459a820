// Package ports defines the contracts between the dispatch core and
// infrastructure: repositories, the unit of work, the change feed and the
// clock. These interfaces establish dependency inversion and testability;
// the core never talks to gorm, Kafka or the wall clock directly.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate unconditionally.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithStatusGuard persists changes only if the stored row still
	// carries expectedStatus (compare-and-swap on status). When the guard
	// fails no write happens and errs.ErrVersionIsInvalid is returned; the
	// caller lost a race and must treat the operation as conflicted. This is
	// what makes concurrent offers for one order mutually exclusive.
	UpdateWithStatusGuard(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByReference retrieves an order by its human-readable code.
	GetByReference(ctx context.Context, reference string) (*order.Order, error)

	// GetFirstOfferable retrieves the oldest order that may be offered right
	// now: status Ready or Refused, and either unscheduled or scheduled with
	// a pickup no later than pickupBefore (the caller passes
	// now + gate window, so the dispatch gate is already open).
	GetFirstOfferable(ctx context.Context, pickupBefore time.Time) (*order.Order, error)

	// GetAllActive retrieves every non-terminal order. Used to rebuild the
	// board projection on (re)connect.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetActiveByCourier retrieves the order currently held by the given
	// courier (offered or in an active assignment), if any. Used by the
	// stuck-courier detection.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*order.Order, error)
}
