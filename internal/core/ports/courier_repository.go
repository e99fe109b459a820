package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, courier *courier.Courier) error

	// UpdateWithAvailabilityGuard persists changes only if the stored
	// availability still matches expected. Serializes racing writers against
	// the same courier: two offers for different orders both read the
	// courier Online, but only one conditional write succeeds.
	// Returns a version error when the guard does not match.
	UpdateWithAvailabilityGuard(ctx context.Context, courier *courier.Courier, expected courier.Availability) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllOnline retrieves every courier currently online, i.e. the
	// candidates for an offer.
	GetAllOnline(ctx context.Context) ([]*courier.Courier, error)

	// GetAllBusy retrieves every courier currently marked busy. Used by the
	// stuck-courier detection to cross-check against active orders.
	GetAllBusy(ctx context.Context) ([]*courier.Courier, error)
}
