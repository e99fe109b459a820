package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database unconditionally.
// Select("*") forces every column into the update so that fields cleared to
// NULL (the courier after a refusal) are actually persisted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateWithStatusGuard saves the order only if the stored row still carries
// expectedStatus. The status column acts as the version for the compare-and-
// swap that makes racing offers mutually exclusive: the loser's update
// matches zero rows and gets errs.ErrVersionIsInvalid with nothing written.
func (r *GormOrderRepository) UpdateWithStatusGuard(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause(aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByReference retrieves an order by its external booking reference.
func (r *GormOrderRepository) GetByReference(ctx context.Context, reference string) (*order.Order, error) {
	if reference == "" {
		return nil, order.ErrReferenceIsRequired
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", reference)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstOfferable retrieves the most urgent order eligible for an offer:
// status Ready or Refused and a pickup no later than pickupBefore (on-demand
// orders, with no scheduled pickup, always qualify and come first).
func (r *GormOrderRepository) GetFirstOfferable(
	ctx context.Context,
	pickupBefore time.Time,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Where("status IN (?, ?)", order.Ready, order.Refused).
		Where("scheduled_pickup_at IS NULL OR scheduled_pickup_at <= ?", pickupBefore).
		Order("scheduled_pickup_at ASC NULLS FIRST").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "first offerable")
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every non-terminal order for board rebuilds.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status NOT IN (?, ?)", order.Delivered, order.Cancelled).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetActiveByCourier retrieves the order the given courier currently holds.
func (r *GormOrderRepository) GetActiveByCourier(
	ctx context.Context,
	courierID kernel.UUID,
) (*order.Order, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Where("status NOT IN (?, ?)", order.Delivered, order.Cancelled).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "active for courier "+courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
