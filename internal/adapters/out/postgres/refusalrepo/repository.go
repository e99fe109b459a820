package refusalrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/refusal"

	"gorm.io/gorm"
)

// GormRefusalRepository implements RefusalRepository using GORM. The ledger
// is append-only; there is no update path.
type GormRefusalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRefusalRepository creates a new GORM refusal repository.
func NewGormRefusalRepository(db *gorm.DB, tracker aggregateTracker) *GormRefusalRepository {
	return &GormRefusalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a refusal record to the ledger.
func (r *GormRefusalRepository) Add(ctx context.Context, record *refusal.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// GetByOrder retrieves all refusal records for an order, oldest first.
func (r *GormRefusalRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*refusal.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RefusalDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("refused_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*refusal.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// CountAndLastRefuser returns the order's refusal count and the most recent
// refuser, nil when the ledger has no entries for the order.
func (r *GormRefusalRepository) CountAndLastRefuser(
	ctx context.Context,
	orderID kernel.UUID,
) (int, *kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return 0, nil, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&RefusalDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var dto RefusalDTO
	err = r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("refused_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return int(count), nil, nil
		}
		return 0, nil, err
	}

	lastRefuser, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return 0, nil, err
	}

	return int(count), &lastRefuser, nil
}
