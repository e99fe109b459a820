// Package refusalrepo persists the append-only refusal ledger.
package refusalrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/refusal"

	"github.com/google/uuid"
)

// RefusalDTO represents one immutable ledger row. Indexed by order for the
// history query and the cooldown lookup.
type RefusalDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	CourierID uuid.UUID `gorm:"type:uuid;index"`
	Reason    string
	RefusedAt time.Time
}

// TableName specifies the database table name for refusal records.
func (RefusalDTO) TableName() string {
	return "refusals"
}

// fromDomain converts a refusal record to its database representation.
func fromDomain(r *refusal.Record) RefusalDTO {
	return RefusalDTO{
		ID:        r.ID().Bytes(),
		OrderID:   r.OrderID().Bytes(),
		CourierID: r.CourierID().Bytes(),
		Reason:    r.Reason(),
		RefusedAt: r.RefusedAt(),
	}
}

// toDomain converts a database DTO to a refusal record.
func toDomain(dto RefusalDTO) (*refusal.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return refusal.RestoreRecord(id, orderID, courierID, dto.Reason, dto.RefusedAt)
}
