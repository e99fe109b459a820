// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the dispatch loop's access paths: by status for offerable
// scans and by courier for the active-assignment lookup. The reference
// carries a unique index because order registration is idempotent on it.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference         string     `gorm:"uniqueIndex"`
	Status            int        `gorm:"index"`
	ScheduledPickupAt *time.Time `gorm:"index"`
	CourierID         *uuid.UUID `gorm:"type:uuid;index"`
	RefusalCount      int
	LastRefusedBy     *uuid.UUID `gorm:"type:uuid"`
	LastRefusedAt     *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var lastRefusedBy *uuid.UUID
	if id := o.LastRefusedBy(); id != nil {
		raw := id.Bytes()
		lastRefusedBy = &raw
	}

	return OrderDTO{
		ID:                o.ID().Bytes(),
		Reference:         o.Reference(),
		Status:            int(o.Status()),
		ScheduledPickupAt: o.ScheduledPickupAt(),
		CourierID:         courierID,
		RefusalCount:      o.RefusalCount(),
		LastRefusedBy:     lastRefusedBy,
		LastRefusedAt:     o.LastRefusedAt(),
	}
}

// toDomain converts a database DTO to an order aggregate via RestoreOrder,
// which re-checks the courier/status consistency invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	var lastRefusedBy *kernel.UUID
	if dto.LastRefusedBy != nil {
		rID, refuserErr := kernel.UUIDFromBytes((*dto.LastRefusedBy)[:])
		if refuserErr != nil {
			return nil, refuserErr
		}
		lastRefusedBy = &rID
	}

	return order.RestoreOrder(
		id,
		dto.Reference,
		order.Status(dto.Status),
		dto.ScheduledPickupAt,
		courierID,
		dto.RefusalCount,
		lastRefusedBy,
		dto.LastRefusedAt,
	)
}
