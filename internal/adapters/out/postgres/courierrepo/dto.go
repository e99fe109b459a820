// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Availability is indexed for the online-candidates and
// stuck-courier scans.
type CourierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Availability int `gorm:"index"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:           c.ID().Bytes(),
		Name:         c.Name(),
		Availability: int(c.Availability()),
	}
}

// toDomain converts a database DTO to a courier aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, courier.Availability(dto.Availability))
}
