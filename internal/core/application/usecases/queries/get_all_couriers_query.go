package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery retrieves every courier and its current availability
// for fleet monitoring.
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to retrieve all couriers.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// GetAllCouriersQueryResponse is one courier row in the read model.
type GetAllCouriersQueryResponse struct {
	ID           kernel.UUID
	Name         string
	Availability courier.Availability
}
