package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetStuckCouriersQueryIsNotConstructed = errors.New(
	"GetStuckCouriersQuery must be created via NewGetStuckCouriersQuery constructor",
)

// GetStuckCouriersQuery retrieves couriers marked busy with no active order
// behind them. These need the operator's force-available repair.
type GetStuckCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStuckCouriersQuery creates a query for stuck couriers.
func NewGetStuckCouriersQuery() GetStuckCouriersQuery {
	return GetStuckCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStuckCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetStuckCouriersQueryIsNotConstructed)
}

// GetStuckCouriersQueryResponse is one stuck courier row.
type GetStuckCouriersQueryResponse struct {
	ID   kernel.UUID
	Name string
}
