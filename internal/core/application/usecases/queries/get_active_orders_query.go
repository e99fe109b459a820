// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order that has not reached a terminal
// status. This is the board rebuild source: a projector starting cold loads
// these rows as its initial snapshot before folding live events on top.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for all non-terminal orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one live order row.
type GetActiveOrdersQueryResponse struct {
	ID                kernel.UUID
	Reference         string
	Status            order.Status
	CourierID         *kernel.UUID
	ScheduledPickupAt *time.Time
	RefusalCount      int
}
