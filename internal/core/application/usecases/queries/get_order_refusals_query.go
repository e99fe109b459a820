package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderRefusalsQueryIsNotConstructed = errors.New(
	"GetOrderRefusalsQuery must be created via NewGetOrderRefusalsQuery constructor",
)

// GetOrderRefusalsQuery retrieves an order's refusal history from the
// ledger, oldest first. The ledger survives the order's terminal states.
type GetOrderRefusalsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderRefusalsQuery creates a query for one order's refusals.
func NewGetOrderRefusalsQuery(orderID kernel.UUID) (GetOrderRefusalsQuery, error) {
	q := GetOrderRefusalsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetOrderRefusalsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderRefusalsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderRefusalsQueryIsNotConstructed)
}

// OrderID returns the order whose refusals are requested.
func (q GetOrderRefusalsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderRefusalsQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// GetOrderRefusalsQueryResponse is one ledger entry.
type GetOrderRefusalsQueryResponse struct {
	CourierID kernel.UUID
	Reason    string
	RefusedAt time.Time
}
