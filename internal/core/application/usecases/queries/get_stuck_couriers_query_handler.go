package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStuckCouriersQueryHandler finds couriers whose busy flag has no active
// order behind it. A courier appears here after a lost completion signal or
// a writer crash between the order and courier updates.
type GetStuckCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetStuckCouriersQueryHandler creates a handler for stuck courier
// queries.
func NewGetStuckCouriersQueryHandler(db *gorm.DB) GetStuckCouriersQueryHandler {
	return GetStuckCouriersQueryHandler{db: db}
}

// Handle executes the query. A courier is stuck when it is busy and no
// non-terminal order references it.
func (h GetStuckCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetStuckCouriersQuery,
) ([]GetStuckCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetStuckCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name
		FROM couriers c
		WHERE c.availability = ?
		  AND NOT EXISTS (
			SELECT 1
			FROM orders o
			WHERE o.courier_id = c.id
			  AND o.status NOT IN (?, ?)
		  )
		ORDER BY c.name
	`, courier.Busy, order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courierResp GetStuckCouriersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&courierResp.Name,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courierResp.ID = courierID

		couriers = append(couriers, courierResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
