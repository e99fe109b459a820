package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves non-terminal orders from the
// database. Uses direct SQL for read performance in the CQRS pattern;
// results come back most urgent first (earliest pickup, on-demand orders
// before everything scheduled).
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Excludes delivered and cancelled orders.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference,
			status,
			courier_id,
			scheduled_pickup_at,
			refusal_count
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY scheduled_pickup_at ASC NULLS FIRST, reference
	`, order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var status int
		var courierID uuid.NullUUID
		var pickupAt sql.NullTime

		err = rows.Scan(
			&id,
			&orderResp.Reference,
			&status,
			&courierID,
			&pickupAt,
			&orderResp.RefusalCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orderResp.Status = order.Status(status)

		if courierID.Valid {
			cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			orderResp.CourierID = &cID
		}
		if pickupAt.Valid {
			t := pickupAt.Time.UTC()
			orderResp.ScheduledPickupAt = &t
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
