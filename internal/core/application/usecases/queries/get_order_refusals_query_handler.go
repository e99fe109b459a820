package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderRefusalsQueryHandler retrieves one order's refusal ledger entries.
type GetOrderRefusalsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderRefusalsQueryHandler creates a handler for refusal history
// queries.
func NewGetOrderRefusalsQueryHandler(db *gorm.DB) GetOrderRefusalsQueryHandler {
	return GetOrderRefusalsQueryHandler{db: db}
}

// Handle executes the query. Entries come back oldest first.
func (h GetOrderRefusalsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderRefusalsQuery,
) ([]GetOrderRefusalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	refusals := make([]GetOrderRefusalsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			courier_id,
			reason,
			refused_at
		FROM refusals
		WHERE order_id = ?
		ORDER BY refused_at
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var refusalResp GetOrderRefusalsQueryResponse
		var courierID uuid.UUID
		var refusedAt time.Time

		err = rows.Scan(
			&courierID,
			&refusalResp.Reason,
			&refusedAt,
		)
		if err != nil {
			return nil, err
		}

		cID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}
		refusalResp.CourierID = cID
		refusalResp.RefusedAt = refusedAt.UTC()

		refusals = append(refusals, refusalResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return refusals, nil
}
