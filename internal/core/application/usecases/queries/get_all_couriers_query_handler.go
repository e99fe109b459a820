package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves all couriers from the database.
// Uses direct SQL for read performance in the CQRS pattern.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval
// queries.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle executes the query. Returns courier rows sorted by name.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			availability
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courierResp GetAllCouriersQueryResponse
		var id uuid.UUID
		var availability int

		err = rows.Scan(
			&id,
			&courierResp.Name,
			&availability,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courierResp.ID = courierID
		courierResp.Availability = courier.Availability(availability)

		couriers = append(couriers, courierResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
