package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves all couriers from the database and
// enriches them with last known positions from the location index. Uses a
// direct SQL read for performance; aggregates are never materialized on the
// query path.
type GetAllCouriersQueryHandler struct {
	db            *gorm.DB
	locationIndex ports.LocationIndex
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval queries.
func NewGetAllCouriersQueryHandler(db *gorm.DB, locationIndex ports.LocationIndex) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db, locationIndex: locationIndex}
}

// Handle executes the query. Returns courier read models sorted by name.
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
			on_shift
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAllCouriersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &response.Name, &response.OnShift); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = courierID

		if known, ok := h.locationIndex.Get(courierID); ok {
			location := known.Location
			response.Location = &location
		}

		couriers = append(couriers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
