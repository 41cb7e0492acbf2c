package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierRequestsQueryHandler retrieves a courier's unanswered delivery
// requests joined with the order's pickup and dropoff addresses.
type GetCourierRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierRequestsQueryHandler creates a handler for courier request queries.
func NewGetCourierRequestsQueryHandler(db *gorm.DB) GetCourierRequestsQueryHandler {
	return GetCourierRequestsQueryHandler{db: db}
}

// Handle executes the query. Returns open requests oldest first.
func (h GetCourierRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierRequestsQuery,
) ([]GetCourierRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetCourierRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.order_id,
			d.id,
			r.requested_at,
			d.pickup_street,
			d.pickup_city,
			d.dropoff_street,
			d.dropoff_city
		FROM delivery_requests r
		JOIN deliveries d ON d.id = r.delivery_id
		WHERE r.courier_id = ? AND r.status = 'Requested'
		ORDER BY r.requested_at
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetCourierRequestsQueryResponse
		var orderID, deliveryID uuid.UUID

		err = rows.Scan(&orderID, &deliveryID, &response.RequestedAt,
			&response.PickupStreet, &response.PickupCity,
			&response.DropoffStreet, &response.DropoffCity)
		if err != nil {
			return nil, err
		}

		if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if response.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return nil, err
		}

		requests = append(requests, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
