package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves in-flight orders joined with
// their delivery state. Filters out delivered and canceled orders to provide
// active workload visibility.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for uncompleted order queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns order read models oldest first.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.user_id,
			o.status,
			d.status,
			d.assigned_courier_id
		FROM orders o
		JOIN deliveries d ON d.order_id = o.id
		WHERE o.status NOT IN ('Delivered', 'Canceled')
		ORDER BY o.created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetUncompletedOrdersQueryResponse
		var id uuid.UUID
		var courierID *uuid.UUID

		err = rows.Scan(&id, &response.UserID, &response.Status, &response.DeliveryStatus, &courierID)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		if courierID != nil {
			assigned, idErr := kernel.UUIDFromBytes(courierID[:])
			if idErr != nil {
				return nil, idErr
			}
			response.CourierID = &assigned
		}

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
