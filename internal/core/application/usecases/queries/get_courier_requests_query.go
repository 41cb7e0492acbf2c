package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierRequestsQueryIsNotConstructed = errors.New(
	"GetCourierRequestsQuery must be created via NewGetCourierRequestsQuery constructor",
)

// GetCourierRequestsQuery retrieves the delivery requests currently awaiting
// the courier's answer, with enough address context to decide.
type GetCourierRequestsQuery struct {
	courierID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetCourierRequestsQuery creates a query for the courier's open requests.
func NewGetCourierRequestsQuery(courierID kernel.UUID) (GetCourierRequestsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierRequestsQuery{}, err
	}

	return GetCourierRequestsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierRequestsQueryIsNotConstructed)
}

// CourierID returns the courier whose requests are queried.
func (q GetCourierRequestsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierRequestsQueryResponse represents one open delivery request in the
// read model.
type GetCourierRequestsQueryResponse struct {
	OrderID       kernel.UUID
	DeliveryID    kernel.UUID
	RequestedAt   time.Time
	PickupStreet  string
	PickupCity    string
	DropoffStreet string
	DropoffCity   string
}
