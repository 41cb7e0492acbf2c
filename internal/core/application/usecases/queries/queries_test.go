package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestQueryConstructorGuards(t *testing.T) {
	t.Run("constructed queries should validate", func(t *testing.T) {
		require.NoError(t, queries.NewGetAllCouriersQuery().Validate())
		require.NoError(t, queries.NewGetUncompletedOrdersQuery().Validate())

		requests, err := queries.NewGetCourierRequestsQuery(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, requests.Validate())
	})

	t.Run("zero value queries should fail validation", func(t *testing.T) {
		var couriers queries.GetAllCouriersQuery
		require.ErrorIs(t, couriers.Validate(), queries.ErrGetAllCouriersQueryIsNotConstructed)

		var orders queries.GetUncompletedOrdersQuery
		require.ErrorIs(t, orders.Validate(), queries.ErrGetUncompletedOrdersQueryIsNotConstructed)

		var requests queries.GetCourierRequestsQuery
		require.ErrorIs(t, requests.Validate(), queries.ErrGetCourierRequestsQueryIsNotConstructed)
	})

	t.Run("should reject empty courier id", func(t *testing.T) {
		_, err := queries.NewGetCourierRequestsQuery(kernel.UUID{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
