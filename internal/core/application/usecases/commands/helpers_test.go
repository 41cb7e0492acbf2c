package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/Rhymond/go-money"
	"github.com/stretchr/testify/require"
)

// Aggregate factories shared by the handler tests.
func addressNear(t *testing.T, lat, lng float64) kernel.Address {
	t.Helper()
	location, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	address, err := kernel.NewAddress(location, "Main st 1", "Testville", "TS")
	require.NoError(t, err)
	return address
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewOrderItem("Pizza", 1, money.New(1000, money.EUR))
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), "user-1", kernel.NewUUID(),
		addressNear(t, 0, 0), addressNear(t, 0, 1), []order.OrderItem{item},
	)
	require.NoError(t, err)
	o.TakeEvents()
	return o
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	o := placedOrder(t)
	require.NoError(t, o.ConfirmPaid())
	o.TakeEvents()
	return o
}

func requestedOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := paidOrder(t)
	_, err := o.RequestCourier(courierID, time.Now())
	require.NoError(t, err)
	o.TakeEvents()
	return o
}

func onShiftCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name)
	require.NoError(t, err)
	c.StartShift()
	c.TakeEvents()
	return c
}
