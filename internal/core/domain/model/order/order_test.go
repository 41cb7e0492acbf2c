package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/Rhymond/go-money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createAddress(t *testing.T) kernel.Address {
	t.Helper()
	location, err := kernel.NewGeoPoint(55.75, 37.61)
	require.NoError(t, err)
	address, err := kernel.NewAddress(location, "Tverskaya 1", "Moscow", "RU")
	require.NoError(t, err)
	return address
}

func createItems(t *testing.T) []order.OrderItem {
	t.Helper()
	pizza, err := order.NewOrderItem("Margherita", 2, money.New(1200, money.EUR))
	require.NoError(t, err)
	cola, err := order.NewOrderItem("Cola", 1, money.New(250, money.EUR))
	require.NoError(t, err)
	return []order.OrderItem{pizza, cola}
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "user-1", kernel.NewUUID(),
		createAddress(t), createAddress(t), createItems(t),
	)
	require.NoError(t, err)
	o.TakeEvents() // drop the OrderPlaced event, tests assert on fresh ones
	return o
}

func createPaidOrder(t *testing.T) *order.Order {
	t.Helper()
	o := createValidOrder(t)
	require.NoError(t, o.ConfirmPaid())
	o.TakeEvents()
	return o
}

func createAwaitingPickupOrder(t *testing.T) *order.Order {
	t.Helper()
	o := createPaidOrder(t)
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.FinishPreparing())
	o.TakeEvents()
	return o
}

// createAssignedOrder returns an order awaiting pickup whose delivery has
// been accepted by the returned courier id.
func createAssignedOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()
	o := createAwaitingPickupOrder(t)
	courierID := kernel.NewUUID()
	_, err := o.RequestCourier(courierID, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.AcceptDeliveryRequest(courierID))
	o.TakeEvents()
	return o, courierID
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(
			id, "user-1", kernel.NewUUID(),
			createAddress(t), createAddress(t), createItems(t),
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.StatusPlaced, o.Status())
		assert.Equal(t, order.DeliveryPending, o.Delivery().Status())
		assert.Nil(t, o.AssignedCourierID())
	})

	t.Run("should total the items", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "user-1", kernel.NewUUID(),
			createAddress(t), createAddress(t), createItems(t),
		)

		require.NoError(t, err)
		// 2 * 12.00 + 2.50
		equal, err := o.Total().Equals(money.New(2650, money.EUR))
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should register OrderPlaced event", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "user-1", kernel.NewUUID(),
			createAddress(t), createAddress(t), createItems(t),
		)
		require.NoError(t, err)

		events := o.TakeEvents()

		require.Len(t, events, 1)
		placed, ok := events[0].(order.OrderPlaced)
		require.True(t, ok)
		assert.Equal(t, "user-1", placed.UserID)
		assert.Equal(t, int64(2650), placed.TotalAmount)
		assert.Equal(t, money.EUR, placed.Currency)
		assert.Equal(t, order.QueueOrderPlaced, placed.RoutingKey())
	})

	t.Run("should return error for empty user", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "", kernel.NewUUID(),
			createAddress(t), createAddress(t), createItems(t),
		)

		require.ErrorIs(t, err, order.ErrUserIDIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should return error for empty items", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "user-1", kernel.NewUUID(),
			createAddress(t), createAddress(t), nil,
		)

		require.ErrorIs(t, err, order.ErrItemsAreRequired)
		assert.Nil(t, o)
	})

	t.Run("should return error for mixed currencies", func(t *testing.T) {
		eur, err := order.NewOrderItem("Pizza", 1, money.New(1200, money.EUR))
		require.NoError(t, err)
		usd, err := order.NewOrderItem("Cola", 1, money.New(250, money.USD))
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), "user-1", kernel.NewUUID(),
			createAddress(t), createAddress(t), []order.OrderItem{eur, usd},
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestNewOrderItem(t *testing.T) {
	t.Run("should compute subtotal", func(t *testing.T) {
		item, err := order.NewOrderItem("Margherita", 3, money.New(1200, money.EUR))
		require.NoError(t, err)

		equal, err := item.Subtotal().Equals(money.New(3600, money.EUR))
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should reject empty name, zero quantity and nil price", func(t *testing.T) {
		_, err := order.NewOrderItem("", 1, money.New(100, money.EUR))
		require.ErrorIs(t, err, order.ErrItemNameIsRequired)

		_, err = order.NewOrderItem("Pizza", 0, money.New(100, money.EUR))
		require.Error(t, err)

		_, err = order.NewOrderItem("Pizza", 1, nil)
		require.ErrorIs(t, err, order.ErrItemPriceIsRequired)
	})
}

func TestOrder_PaymentAndPreparation(t *testing.T) {
	t.Run("should follow the happy path to awaiting pickup", func(t *testing.T) {
		o := createValidOrder(t)

		require.NoError(t, o.ConfirmPaid())
		assert.Equal(t, order.StatusPaid, o.Status())

		require.NoError(t, o.StartPreparing())
		assert.Equal(t, order.StatusPreparing, o.Status())

		require.NoError(t, o.FinishPreparing())
		assert.Equal(t, order.StatusAwaitingPickup, o.Status())

		events := o.TakeEvents()
		require.Len(t, events, 3)
		assert.Equal(t, order.QueueOrderPaid, events[0].RoutingKey())
		assert.Equal(t, order.QueueOrderPreparationStarted, events[1].RoutingKey())
		assert.Equal(t, order.QueueOrderPreparationFinished, events[2].RoutingKey())
	})

	t.Run("should treat repeated payment confirmation as no-op", func(t *testing.T) {
		o := createPaidOrder(t)

		require.NoError(t, o.ConfirmPaid())

		assert.Equal(t, order.StatusPaid, o.Status())
		assert.Empty(t, o.TakeEvents(), "no duplicate OrderPaid event")
	})

	t.Run("should not start preparing an unpaid order", func(t *testing.T) {
		o := createValidOrder(t)
		require.ErrorIs(t, o.StartPreparing(), order.ErrInvalidTransition)
	})

	t.Run("should not pay a canceled order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Cancel("customer changed their mind"))

		require.ErrorIs(t, o.ConfirmPaid(), order.ErrInvalidTransition)
	})
}

func TestOrder_RequestCourier(t *testing.T) {
	t.Run("should open a request for a paid order", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()

		request, err := o.RequestCourier(courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Requested, request.Status())
		assert.True(t, request.CourierID().IsEqual(courierID))
		assert.True(t, request.DeliveryID().IsEqual(o.Delivery().ID()))

		events := o.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.QueueDeliveryRequested, events[0].RoutingKey())
	})

	t.Run("should not request a courier before payment", func(t *testing.T) {
		o := createValidOrder(t)

		_, err := o.RequestCourier(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should return the same open request on retry", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		first, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)

		second, err := o.RequestCourier(courierID, time.Now())

		require.NoError(t, err)
		assert.True(t, first.ID().IsEqual(second.ID()))
		assert.Len(t, o.Delivery().Requests(), 1)
	})

	t.Run("should allow only one open request at a time", func(t *testing.T) {
		o := createPaidOrder(t)
		_, err := o.RequestCourier(kernel.NewUUID(), time.Now())
		require.NoError(t, err)

		_, err = o.RequestCourier(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should never ask the same courier twice", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		require.NoError(t, o.RejectDeliveryRequest(courierID))

		_, err = o.RequestCourier(courierID, time.Now())

		require.ErrorIs(t, err, order.ErrAlreadyRequested)
		assert.Contains(t, o.Delivery().RequestedCourierIDs(), courierID)
	})
}

func TestOrder_AcceptDeliveryRequest(t *testing.T) {
	t.Run("should assign the courier and register events", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		o.TakeEvents()

		require.NoError(t, o.AcceptDeliveryRequest(courierID))

		assert.Equal(t, order.DeliveryCourierConfirmed, o.Delivery().Status())
		require.NotNil(t, o.AssignedCourierID())
		assert.True(t, o.AssignedCourierID().IsEqual(courierID))

		events := o.TakeEvents()
		require.Len(t, events, 2)
		assert.Equal(t, order.QueueOrderAssigned, events[0].RoutingKey())
		assert.Equal(t, order.QueueDeliveryRequestAccepted, events[1].RoutingKey())
	})

	t.Run("should treat a repeated acceptance as no-op", func(t *testing.T) {
		o, courierID := createAssignedOrder(t)

		require.NoError(t, o.AcceptDeliveryRequest(courierID))

		assert.Empty(t, o.TakeEvents(), "no duplicate assignment events")
	})

	t.Run("should fail when the courier was never asked", func(t *testing.T) {
		o := createPaidOrder(t)

		err := o.AcceptDeliveryRequest(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrNotRequested)
	})

	t.Run("should fail after the request timed out", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		require.NoError(t, o.TimeoutDeliveryRequest(courierID))

		err = o.AcceptDeliveryRequest(courierID)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_RejectAndTimeout(t *testing.T) {
	t.Run("should keep the delivery pending after rejection", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		o.TakeEvents()

		require.NoError(t, o.RejectDeliveryRequest(courierID))

		assert.Equal(t, order.DeliveryPending, o.Delivery().Status())
		assert.Nil(t, o.AssignedCourierID())

		events := o.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.QueueDeliveryRequestRejected, events[0].RoutingKey())

		// dispatch can now ask somebody else
		_, err = o.RequestCourier(kernel.NewUUID(), time.Now())
		require.NoError(t, err)
	})

	t.Run("should treat a repeated rejection as no-op", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		require.NoError(t, o.RejectDeliveryRequest(courierID))
		o.TakeEvents()

		require.NoError(t, o.RejectDeliveryRequest(courierID))

		assert.Empty(t, o.TakeEvents())
	})

	t.Run("should not time out an already accepted request", func(t *testing.T) {
		o, courierID := createAssignedOrder(t)

		require.NoError(t, o.TimeoutDeliveryRequest(courierID))

		assert.Equal(t, order.DeliveryCourierConfirmed, o.Delivery().Status())
		assert.Empty(t, o.TakeEvents(), "resolved requests stay resolved")
	})

	t.Run("should expire an unanswered request", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		o.TakeEvents()

		require.NoError(t, o.TimeoutDeliveryRequest(courierID))

		events := o.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.QueueDeliveryRequestTimedOut, events[0].RoutingKey())
		assert.Nil(t, o.Delivery().OpenRequest())
	})
}

func TestOrder_PickupAndDropoff(t *testing.T) {
	t.Run("should deliver the order end to end", func(t *testing.T) {
		o, courierID := createAssignedOrder(t)

		require.NoError(t, o.ConfirmPickup(courierID))
		assert.Equal(t, order.StatusInDelivery, o.Status())
		assert.Equal(t, order.DeliveryPickedUp, o.Delivery().Status())

		require.NoError(t, o.ConfirmDropoff(courierID))
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.Equal(t, order.DeliveryCompleted, o.Delivery().Status())

		events := o.TakeEvents()
		require.Len(t, events, 2)
		assert.Equal(t, order.QueueOrderPickedUp, events[0].RoutingKey())
		assert.Equal(t, order.QueueOrderDelivered, events[1].RoutingKey())
	})

	t.Run("should reject pickup by a different courier", func(t *testing.T) {
		o, _ := createAssignedOrder(t)

		err := o.ConfirmPickup(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrCourierMismatch)
		assert.Equal(t, order.StatusAwaitingPickup, o.Status())
	})

	t.Run("should treat a repeated pickup as no-op", func(t *testing.T) {
		o, courierID := createAssignedOrder(t)
		require.NoError(t, o.ConfirmPickup(courierID))
		o.TakeEvents()

		require.NoError(t, o.ConfirmPickup(courierID))

		assert.Equal(t, order.StatusInDelivery, o.Status())
		assert.Empty(t, o.TakeEvents())
	})

	t.Run("should not drop off before pickup", func(t *testing.T) {
		o, courierID := createAssignedOrder(t)

		err := o.ConfirmDropoff(courierID)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel a placed order and fail its delivery", func(t *testing.T) {
		o := createValidOrder(t)

		require.NoError(t, o.Cancel("restaurant closed"))

		assert.Equal(t, order.StatusCanceled, o.Status())
		assert.Equal(t, order.DeliveryFailed, o.Delivery().Status())

		events := o.TakeEvents()
		require.Len(t, events, 1)
		canceled, ok := events[0].(order.OrderCanceled)
		require.True(t, ok)
		assert.Equal(t, "restaurant closed", canceled.Reason)
	})

	t.Run("should expire the open request on cancellation", func(t *testing.T) {
		o := createPaidOrder(t)
		courierID := kernel.NewUUID()
		_, err := o.RequestCourier(courierID, time.Now())
		require.NoError(t, err)
		o.TakeEvents()

		require.NoError(t, o.Cancel("no couriers available"))

		assert.Nil(t, o.Delivery().OpenRequest())
		events := o.TakeEvents()
		require.Len(t, events, 2)
		assert.Equal(t, order.QueueOrderCanceled, events[0].RoutingKey())
		assert.Equal(t, order.QueueDeliveryRequestTimedOut, events[1].RoutingKey())
	})

	t.Run("should not cancel an order in delivery", func(t *testing.T) {
		o, courierID := createAssignedOrder(t)
		require.NoError(t, o.ConfirmPickup(courierID))

		err := o.Cancel("too late")

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusInDelivery, o.Status())
	})

	t.Run("should treat a repeated cancellation as no-op", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Cancel("restaurant closed"))
		o.TakeEvents()

		require.NoError(t, o.Cancel("restaurant closed"))

		assert.Empty(t, o.TakeEvents())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore an order with its delivery and requests", func(t *testing.T) {
		orderID := kernel.NewUUID()
		deliveryID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		request, err := order.RestoreDeliveryRequest(
			kernel.NewUUID(), deliveryID, courierID, order.RequestAccepted, time.Now(),
		)
		require.NoError(t, err)

		delivery, err := order.RestoreDelivery(
			deliveryID, orderID, createAddress(t), createAddress(t),
			order.DeliveryCourierConfirmed, &courierID, []*order.DeliveryRequest{request},
		)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			orderID, "user-1", kernel.NewUUID(),
			createItems(t), money.New(2650, money.EUR),
			order.StatusAwaitingPickup, delivery, 7,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, 7, o.Version())
		assert.Empty(t, o.TakeEvents(), "restore registers no events")
		require.NotNil(t, o.AssignedCourierID())
		assert.True(t, o.AssignedCourierID().IsEqual(courierID))

		// the restored aggregate keeps working
		require.NoError(t, o.ConfirmPickup(courierID))
		assert.Equal(t, order.StatusInDelivery, o.Status())
	})

	t.Run("should return error for missing delivery", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "user-1", kernel.NewUUID(),
			createItems(t), money.New(2650, money.EUR),
			order.StatusPlaced, nil, 1,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should return error for invalid status", func(t *testing.T) {
		delivery, err := order.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), createAddress(t), createAddress(t),
			order.DeliveryPending, nil, nil,
		)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "user-1", kernel.NewUUID(),
			createItems(t), money.New(2650, money.EUR),
			order.StatusUnknown, delivery, 1,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}
