package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testRequestTimeout = 30 * time.Second

func newDispatchHandler(
	factory *MockUoWFactory,
	index *MockLocationIndex,
	scheduler *MockScheduler,
) commands.DispatchOrderCommandHandler {
	timeouts := commands.NewTimeoutDeliveryRequestCommandHandler(factory)
	return commands.NewDispatchOrderCommandHandler(factory, index, scheduler, testRequestTimeout, timeouts)
}

func locationAt(t *testing.T, id kernel.UUID, lat, lng float64) ports.CourierLocation {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return ports.CourierLocation{CourierID: id, Location: p, ReportedAt: time.Now()}
}

func TestDispatchOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should request the best scoring courier and schedule a timeout", func(t *testing.T) {
		ctx := t.Context()
		o := paidOrder(t)
		near := onShiftCourier(t, "Near")
		far := onShiftCourier(t, "Far")

		mockOrderRepo := new(MockOrderRepository)
		mockCourierRepo := new(MockCourierRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockIndex := new(MockLocationIndex)
		scheduler := new(MockScheduler)

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback", ctx).Return(nil)
		mockUoW.On("Commit", ctx).Return(nil)
		mockUoW.On("OrderRepository").Return(mockOrderRepo)
		mockUoW.On("CourierRepository").Return(mockCourierRepo)

		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil)
		mockIndex.On("Nearest", mock.Anything, commands.CandidatePoolSize, mock.Anything).
			Return([]ports.CourierLocation{
				locationAt(t, near.ID(), 0, 0.1),
				locationAt(t, far.ID(), 0, 5),
			})
		mockCourierRepo.On("GetByIDsOnShift", ctx, mock.Anything).
			Return([]*courier.Courier{near, far}, nil)
		mockOrderRepo.On("GetByCourier", ctx, mock.Anything).Return([]*order.Order{}, nil)
		mockOrderRepo.On("Update", ctx, o).Return(nil)
		mockCourierRepo.On("Update", ctx, near).Return(nil)

		handler := newDispatchHandler(mockFactory, mockIndex, scheduler)
		cmd, err := commands.NewDispatchOrderCommand(o.ID())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		open := o.Delivery().OpenRequest()
		require.NotNil(t, open)
		assert.True(t, open.CourierID().IsEqual(near.ID()))
		assert.True(t, near.HasPendingRequest(o.Delivery().ID()))
		require.Len(t, scheduler.Delays, 1)
		assert.Equal(t, testRequestTimeout, scheduler.Delays[0])
		mockCourierRepo.AssertNotCalled(t, "Update", ctx, far)
	})

	t.Run("should cancel the order when nobody is left to ask", func(t *testing.T) {
		ctx := t.Context()
		o := paidOrder(t)

		mockOrderRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockIndex := new(MockLocationIndex)
		scheduler := new(MockScheduler)

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback", ctx).Return(nil)
		mockUoW.On("Commit", ctx).Return(nil)
		mockUoW.On("OrderRepository").Return(mockOrderRepo)

		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil)
		mockIndex.On("Nearest", mock.Anything, commands.CandidatePoolSize, mock.Anything).
			Return([]ports.CourierLocation{})
		mockOrderRepo.On("Update", ctx, o).Return(nil)

		handler := newDispatchHandler(mockFactory, mockIndex, scheduler)
		cmd, err := commands.NewDispatchOrderCommand(o.ID())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		assert.Equal(t, order.StatusCanceled, o.Status())
		assert.Equal(t, order.DeliveryFailed, o.Delivery().Status())
		assert.Empty(t, scheduler.Delays)
	})

	t.Run("should do nothing when a request is already open", func(t *testing.T) {
		ctx := t.Context()
		courierID := kernel.NewUUID()
		o := requestedOrder(t, courierID)

		mockOrderRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockIndex := new(MockLocationIndex)
		scheduler := new(MockScheduler)

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback", ctx).Return(nil)
		mockUoW.On("OrderRepository").Return(mockOrderRepo)
		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil)

		handler := newDispatchHandler(mockFactory, mockIndex, scheduler)
		cmd, err := commands.NewDispatchOrderCommand(o.ID())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		mockUoW.AssertNotCalled(t, "Commit", ctx)
		mockIndex.AssertNotCalled(t, "Nearest", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, scheduler.Delays)
	})

	t.Run("should exclude couriers already asked for this delivery", func(t *testing.T) {
		ctx := t.Context()
		refusedCourier := kernel.NewUUID()
		o := requestedOrder(t, refusedCourier)
		require.NoError(t, o.RejectDeliveryRequest(refusedCourier))
		o.TakeEvents()

		mockOrderRepo := new(MockOrderRepository)
		mockUoW := new(MockUoW)
		mockFactory := new(MockUoWFactory)
		mockIndex := new(MockLocationIndex)
		scheduler := new(MockScheduler)

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback", ctx).Return(nil)
		mockUoW.On("Commit", ctx).Return(nil)
		mockUoW.On("OrderRepository").Return(mockOrderRepo)

		mockOrderRepo.On("Get", ctx, o.ID()).Return(o, nil)
		mockIndex.On("Nearest", mock.Anything, commands.CandidatePoolSize, []kernel.UUID{refusedCourier}).
			Return([]ports.CourierLocation{})
		mockOrderRepo.On("Update", ctx, o).Return(nil)

		handler := newDispatchHandler(mockFactory, mockIndex, scheduler)
		cmd, err := commands.NewDispatchOrderCommand(o.ID())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		mockIndex.AssertExpectations(t)
	})
}
