package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.StatusPlaced,
			order.StatusPaid,
			order.StatusPreparing,
			order.StatusAwaitingPickup,
			order.StatusInDelivery,
			order.StatusDelivered,
			order.StatusCanceled,
		}
		for _, s := range statuses {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		require.ErrorIs(t, order.StatusUnknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsFinal())
	assert.True(t, order.StatusCanceled.IsFinal())
	assert.False(t, order.StatusPlaced.IsFinal())
	assert.False(t, order.StatusInDelivery.IsFinal())
}

func TestStatus_CanBeCanceled(t *testing.T) {
	t.Run("should allow cancellation before the courier picks up", func(t *testing.T) {
		assert.True(t, order.StatusPlaced.CanBeCanceled())
		assert.True(t, order.StatusPaid.CanBeCanceled())
		assert.True(t, order.StatusPreparing.CanBeCanceled())
		assert.True(t, order.StatusAwaitingPickup.CanBeCanceled())
	})

	t.Run("should forbid cancellation once in delivery", func(t *testing.T) {
		assert.False(t, order.StatusInDelivery.CanBeCanceled())
		assert.False(t, order.StatusDelivered.CanBeCanceled())
		assert.False(t, order.StatusCanceled.CanBeCanceled())
	})
}

func TestDeliveryStatus(t *testing.T) {
	t.Run("should validate defined statuses", func(t *testing.T) {
		statuses := []order.DeliveryStatus{
			order.DeliveryPending,
			order.DeliveryCourierConfirmed,
			order.DeliveryPickedUp,
			order.DeliveryCompleted,
			order.DeliveryFailed,
		}
		for _, s := range statuses {
			assert.NoError(t, s.Validate(), s.String())
		}
		require.ErrorIs(t, order.DeliveryStatusUnknown.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("should mark completed and failed as terminal", func(t *testing.T) {
		assert.True(t, order.DeliveryCompleted.IsTerminal())
		assert.True(t, order.DeliveryFailed.IsTerminal())
		assert.False(t, order.DeliveryPending.IsTerminal())
		assert.False(t, order.DeliveryPickedUp.IsTerminal())
	})
}

func TestRequestStatus(t *testing.T) {
	t.Run("should validate defined statuses", func(t *testing.T) {
		statuses := []order.RequestStatus{
			order.Requested,
			order.RequestAccepted,
			order.RequestRejected,
			order.RequestTimedOut,
		}
		for _, s := range statuses {
			assert.NoError(t, s.Validate(), s.String())
		}
		require.ErrorIs(t, order.RequestUnknown.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("should mark every answered state as terminal", func(t *testing.T) {
		assert.False(t, order.Requested.IsTerminal())
		assert.True(t, order.RequestAccepted.IsTerminal())
		assert.True(t, order.RequestRejected.IsTerminal())
		assert.True(t, order.RequestTimedOut.IsTerminal())
	})

	t.Run("should render unknown values as Unknown", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.RequestStatus(42).String())
		assert.Equal(t, "Unknown", order.DeliveryStatus(42).String())
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}
