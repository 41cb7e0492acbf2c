package retry_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimistic(t *testing.T) {
	t.Run("should run once on success", func(t *testing.T) {
		calls := 0

		err := retry.Optimistic(t.Context(), 3, func(ctx context.Context) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should retry on version conflict until success", func(t *testing.T) {
		calls := 0

		err := retry.Optimistic(t.Context(), 3, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errs.NewVersionIsInvalidError("order")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop after the attempt budget is exhausted", func(t *testing.T) {
		calls := 0

		err := retry.Optimistic(t.Context(), 3, func(ctx context.Context) error {
			calls++
			return errs.NewVersionIsInvalidError("order")
		})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		assert.Equal(t, 3, calls)
	})

	t.Run("should not retry other errors", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")

		err := retry.Optimistic(t.Context(), 3, func(ctx context.Context) error {
			calls++
			return boom
		})

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
