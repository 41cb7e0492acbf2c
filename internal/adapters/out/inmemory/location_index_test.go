package inmemory_test

import (
	"testing"
	"time"

	"dispatch/internal/adapters/out/inmemory"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestLocationIndex_Report(t *testing.T) {
	t.Run("should return the last reported position", func(t *testing.T) {
		index := inmemory.NewLocationIndex()
		courierID := kernel.NewUUID()
		first := time.Now().Add(-time.Minute)
		second := time.Now()

		index.Report(courierID, point(t, 40.0, -74.0), first)
		index.Report(courierID, point(t, 41.0, -73.0), second)

		location, ok := index.Get(courierID)
		require.True(t, ok)
		assert.Equal(t, courierID, location.CourierID)
		assert.InDelta(t, 41.0, location.Location.Lat(), 1e-9)
		assert.Equal(t, second, location.ReportedAt)
	})

	t.Run("should report missing courier as not found", func(t *testing.T) {
		index := inmemory.NewLocationIndex()

		_, ok := index.Get(kernel.NewUUID())
		assert.False(t, ok)
	})
}

func TestLocationIndex_Nearest(t *testing.T) {
	target := func(t *testing.T) kernel.GeoPoint { return point(t, 40.0, -74.0) }

	t.Run("should order couriers by distance to the target", func(t *testing.T) {
		index := inmemory.NewLocationIndex()
		near := kernel.NewUUID()
		mid := kernel.NewUUID()
		far := kernel.NewUUID()

		index.Report(far, point(t, 42.0, -74.0), time.Now())
		index.Report(near, point(t, 40.01, -74.0), time.Now())
		index.Report(mid, point(t, 40.5, -74.0), time.Now())

		nearest := index.Nearest(target(t), 10, nil)

		require.Len(t, nearest, 3)
		assert.Equal(t, near, nearest[0].CourierID)
		assert.Equal(t, mid, nearest[1].CourierID)
		assert.Equal(t, far, nearest[2].CourierID)
	})

	t.Run("should cap the result at the limit", func(t *testing.T) {
		index := inmemory.NewLocationIndex()
		for n := 0; n < 5; n++ {
			index.Report(kernel.NewUUID(), point(t, 40.0+float64(n)*0.1, -74.0), time.Now())
		}

		nearest := index.Nearest(target(t), 2, nil)

		assert.Len(t, nearest, 2)
	})

	t.Run("should skip excluded couriers", func(t *testing.T) {
		index := inmemory.NewLocationIndex()
		excluded := kernel.NewUUID()
		included := kernel.NewUUID()

		index.Report(excluded, point(t, 40.001, -74.0), time.Now())
		index.Report(included, point(t, 41.0, -74.0), time.Now())

		nearest := index.Nearest(target(t), 10, []kernel.UUID{excluded})

		require.Len(t, nearest, 1)
		assert.Equal(t, included, nearest[0].CourierID)
	})

	t.Run("should return nothing for a non-positive limit", func(t *testing.T) {
		index := inmemory.NewLocationIndex()
		index.Report(kernel.NewUUID(), point(t, 40.0, -74.0), time.Now())

		assert.Empty(t, index.Nearest(target(t), 0, nil))
	})
}
