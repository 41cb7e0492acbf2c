package kernel_test

import (
	"encoding/json"
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create geo point with valid coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(55.75, 37.61)

		require.NoError(t, err)
		require.NoError(t, point.Validate())
		assert.InEpsilon(t, 55.75, point.Lat(), 1e-9)
		assert.InEpsilon(t, 37.61, point.Lng(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(kernel.LatitudeMin, kernel.LongitudeMax)
		require.NoError(t, err)
	})

	t.Run("should reject latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -181)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var point kernel.GeoPoint
		require.Error(t, point.Validate())
	})
}

func TestGeoPointDistanceTo(t *testing.T) {
	t.Run("should calculate planar euclidean distance", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(3, 4)

		distance, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InEpsilon(t, 5.0, distance, 1e-9)
	})

	t.Run("should be symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(1.5, -2.5)
		b, _ := kernel.NewGeoPoint(-4, 7)

		d1, err := a.DistanceTo(b)
		require.NoError(t, err)
		d2, err := b.DistanceTo(a)
		require.NoError(t, err)

		assert.InEpsilon(t, d1, d2, 1e-12)
	})

	t.Run("should be zero for identical points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(10, 10)
		b, _ := kernel.NewGeoPoint(10, 10)

		distance, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.Zero(t, distance)
	})

	t.Run("should fail for unconstructed point", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(1, 1)
		var b kernel.GeoPoint

		_, err := a.DistanceTo(b)

		require.Error(t, err)
	})
}

func TestGeoPointJSON(t *testing.T) {
	t.Run("should round-trip through JSON", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(48.85, 2.35)

		data, err := json.Marshal(point)
		require.NoError(t, err)

		var decoded kernel.GeoPoint
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.NoError(t, decoded.Validate())

		equal, err := point.IsEqual(decoded)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("should reject invalid coordinates on decode", func(t *testing.T) {
		var decoded kernel.GeoPoint
		err := json.Unmarshal([]byte(`{"lat":123.0,"lng":0}`), &decoded)
		require.Error(t, err)
	})
}

func TestNewAddress(t *testing.T) {
	point, _ := kernel.NewGeoPoint(55.75, 37.61)

	t.Run("should create address with valid fields", func(t *testing.T) {
		address, err := kernel.NewAddress(point, "Arbat 12", "Moscow", "Russia")

		require.NoError(t, err)
		require.NoError(t, address.Validate())
		assert.Equal(t, "Arbat 12", address.Street())
		assert.Equal(t, "Moscow", address.City())
		assert.Equal(t, "Russia", address.Country())
		assert.Equal(t, point, address.Location())
	})

	t.Run("should reject empty street", func(t *testing.T) {
		_, err := kernel.NewAddress(point, "", "Moscow", "Russia")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unconstructed location", func(t *testing.T) {
		var zero kernel.GeoPoint
		_, err := kernel.NewAddress(zero, "Arbat 12", "Moscow", "Russia")
		require.Error(t, err)
	})

	t.Run("should round-trip through JSON", func(t *testing.T) {
		address, _ := kernel.NewAddress(point, "Arbat 12", "Moscow", "Russia")

		data, err := json.Marshal(address)
		require.NoError(t, err)

		var decoded kernel.Address
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, address.Street(), decoded.Street())
		assert.InEpsilon(t, address.Location().Lat(), decoded.Location().Lat(), 1e-9)
	})
}

func TestBaseAggregate(t *testing.T) {
	t.Run("new aggregate starts at version 1 with no events", func(t *testing.T) {
		base := kernel.NewBaseAggregate()

		assert.Equal(t, 1, base.Version())
		assert.Empty(t, base.TakeEvents())
	})

	t.Run("restored aggregate keeps its version", func(t *testing.T) {
		base := kernel.RestoreBaseAggregate(7)
		assert.Equal(t, 7, base.Version())
	})

	t.Run("TakeEvents drains accumulated events", func(t *testing.T) {
		base := kernel.NewBaseAggregate()
		base.RegisterEvent(stubEvent{})
		base.RegisterEvent(stubEvent{})

		assert.Len(t, base.PendingEvents(), 2)
		assert.Len(t, base.TakeEvents(), 2)
		assert.Empty(t, base.TakeEvents())
	})
}

type stubEvent struct{}

func (stubEvent) RoutingKey() string { return "stub" }

func TestDistanceIsFinite(t *testing.T) {
	a, _ := kernel.NewGeoPoint(-90, -180)
	b, _ := kernel.NewGeoPoint(90, 180)

	distance, err := a.DistanceTo(b)

	require.NoError(t, err)
	assert.False(t, math.IsInf(distance, 0))
}
