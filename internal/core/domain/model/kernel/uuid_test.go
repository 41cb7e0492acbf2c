package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should produce valid identifiers", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should not repeat", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		assert.False(t, first.IsEqual(second))
	})
}

func TestUUIDFromString(t *testing.T) {
	canonical := "8f2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90"

	t.Run("should parse canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)

		require.NoError(t, err)
		assert.Equal(t, canonical, id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should parse alternate encodings", func(t *testing.T) {
		for _, input := range []string{
			"{8f2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90}",
			"urn:uuid:8f2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90",
			"8f2c5a1e4b9d4c6a9e3f1d7b2a8c5e90",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, "input: %s", input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"not-a-uuid",
			"8f2c5a1e-4b9d-4c6a-9e3f",
			"8f2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90-tail",
			"zf2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90",
		} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, "input: %s", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through binary form", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x8f, 0x2c, 0x5a})

		assert.Error(t, err)
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("should compare by value", func(t *testing.T) {
		first, err := kernel.UUIDFromString("8f2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90")
		require.NoError(t, err)
		second, err := kernel.UUIDFromString("8f2c5a1e-4b9d-4c6a-9e3f-1d7b2a8c5e90")
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.True(t, second.IsEqual(first))
	})

	t.Run("zero values should be equal to each other only", func(t *testing.T) {
		var first, second kernel.UUID

		assert.True(t, first.IsEqual(second))
		assert.False(t, first.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should reject the zero value", func(t *testing.T) {
		var id kernel.UUID

		assert.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("should reject a parsed nil UUID", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}
