package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create valid unique ids", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should parse supported formats", func(t *testing.T) {
		for _, in := range []string{
			canonical,
			"{" + canonical + "}",
			"urn:uuid:" + canonical,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err, in)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip bytes", func(t *testing.T) {
		src := kernel.NewUUID()
		raw := src.Bytes()

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, src.IsEqual(id))
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("should reject nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(uuid.Nil[:])

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestOptionalUUID(t *testing.T) {
	t.Run("should keep absent reference absent", func(t *testing.T) {
		id, err := kernel.OptionalUUID(nil)

		require.NoError(t, err)
		assert.Nil(t, id)
		assert.Nil(t, kernel.RawPtr(id))
		assert.Nil(t, kernel.StringPtr(id))
	})

	t.Run("should convert present reference", func(t *testing.T) {
		raw := uuid.New()

		id, err := kernel.OptionalUUID(&raw)

		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, raw, *kernel.RawPtr(id))
		assert.Equal(t, raw.String(), *kernel.StringPtr(id))
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	require.NoError(t, kernel.NewUUID().Validate())
}
