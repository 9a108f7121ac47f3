package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestNewLocation(t *testing.T) {
	t.Run("should create location within bounds", func(t *testing.T) {
		loc, err := kernel.NewLocation(52.52, 13.405)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, 52.52, loc.Latitude(), 1e-9)
		assert.InDelta(t, 13.405, loc.Longitude(), 1e-9)
	})

	t.Run("should accept boundary values", func(t *testing.T) {
		_, err := kernel.NewLocation(kernel.MinLatitude, kernel.MaxLongitude)
		require.NoError(t, err)

		_, err = kernel.NewLocation(kernel.MaxLatitude, kernel.MinLongitude)
		require.NoError(t, err)
	})

	t.Run("should reject latitude out of range", func(t *testing.T) {
		_, err := kernel.NewLocation(90.5, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should join both range errors", func(t *testing.T) {
		_, err := kernel.NewLocation(-91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestNewOptionalLocation(t *testing.T) {
	t.Run("should return nil when both coordinates are absent", func(t *testing.T) {
		loc, err := kernel.NewOptionalLocation(nil, nil)

		require.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("should require the missing half", func(t *testing.T) {
		_, err := kernel.NewOptionalLocation(ptr(10), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should build location when both are present", func(t *testing.T) {
		loc, err := kernel.NewOptionalLocation(ptr(10), ptr(20))

		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.InDelta(t, 20, loc.Longitude(), 1e-9)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(1, 2)
	b, _ := kernel.NewLocation(1, 2)
	c, _ := kernel.NewLocation(2, 1)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)

	var zero kernel.Location
	_, err = a.IsEqual(zero)
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}
