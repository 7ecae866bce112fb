package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("geocoded", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(10, 20)
		a, err := kernel.NewAddress(" Main St 1 ", "Springfield", &p)
		require.NoError(t, err)

		assert.Equal(t, "Main St 1", a.Street())
		assert.Equal(t, "Springfield", a.City())
		assert.True(t, a.IsGeocoded())
		point, ok := a.Point()
		assert.True(t, ok)
		assert.Equal(t, p, point)
	})

	t.Run("not geocoded", func(t *testing.T) {
		a, err := kernel.NewAddress("Main St 1", "", nil)
		require.NoError(t, err)
		assert.False(t, a.IsGeocoded())
		_, ok := a.Point()
		assert.False(t, ok)
	})

	t.Run("street is required", func(t *testing.T) {
		_, err := kernel.NewAddress("  ", "City", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value point is rejected", func(t *testing.T) {
		var p kernel.GeoPoint
		_, err := kernel.NewAddress("Main St", "City", &p)
		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})

	t.Run("zero value address is invalid", func(t *testing.T) {
		var a kernel.Address
		require.ErrorIs(t, a.Validate(), kernel.ErrAddressIsNotConstructed)
	})
}

func TestNewAmount(t *testing.T) {
	amount, err := kernel.NewAmount("total", decimal.RequireFromString("10.555"))
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("10.56")))

	_, err = kernel.NewAmount("total", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	assert.True(t, kernel.MustAmount("3").Equal(decimal.NewFromInt(3)))
	assert.Panics(t, func() { kernel.MustAmount("-3") })
}
