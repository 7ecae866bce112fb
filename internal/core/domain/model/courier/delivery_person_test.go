package courier_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewDeliveryPerson(t *testing.T) {
	t.Run("starts unavailable without position", func(t *testing.T) {
		id := kernel.NewUUID()

		dp, err := courier.NewDeliveryPerson(id, " Ahmad ", "+963 11 000", true, dec("100"))

		require.NoError(t, err)
		require.NoError(t, dp.Validate())
		assert.True(t, dp.ID().IsEqual(id))
		assert.Equal(t, "Ahmad", dp.Name())
		assert.False(t, dp.IsAvailable())
		assert.True(t, dp.AcceptsCOD())
		assert.True(t, dp.CashBalance().IsZero())
		assert.Nil(t, dp.Position())
		assert.Equal(t, 0, dp.CompletedDeliveries())
	})

	t.Run("validates input", func(t *testing.T) {
		dp, err := courier.NewDeliveryPerson(kernel.UUID{}, "", "", true, dec("-1"))

		require.Error(t, err)
		assert.Nil(t, dp)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRestoreDeliveryPerson(t *testing.T) {
	point, _ := kernel.NewGeoPoint(1, 2)
	status, err := courier.NewDeliveryStatus(true, true, dec("20"), dec("50"))
	require.NoError(t, err)

	dp, err := courier.RestoreDeliveryPerson(kernel.NewUUID(), "Rami", "1", &courier.Position{Point: point}, status, 4)
	require.NoError(t, err)
	assert.True(t, dp.IsAvailable())
	assert.Equal(t, 4, dp.CompletedDeliveries())
	require.NotNil(t, dp.Position())
	assert.Equal(t, point, dp.Position().Point)

	_, err = courier.RestoreDeliveryPerson(kernel.NewUUID(), "Rami", "1", nil, courier.DeliveryStatus{}, 0)
	require.ErrorIs(t, err, courier.ErrDeliveryStatusIsNotConstructed)

	_, err = courier.RestoreDeliveryPerson(kernel.NewUUID(), "Rami", "1", nil, status, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestDeliveryPerson_Validate(t *testing.T) {
	var nilDP *courier.DeliveryPerson
	require.ErrorIs(t, nilDP.Validate(), courier.ErrDeliveryPersonIsNotConstructed)
	require.ErrorIs(t, (&courier.DeliveryPerson{}).Validate(), courier.ErrDeliveryPersonIsNotConstructed)
}

func TestDeliveryPerson_UpdateLocation(t *testing.T) {
	dp, _ := courier.NewDeliveryPerson(kernel.NewUUID(), "Rami", "", false, decimal.Zero)
	restaurant, _ := kernel.NewGeoPoint(33.5138, 36.2765)

	_, ok, err := dp.DistanceTo(restaurant)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("EET", 2*3600))
	point, _ := kernel.NewGeoPoint(33.5138, 36.2965)
	require.NoError(t, dp.UpdateLocation(point, at))

	require.NotNil(t, dp.Position())
	assert.Equal(t, time.UTC, dp.Position().UpdatedAt.Location())
	assert.True(t, dp.Position().UpdatedAt.Equal(at))

	d, ok, err := dp.DistanceTo(restaurant)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 1.85, d, 0.05)

	require.ErrorIs(t, dp.UpdateLocation(kernel.GeoPoint{}, at), kernel.ErrGeoPointIsNotConstructed)
}

func TestDeliveryPerson_SetAvailability(t *testing.T) {
	dp, _ := courier.NewDeliveryPerson(kernel.NewUUID(), "Rami", "", false, decimal.Zero)

	dp.SetAvailability(true)
	assert.True(t, dp.IsAvailable())

	dp.SetAvailability(false)
	assert.False(t, dp.IsAvailable())
}

func TestDeliveryPerson_Cash(t *testing.T) {
	dp, _ := courier.NewDeliveryPerson(kernel.NewUUID(), "Rami", "", true, dec("50"))

	assert.True(t, dp.HasSufficientCashBalance(dec("50")))
	assert.False(t, dp.HasSufficientCashBalance(dec("50.01")))

	require.NoError(t, dp.RecordDelivery(dec("30")))
	assert.Equal(t, 1, dp.CompletedDeliveries())
	assert.True(t, dp.CashBalance().Equal(dec("30")))
	assert.True(t, dp.HasSufficientCashBalance(dec("20")))
	assert.False(t, dp.HasSufficientCashBalance(dec("20.01")))

	require.NoError(t, dp.RecordDelivery(decimal.Zero))
	assert.Equal(t, 2, dp.CompletedDeliveries())

	settled, err := dp.SettleCash(dec("10"))
	require.NoError(t, err)
	assert.True(t, settled.Equal(dec("10")))
	assert.True(t, dp.CashBalance().Equal(dec("20")))

	settled, err = dp.SettleCash(dec("100"))
	require.NoError(t, err)
	assert.True(t, settled.Equal(dec("20")))
	assert.True(t, dp.CashBalance().IsZero())

	_, err = dp.SettleCash(dec("-1"))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, dp.RecordDelivery(dec("-1")), errs.ErrValueIsOutOfRange)
}

func TestDeliveryPerson_ConfigureCOD(t *testing.T) {
	dp, _ := courier.NewDeliveryPerson(kernel.NewUUID(), "Rami", "", false, decimal.Zero)

	require.NoError(t, dp.ConfigureCOD(true, dec("75")))
	assert.True(t, dp.AcceptsCOD())
	assert.True(t, dp.Status().MaxCashLimit().Equal(dec("75")))

	require.Error(t, dp.ConfigureCOD(true, dec("-5")))
	assert.True(t, dp.Status().MaxCashLimit().Equal(dec("75")))
}
