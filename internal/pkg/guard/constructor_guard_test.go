package guard_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("order must be created via NewOrder")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the caller's error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, notConstructed, g.Validate(notConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		require.ErrorIs(t, g.Validate(nil), guard.ErrDefaultConstructorGuard)
	})

	t.Run("copies keep the constructed state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(notConstructed))
	})
}

func TestConstructorGuard_ZeroValueGeoPoint(t *testing.T) {
	berlin, err := kernel.NewGeoPoint(52.52, 13.405)
	require.NoError(t, err)

	_, err = berlin.DistanceTo(kernel.GeoPoint{})

	require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestConstructorGuard_ZeroValueDeliveryStatus(t *testing.T) {
	_, err := courier.RestoreDeliveryPerson(kernel.NewUUID(), "Dana", "", nil, courier.DeliveryStatus{}, 0)

	require.ErrorIs(t, err, courier.ErrDeliveryStatusIsNotConstructed)
}

func TestConstructorGuard_ZeroValueCommandIsRejectedByHandler(t *testing.T) {
	handler := commands.NewCancelOrderCommandHandler(nil, nil)

	result, err := handler.Handle(t.Context(), commands.CancelOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	assert.Empty(t, result.ErrorCode)
}
