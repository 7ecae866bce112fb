package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryPersonCommandHandler_SelfRegistration(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()

	peopleRepo := new(MockDeliveryPersonRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryPersonRepository").Return(peopleRepo).Once(),
		peopleRepo.On("Add", ctx, mock.MatchedBy(func(dp *courier.DeliveryPerson) bool {
			return dp.ID().IsEqual(userID) && !dp.IsAvailable() && dp.AcceptsCOD()
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewCreateDeliveryPersonCommand(
		actorWithID(t, userID, commands.RoleDeliveryPerson), userID, "Rami", "+963111", true, decimal.RequireFromString("150"))
	require.NoError(t, err)

	result, err := commands.NewCreateDeliveryPersonCommandHandler(deliveryPersonUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, userID, *result.DeliveryPersonID)
	assert.True(t, result.CashBalance.IsZero())
	uow.AssertExpectations(t)
}

func TestCreateDeliveryPersonCommandHandler_Rejections(t *testing.T) {
	t.Run("someone else's profile", func(t *testing.T) {
		cmd, err := commands.NewCreateDeliveryPersonCommand(
			newActor(t, commands.RoleDeliveryPerson), kernel.NewUUID(), "Rami", "", false, decimal.Zero)
		require.NoError(t, err)

		result, err := commands.NewCreateDeliveryPersonCommandHandler(deliveryPersonUoWFactory{new(MockUoW)}, nil).
			Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.CodeForbidden, result.ErrorCode)
	})

	t.Run("blank name", func(t *testing.T) {
		cmd, err := commands.NewCreateDeliveryPersonCommand(
			newActor(t, commands.RoleAdmin), kernel.NewUUID(), "  ", "", false, decimal.Zero)
		require.NoError(t, err)

		result, err := commands.NewCreateDeliveryPersonCommandHandler(deliveryPersonUoWFactory{new(MockUoW)}, nil).
			Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.CodeValidationError, result.ErrorCode)
	})
}

func TestUpdateDeliveryPersonLocationCommandHandler_UpdatesPositionAndAvailability(t *testing.T) {
	ctx := t.Context()
	fixture := availableCourier(restaurantLat, restaurantLng)
	fixture.available = false
	dp := newDeliveryPerson(t, fixture)

	peopleRepo := new(MockDeliveryPersonRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryPersonRepository").Return(peopleRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	peopleRepo.On("Get", ctx, dp.ID()).Return(dp, nil).Once()
	peopleRepo.On("Update", ctx, dp).Return(nil).Once()

	available := true
	cmd, err := commands.NewUpdateDeliveryPersonLocationCommand(
		actorWithID(t, dp.ID(), commands.RoleDeliveryPerson), dp.ID(), 33.52, 36.29, &available)
	require.NoError(t, err)

	result, err := commands.NewUpdateDeliveryPersonLocationCommandHandler(deliveryPersonUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, dp.IsAvailable())
	require.NotNil(t, dp.Position())
	assert.InDelta(t, 33.52, dp.Position().Point.Latitude(), 1e-9)
	assert.InDelta(t, 36.29, dp.Position().Point.Longitude(), 1e-9)
	peopleRepo.AssertExpectations(t)
}

func TestNewUpdateDeliveryPersonLocationCommand_InvalidCoordinates(t *testing.T) {
	_, err := commands.NewUpdateDeliveryPersonLocationCommand(
		newActor(t, commands.RoleAdmin), kernel.NewUUID(), 91, 0, nil)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestSettleCashBalanceCommandHandler_NeverBelowZero(t *testing.T) {
	ctx := t.Context()
	fixture := availableCourier(restaurantLat, restaurantLng)
	fixture.cashBalance = "25.50"
	fixture.maxCashLimit = "100"
	dp := newDeliveryPerson(t, fixture)

	peopleRepo := new(MockDeliveryPersonRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryPersonRepository").Return(peopleRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	peopleRepo.On("Get", ctx, dp.ID()).Return(dp, nil).Once()
	peopleRepo.On("Update", ctx, dp).Return(nil).Once()

	cmd, err := commands.NewSettleCashBalanceCommand(newActor(t, commands.RoleAdmin), dp.ID(), decimal.RequireFromString("40"))
	require.NoError(t, err)

	result, err := commands.NewSettleCashBalanceCommandHandler(deliveryPersonUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, result.CashBalance.IsZero())
	assert.Equal(t, "settled 25.50", result.Message)
}

func TestSettleCashBalanceCommandHandler_OnlyAdmins(t *testing.T) {
	cmd, err := commands.NewSettleCashBalanceCommand(newActor(t, commands.RoleDeliveryPerson), kernel.NewUUID(), decimal.NewFromInt(5))
	require.NoError(t, err)

	result, err := commands.NewSettleCashBalanceCommandHandler(deliveryPersonUoWFactory{new(MockUoW)}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.CodeForbidden, result.ErrorCode)
}

func TestNewSettleCashBalanceCommand_NegativeAmount(t *testing.T) {
	_, err := commands.NewSettleCashBalanceCommand(newActor(t, commands.RoleAdmin), kernel.NewUUID(), decimal.NewFromInt(-1))

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
