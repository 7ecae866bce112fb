package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantCommandHandler_OwnerRegistersForThemselves(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, commands.RoleOwner)
	address := newDeliveryAddress(t)

	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RestaurantRepository").Return(restaurantRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	restaurantRepo.On("Add", ctx, mock.MatchedBy(func(r *restaurant.Restaurant) bool {
		_, located := r.Location()
		return r.IsOwnedBy(owner.ID()) && located
	})).Return(nil).Once()

	cmd, err := commands.NewCreateRestaurantCommand(owner, kernel.NewUUID(), "Naranj", &address)
	require.NoError(t, err)

	result, err := commands.NewCreateRestaurantCommandHandler(restaurantUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, result.Success, result.Message)
	assert.Equal(t, cmd.RestaurantID(), result.RestaurantID)
	restaurantRepo.AssertExpectations(t)
}

func TestCreateRestaurantCommandHandler_CustomerIsForbidden(t *testing.T) {
	cmd, err := commands.NewCreateRestaurantCommand(newActor(t, commands.RoleCustomer), kernel.NewUUID(), "Naranj", nil)
	require.NoError(t, err)

	result, err := commands.NewCreateRestaurantCommandHandler(restaurantUoWFactory{new(MockUoW)}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.CodeForbidden, result.ErrorCode)
}

func TestCreateRestaurantCommandHandler_BlankName(t *testing.T) {
	cmd, err := commands.NewCreateRestaurantCommand(newActor(t, commands.RoleAdmin), kernel.NewUUID(), "", nil)
	require.NoError(t, err)

	result, err := commands.NewCreateRestaurantCommandHandler(restaurantUoWFactory{new(MockUoW)}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.CodeValidationError, result.ErrorCode)
}
