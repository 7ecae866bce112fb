package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releaseFixture(t *testing.T, o *order.Order) (*MockUoW, *MockOrderRepository, *MockRestaurantRepository) {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RestaurantRepository").Return(restaurantRepo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	return uow, orderRepo, restaurantRepo
}

func release(t *testing.T, uow *MockUoW, actor commands.Actor, orderID kernel.UUID) commands.Result {
	t.Helper()
	cmd, err := commands.NewReleaseOrderAssignmentCommand(actor, orderID)
	require.NoError(t, err)
	result, err := commands.NewReleaseOrderAssignmentCommandHandler(uowFactory{uow}, nil).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return result
}

func TestReleaseOrderAssignmentCommandHandler_AssignedCourierDeclines(t *testing.T) {
	courierID := kernel.NewUUID()
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.WaitingCourier, &courierID)
	uow, orderRepo, _ := releaseFixture(t, o)
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	result := release(t, uow, actorWithID(t, courierID, commands.RoleDeliveryPerson), o.ID())

	require.True(t, result.Success, result.Message)
	assert.Equal(t, order.ReadyForDelivery, result.Status)
	assert.Equal(t, courierID, *result.DeliveryPersonID)
	assert.Nil(t, o.DeliveryPerson())
	require.Len(t, o.DomainEvents(), 1)
	uow.AssertExpectations(t)
}

func TestReleaseOrderAssignmentCommandHandler_NoCourier_IsNoop(t *testing.T) {
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.ReadyForDelivery, nil)
	uow, orderRepo, _ := releaseFixture(t, o)

	result := release(t, uow, newActor(t, commands.RoleAdmin), o.ID())

	require.True(t, result.Success)
	assert.Nil(t, result.DeliveryPersonID)
	assert.Empty(t, o.DomainEvents())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReleaseOrderAssignmentCommandHandler_DeliveringOrder_IsRejected(t *testing.T) {
	courierID := kernel.NewUUID()
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.Delivering, &courierID)
	uow, orderRepo, _ := releaseFixture(t, o)

	result := release(t, uow, newActor(t, commands.RoleAdmin), o.ID())

	assert.Equal(t, commands.CodeInvalidOrderStatus, result.ErrorCode)
	assert.Equal(t, order.Delivering, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReleaseOrderAssignmentCommandHandler_OtherCourierIsForbidden(t *testing.T) {
	courierID := kernel.NewUUID()
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.WaitingCourier, &courierID)
	uow, _, _ := releaseFixture(t, o)

	result := release(t, uow, newActor(t, commands.RoleDeliveryPerson), o.ID())

	assert.Equal(t, commands.CodeForbidden, result.ErrorCode)
	assert.Equal(t, order.WaitingCourier, o.Status())
}

func TestReleaseOrderAssignmentCommandHandler_RestaurantOwnerReleases(t *testing.T) {
	owner := newActor(t, commands.RoleOwner)
	r := newRestaurant(t, owner.ID())
	courierID := kernel.NewUUID()
	o := newOrder(t, r.ID(), order.PaymentMethodCard, order.WaitingCourier, &courierID)
	uow, orderRepo, restaurantRepo := releaseFixture(t, o)
	restaurantRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	result := release(t, uow, owner, o.ID())

	require.True(t, result.Success)
	assert.Equal(t, order.ReadyForDelivery, o.Status())
}
