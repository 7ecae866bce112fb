package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCancel(t *testing.T, o *order.Order, r *restaurant.Restaurant) (*MockUoW, *MockOrderRepository) {
	t.Helper()
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RestaurantRepository").Return(restaurantRepo).Maybe()
	uow.On("Commit", ctx).Return(nil).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Maybe()
	if r != nil {
		restaurantRepo.On("Get", ctx, o.RestaurantID()).Return(r, nil).Maybe()
	}
	return uow, orderRepo
}

func TestCancelOrderCommandHandler_CustomerCancelsPendingOrder(t *testing.T) {
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.Pending, nil)
	customer := actorWithID(t, o.CustomerID(), commands.RoleCustomer)
	uow, orderRepo := setupCancel(t, o, nil)

	cmd, err := commands.NewCancelOrderCommand(customer, o.ID())
	require.NoError(t, err)

	result, err := commands.NewCancelOrderCommandHandler(orderUoWFactory{uow}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Pending, result.PreviousStatus)
	assert.Equal(t, order.Cancelled, result.Status)
	orderRepo.AssertCalled(t, "Update", mock.Anything, o)
	uow.AssertCalled(t, "Commit", mock.Anything)
}

func TestCancelOrderCommandHandler_CustomerCannotCancelLateOrder(t *testing.T) {
	courierID := kernel.NewUUID()
	tests := []struct {
		status  order.Status
		courier *kernel.UUID
	}{
		{order.ReadyForDelivery, nil},
		{order.WaitingCourier, &courierID},
		{order.Delivering, &courierID},
		{order.Delivered, &courierID},
		{order.Cancelled, nil},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, tt.status, tt.courier)
			customer := actorWithID(t, o.CustomerID(), commands.RoleCustomer)
			uow, orderRepo := setupCancel(t, o, nil)

			cmd, err := commands.NewCancelOrderCommand(customer, o.ID())
			require.NoError(t, err)

			result, err := commands.NewCancelOrderCommandHandler(orderUoWFactory{uow}, nil).Handle(t.Context(), cmd)

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, commands.CodeInvalidOperation, result.ErrorCode)
			assert.Equal(t, tt.status, o.Status())
			assert.Empty(t, o.DomainEvents())
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestCancelOrderCommandHandler_OtherCustomerIsForbidden(t *testing.T) {
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.Pending, nil)
	uow, orderRepo := setupCancel(t, o, nil)

	cmd, err := commands.NewCancelOrderCommand(newActor(t, commands.RoleCustomer), o.ID())
	require.NoError(t, err)

	result, err := commands.NewCancelOrderCommandHandler(orderUoWFactory{uow}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.CodeForbidden, result.ErrorCode)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_OwnerCancelsWaitingCourierOrder_ReleasesCourier(t *testing.T) {
	owner := newActor(t, commands.RoleOwner)
	r := newRestaurant(t, owner.ID())
	courierID := kernel.NewUUID()
	o := newOrder(t, r.ID(), order.PaymentMethodCashOnDelivery, order.WaitingCourier, &courierID)
	uow, _ := setupCancel(t, o, r)

	cmd, err := commands.NewCancelOrderCommand(owner, o.ID())
	require.NoError(t, err)

	result, err := commands.NewCancelOrderCommandHandler(orderUoWFactory{uow}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Nil(t, o.DeliveryPerson())

	events := o.DomainEvents()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].DeliveryPersonID)
	assert.Equal(t, courierID, *events[0].DeliveryPersonID)
}

func TestCancelOrderCommandHandler_OwnerCannotCancelDeliveringOrder(t *testing.T) {
	owner := newActor(t, commands.RoleOwner)
	r := newRestaurant(t, owner.ID())
	courierID := kernel.NewUUID()
	o := newOrder(t, r.ID(), order.PaymentMethodCard, order.Delivering, &courierID)
	uow, orderRepo := setupCancel(t, o, r)

	cmd, err := commands.NewCancelOrderCommand(owner, o.ID())
	require.NoError(t, err)

	result, err := commands.NewCancelOrderCommandHandler(orderUoWFactory{uow}, nil).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, commands.CodeInvalidOperation, result.ErrorCode)
	assert.Equal(t, order.Delivering, o.Status())
	require.NotNil(t, o.DeliveryPerson())
	assert.Empty(t, o.DomainEvents())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelOrderCommandHandler_NotConstructedCommand(t *testing.T) {
	_, err := commands.NewCancelOrderCommandHandler(orderUoWFactory{new(MockUoW)}, nil).
		Handle(t.Context(), commands.CancelOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
}
