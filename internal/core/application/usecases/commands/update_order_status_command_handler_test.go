package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_OwnerMarksReady_Succeeds(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, commands.RoleOwner)
	r := newRestaurant(t, owner.ID())
	o := newOrder(t, r.ID(), order.PaymentMethodCard, order.Preparing, nil)

	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), order.ReadyForDelivery)
	require.NoError(t, err)

	result, err := commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Preparing, result.PreviousStatus)
	assert.Equal(t, order.ReadyForDelivery, result.Status)
	assert.Equal(t, order.ReadyForDelivery, o.Status())
	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, owner.ID(), o.DomainEvents()[0].ActorID)

	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_SameStatus_DoesNotWrite(t *testing.T) {
	ctx := t.Context()
	admin := newActor(t, commands.RoleAdmin)
	o := newOrder(t, kernel.NewUUID(), order.PaymentMethodCard, order.Preparing, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RestaurantRepository").Return(new(MockRestaurantRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(admin, o.ID(), order.Preparing)
	require.NoError(t, err)

	result, err := commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, order.Preparing, result.Status)
	assert.Empty(t, o.DomainEvents())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Failures(t *testing.T) {
	tests := []struct {
		name     string
		role     commands.Role
		ownsIt   bool
		status   order.Status
		target   order.Status
		expected commands.ErrorCode
	}{
		{"owner of another restaurant", commands.RoleOwner, false, order.Pending, order.Preparing, commands.CodeForbidden},
		{"customer", commands.RoleCustomer, false, order.Pending, order.Preparing, commands.CodeForbidden},
		{"courier-side status", commands.RoleOwner, true, order.ReadyForDelivery, order.Delivering, commands.CodeInvalidOperation},
		{"delivered is not owner settable", commands.RoleOwner, true, order.ReadyForDelivery, order.Delivered, commands.CodeInvalidOperation},
		{"kitchen status after assignment", commands.RoleOwner, true, order.WaitingCourier, order.Preparing, commands.CodeInvalidOrderStatus},
		{"cancelled is terminal", commands.RoleAdmin, false, order.Cancelled, order.Pending, commands.CodeInvalidOrderStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			actor := newActor(t, tt.role)
			ownerID := kernel.NewUUID()
			if tt.ownsIt {
				ownerID = actor.ID()
			}
			r := newRestaurant(t, ownerID)

			var courierID *kernel.UUID
			if tt.status.RequiresDeliveryPerson() {
				id := kernel.NewUUID()
				courierID = &id
			}
			o := newOrder(t, r.ID(), order.PaymentMethodCard, tt.status, courierID)

			orderRepo := new(MockOrderRepository)
			restaurantRepo := new(MockRestaurantRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			uow.On("RestaurantRepository").Return(restaurantRepo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
			restaurantRepo.On("Get", ctx, r.ID()).Return(r, nil).Maybe()

			cmd, err := commands.NewUpdateOrderStatusCommand(actor, o.ID(), tt.target)
			require.NoError(t, err)

			result, err := commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory{uow}, nil).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.expected, result.ErrorCode)
			assert.Equal(t, tt.status, o.Status())
			assert.Empty(t, o.DomainEvents())
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(newActor(t, commands.RoleAdmin), orderID, order.Preparing)
	require.NoError(t, err)

	result, err := commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory{uow}, nil).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.CodeOrderNotFound, result.ErrorCode)
}

func TestUpdateOrderStatusCommandHandler_NotConstructedCommand(t *testing.T) {
	handler := commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory{new(MockUoW)}, nil)

	_, err := handler.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}

func TestNewUpdateOrderStatusCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(commands.Actor{}, kernel.NewUUID(), order.Preparing)
	require.ErrorIs(t, err, commands.ErrActorIsNotConstructed)

	_, err = commands.NewUpdateOrderStatusCommand(newActor(t, commands.RoleOwner), kernel.UUID{}, order.Preparing)
	require.Error(t, err)
}
