package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
)

// CreateOrderCommandHandler places orders at checkout. The order starts in Pending and
// no status event is recorded for its creation.
//
// Example:
//
// 	handler := commands.NewCreateOrderCommandHandler(uowFactory, logger)
// 	cmd, _ := commands.NewCreateOrderCommand(customer, restaurantID, items, charges,
// 	    address, order.PaymentMethodCard, 30)
// 	result, err := handler.Handle(ctx, cmd)
// 	if err != nil {
// 	    return err // cmd was not built through its constructor
// 	}
// 	if !result.Success {
// 	    // result.ErrorCode is RESTAURANT_NOT_FOUND, FORBIDDEN, VALIDATION_ERROR, ...
// 	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler needs an OrderUoWFactory for the restaurant lookup and the
// insert. A nil logger falls back to slog.Default.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger),
	}
}

// Handle stores the new order after checking that the restaurant exists.
// Only customers and admins place orders; the customer is the acting user.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	if !command.customer.Is(RoleCustomer) && !command.customer.Is(RoleAdmin) {
		return failure(ctx, h.logger, "create order", ErrForbidden), nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, "create order", err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.RestaurantRepository().Get(ctx, command.restaurantID); err != nil {
		return failure(ctx, h.logger, "create order", err), nil
	}

	o, err := order.NewOrder(
		command.orderID,
		command.restaurantID,
		command.customer.ID(),
		command.items,
		command.charges,
		command.deliveryAddress,
		command.paymentMethod,
		command.estimatedMinutes,
		command.placedAt,
	)
	if err != nil {
		return failure(ctx, h.logger, "create order", err), nil
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return failure(ctx, h.logger, "create order", err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, "create order", err), nil
	}

	result := succeeded("order placed")
	result.OrderID = o.ID()
	result.RestaurantID = o.RestaurantID()
	result.Status = o.Status()
	return result, nil
}
