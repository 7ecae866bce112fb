package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels orders for customers, restaurant owners and admins.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates the handler. A nil logger falls back to slog.Default.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger),
	}
}

// Handle cancels the order. A status the actor may not cancel from is reported as
// INVALID_OPERATION and leaves the order untouched.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "cancel order"

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.orderID)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	previous := o.Status()
	switch {
	case command.actor.Is(RoleCustomer):
		if !o.CustomerID().IsEqual(command.actor.ID()) {
			return failure(ctx, h.logger, op, ErrForbidden), nil
		}
		err = o.CancelByCustomer(command.actor.ID())
	default:
		if err = authorizeRestaurantSide(ctx, command.actor, uow.RestaurantRepository(), o); err != nil {
			return failure(ctx, h.logger, op, err), nil
		}
		err = o.CancelByOwner(command.actor.ID())
	}
	if errors.Is(err, order.ErrTransitionNotAllowed) {
		return failed(CodeInvalidOperation, err.Error()), nil
	}
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	if err = orders.Update(ctx, o); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	result := succeeded("order cancelled")
	result.OrderID = o.ID()
	result.PreviousStatus = previous
	result.Status = o.Status()
	return result, nil
}
