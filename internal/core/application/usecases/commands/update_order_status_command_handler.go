package commands

import (
	"context"
	"log/slog"
)

// UpdateOrderStatusCommandHandler lets restaurant owners and admins set the kitchen-side
// statuses (Pending, Preparing, ReadyForDelivery, Cancelled). Courier statuses have their
// own commands.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger),
	}
}

// Handle applies the owner's status change and commits it. Moving to ReadyForDelivery
// records a status event; courier assignment happens when that event is consumed, so
// the update never waits for or fails because of the assignment.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "update order status"

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

	if err = authorizeRestaurantSide(ctx, command.actor, uow.RestaurantRepository(), o); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	previous := o.Status()
	changed, err := o.ApplyOwnerStatus(command.target, command.actor.ID())
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	result := succeeded("order status unchanged")
	if changed {
		if err = orders.Update(ctx, o); err != nil {
			return failure(ctx, h.logger, op, err), nil
		}
		if err = uow.Commit(ctx); err != nil {
			return failure(ctx, h.logger, op, err), nil
		}
		result = succeeded("order status updated")
	}

	result.OrderID = o.ID()
	result.PreviousStatus = previous
	result.Status = o.Status()
	return result, nil
}
