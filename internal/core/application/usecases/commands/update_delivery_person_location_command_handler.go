package commands

import (
	"context"
	"log/slog"
)

// UpdateDeliveryPersonLocationCommandHandler stores position pings and, optionally, the
// courier's availability. Couriers update themselves; admins may update anyone.
type UpdateDeliveryPersonLocationCommandHandler struct {
	uowFactory DeliveryPersonUoWFactory
	logger     *slog.Logger
}

func NewUpdateDeliveryPersonLocationCommandHandler(
	uowFactory DeliveryPersonUoWFactory,
	logger *slog.Logger,
) UpdateDeliveryPersonLocationCommandHandler {
	return UpdateDeliveryPersonLocationCommandHandler{uowFactory: uowFactory, logger: loggerOrDefault(logger)}
}

func (h UpdateDeliveryPersonLocationCommandHandler) Handle(
	ctx context.Context,
	command UpdateDeliveryPersonLocationCommand,
) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "update delivery person location"

	self := command.actor.Is(RoleDeliveryPerson) && command.actor.ID().IsEqual(command.deliveryPersonID)
	if !self && !command.actor.Is(RoleAdmin) {
		return failure(ctx, h.logger, op, ErrForbidden), nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	people := uow.DeliveryPersonRepository()
	dp, err := people.Get(ctx, command.deliveryPersonID)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	if err = dp.UpdateLocation(command.point, command.reportedAt); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if command.available != nil {
		dp.SetAvailability(*command.available)
	}

	if err = people.Update(ctx, dp); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	id := dp.ID()
	result := succeeded("location updated")
	result.DeliveryPersonID = &id
	return result, nil
}
