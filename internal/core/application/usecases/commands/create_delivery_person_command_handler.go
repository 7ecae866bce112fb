package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/courier"
)

// CreateDeliveryPersonCommandHandler registers couriers. A courier registers under their
// own user id; admins may register anyone.
type CreateDeliveryPersonCommandHandler struct {
	uowFactory DeliveryPersonUoWFactory
	logger     *slog.Logger
}

func NewCreateDeliveryPersonCommandHandler(uowFactory DeliveryPersonUoWFactory, logger *slog.Logger) CreateDeliveryPersonCommandHandler {
	return CreateDeliveryPersonCommandHandler{uowFactory: uowFactory, logger: loggerOrDefault(logger)}
}

// Handle stores a new, unavailable courier with a zero cash balance.
func (h CreateDeliveryPersonCommandHandler) Handle(ctx context.Context, command CreateDeliveryPersonCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "create delivery person"

	self := command.actor.Is(RoleDeliveryPerson) && command.actor.ID().IsEqual(command.deliveryPersonID)
	if !self && !command.actor.Is(RoleAdmin) {
		return failure(ctx, h.logger, op, ErrForbidden), nil
	}

	dp, err := courier.NewDeliveryPerson(command.deliveryPersonID, command.name, command.phone,
		command.acceptsCOD, command.maxCashLimit)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryPersonRepository().Add(ctx, dp); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	id := dp.ID()
	balance := dp.CashBalance()
	result := succeeded("delivery person registered")
	result.DeliveryPersonID = &id
	result.CashBalance = &balance
	return result, nil
}
