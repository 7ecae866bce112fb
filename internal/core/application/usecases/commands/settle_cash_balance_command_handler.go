package commands

import (
	"context"
	"log/slog"
)

// SettleCashBalanceCommandHandler records cash a courier handed over. Admin only.
type SettleCashBalanceCommandHandler struct {
	uowFactory DeliveryPersonUoWFactory
	logger     *slog.Logger
}

func NewSettleCashBalanceCommandHandler(uowFactory DeliveryPersonUoWFactory, logger *slog.Logger) SettleCashBalanceCommandHandler {
	return SettleCashBalanceCommandHandler{uowFactory: uowFactory, logger: loggerOrDefault(logger)}
}

// Handle lowers the balance by the settled amount, never below zero. The Result carries
// the remaining balance.
func (h SettleCashBalanceCommandHandler) Handle(ctx context.Context, command SettleCashBalanceCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "settle cash balance"

	if !command.actor.Is(RoleAdmin) {
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

	settled, err := dp.SettleCash(command.amount)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = people.Update(ctx, dp); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	id := dp.ID()
	balance := dp.CashBalance()
	result := succeeded("settled " + settled.StringFixed(2))
	result.DeliveryPersonID = &id
	result.CashBalance = &balance
	return result, nil
}
