package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSettleCashBalanceCommandIsNotConstructed = errors.New(
	"SettleCashBalanceCommand must be created via NewSettleCashBalanceCommand constructor",
)

// SettleCashBalanceCommand records cash a courier handed over to the platform.
type SettleCashBalanceCommand struct {
	actor            Actor
	deliveryPersonID kernel.UUID
	amount           decimal.Decimal
	guard            guard.ConstructorGuard
}

func NewSettleCashBalanceCommand(actor Actor, deliveryPersonID kernel.UUID, amount decimal.Decimal) (SettleCashBalanceCommand, error) {
	_, amountErr := kernel.NewAmount("settled amount", amount)
	if err := errors.Join(actor.Validate(), deliveryPersonID.Validate(), amountErr); err != nil {
		return SettleCashBalanceCommand{}, err
	}

	return SettleCashBalanceCommand{
		actor:            actor,
		deliveryPersonID: deliveryPersonID,
		amount:           amount,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c SettleCashBalanceCommand) Validate() error {
	return c.guard.Validate(ErrSettleCashBalanceCommandIsNotConstructed)
}
