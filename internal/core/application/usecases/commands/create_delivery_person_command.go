package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateDeliveryPersonCommandIsNotConstructed = errors.New(
	"CreateDeliveryPersonCommand must be created via NewCreateDeliveryPersonCommand constructor",
)

// CreateDeliveryPersonCommand registers the delivery profile of a user. The profile id is
// the user id, so an order's delivery person is also the user who picks it up.
type CreateDeliveryPersonCommand struct {
	actor            Actor
	deliveryPersonID kernel.UUID
	name             string
	phone            string
	acceptsCOD       bool
	maxCashLimit     decimal.Decimal
	guard            guard.ConstructorGuard
}

func NewCreateDeliveryPersonCommand(
	actor Actor,
	deliveryPersonID kernel.UUID,
	name, phone string,
	acceptsCOD bool,
	maxCashLimit decimal.Decimal,
) (CreateDeliveryPersonCommand, error) {
	if err := errors.Join(actor.Validate(), deliveryPersonID.Validate()); err != nil {
		return CreateDeliveryPersonCommand{}, err
	}

	return CreateDeliveryPersonCommand{
		actor:            actor,
		deliveryPersonID: deliveryPersonID,
		name:             name,
		phone:            phone,
		acceptsCOD:       acceptsCOD,
		maxCashLimit:     maxCashLimit,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryPersonCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryPersonCommandIsNotConstructed)
}
