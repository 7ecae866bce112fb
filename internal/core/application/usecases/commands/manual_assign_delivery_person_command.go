package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrManualAssignDeliveryPersonCommandIsNotConstructed = errors.New(
	"ManualAssignDeliveryPersonCommand must be created via NewManualAssignDeliveryPersonCommand constructor",
)

// ManualAssignDeliveryPersonCommand assigns a chosen courier to a ReadyForDelivery order.
type ManualAssignDeliveryPersonCommand struct {
	actor            Actor
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	guard            guard.ConstructorGuard
}

func NewManualAssignDeliveryPersonCommand(
	actor Actor,
	orderID, deliveryPersonID kernel.UUID,
) (ManualAssignDeliveryPersonCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), deliveryPersonID.Validate()); err != nil {
		return ManualAssignDeliveryPersonCommand{}, err
	}

	return ManualAssignDeliveryPersonCommand{
		actor:            actor,
		orderID:          orderID,
		deliveryPersonID: deliveryPersonID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c ManualAssignDeliveryPersonCommand) Validate() error {
	return c.guard.Validate(ErrManualAssignDeliveryPersonCommandIsNotConstructed)
}
