package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is the restaurant owner's status change from the kitchen dashboard.
type UpdateOrderStatusCommand struct {
	actor   Actor
	orderID kernel.UUID
	target  order.Status
	guard   guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(actor Actor, orderID kernel.UUID, target order.Status) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}
