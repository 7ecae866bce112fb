package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrPickUpOrderCommandIsNotConstructed = errors.New(
		"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
	)
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
)

// PickUpOrderCommand is sent by the assigned courier when they leave the restaurant with the food.
type PickUpOrderCommand struct {
	courier Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewPickUpOrderCommand(courier Actor, orderID kernel.UUID) (PickUpOrderCommand, error) {
	if err := errors.Join(courier.Validate(), orderID.Validate()); err != nil {
		return PickUpOrderCommand{}, err
	}
	return PickUpOrderCommand{courier: courier, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

// DeliverOrderCommand is sent by the assigned courier at the door.
type DeliverOrderCommand struct {
	courier Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewDeliverOrderCommand(courier Actor, orderID kernel.UUID) (DeliverOrderCommand, error) {
	if err := errors.Join(courier.Validate(), orderID.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{courier: courier, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}
