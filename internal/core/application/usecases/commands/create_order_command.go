package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places an order at checkout. Payment is authorized upstream;
// the order starts Pending with payment Pending.
type CreateOrderCommand struct {
	orderID          kernel.UUID
	customer         Actor
	restaurantID     kernel.UUID
	items            []order.LineItem
	charges          order.Charges
	deliveryAddress  kernel.Address
	paymentMethod    order.PaymentMethod
	estimatedMinutes int
	placedAt         time.Time
	guard            guard.ConstructorGuard
}

func NewCreateOrderCommand(
	customer Actor,
	restaurantID kernel.UUID,
	items []order.LineItem,
	charges order.Charges,
	deliveryAddress kernel.Address,
	paymentMethod order.PaymentMethod,
	estimatedMinutes int,
) (CreateOrderCommand, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}

	if err := errors.Join(
		customer.Validate(),
		restaurantID.Validate(),
		itemsErr,
		deliveryAddress.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:          kernel.NewUUID(),
		customer:         customer,
		restaurantID:     restaurantID,
		items:            append([]order.LineItem(nil), items...),
		charges:          charges,
		deliveryAddress:  deliveryAddress,
		paymentMethod:    paymentMethod,
		estimatedMinutes: estimatedMinutes,
		placedAt:         time.Now().UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }

// Validate returns ErrCreateOrderCommandIsNotConstructed for the zero value.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
