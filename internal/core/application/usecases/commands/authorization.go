package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// authorizeRestaurantSide lets staff through and requires owners to own the order's restaurant.
func authorizeRestaurantSide(ctx context.Context, actor Actor, restaurants ports.RestaurantRepository, o *order.Order) error {
	if actor.IsStaff() {
		return nil
	}
	if !actor.Is(RoleOwner) {
		return ErrForbidden
	}

	r, err := restaurants.Get(ctx, o.RestaurantID())
	if err != nil {
		return err
	}
	if !r.IsOwnedBy(actor.ID()) {
		return ErrForbidden
	}
	return nil
}
