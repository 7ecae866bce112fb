package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateRestaurantCommandIsNotConstructed = errors.New(
	"CreateRestaurantCommand must be created via NewCreateRestaurantCommand constructor",
)

type CreateRestaurantCommand struct {
	actor        Actor
	restaurantID kernel.UUID
	ownerID      kernel.UUID
	name         string
	address      *kernel.Address
	guard        guard.ConstructorGuard
}

// NewCreateRestaurantCommand registers a restaurant. An owner always registers it for
// themselves; ownerID is only honored for admins.
func NewCreateRestaurantCommand(actor Actor, ownerID kernel.UUID, name string, address *kernel.Address) (CreateRestaurantCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateRestaurantCommand{}, err
	}
	if actor.Is(RoleOwner) {
		ownerID = actor.ID()
	}
	if err := ownerID.Validate(); err != nil {
		return CreateRestaurantCommand{}, err
	}

	return CreateRestaurantCommand{
		actor:        actor,
		restaurantID: kernel.NewUUID(),
		ownerID:      ownerID,
		name:         name,
		address:      address,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRestaurantCommand) RestaurantID() kernel.UUID { return c.restaurantID }

func (c CreateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrCreateRestaurantCommandIsNotConstructed)
}
