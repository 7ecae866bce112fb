// Package commands contains the operations that change orders, delivery persons and restaurants.
// Every command is a constructor-guarded value; its handler opens a unit of work, applies the
// domain operation and returns a Result for expected failures.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryPersonRepoFactory interface {
		DeliveryPersonRepository() ports.DeliveryPersonRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by operations that change an order on behalf of its customer
	// or its restaurant.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	DeliveryPersonUoW interface {
		TxManager
		DeliveryPersonRepoFactory
	}

	DeliveryPersonUoWFactory interface {
		Create() DeliveryPersonUoW
	}

	RestaurantUoW interface {
		TxManager
		RestaurantRepoFactory
	}

	RestaurantUoWFactory interface {
		Create() RestaurantUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans orders, delivery persons and restaurants. Used by assignment
	// and by the courier-driven transitions.
	UoW interface {
		TxManager
		OrderRepoFactory
		DeliveryPersonRepoFactory
		RestaurantRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
