package ports

import (
	"context"
)

// UnitOfWorkFactory creates an isolated UnitOfWork per business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork wraps one database transaction. Repositories obtained after Begin share it;
// Commit also stores the domain events of every aggregate saved through them.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	DeliveryPersonRepository() DeliveryPersonRepository

	RestaurantRepository() RestaurantRepository

	OutboxRepository() OutboxRepository
}
