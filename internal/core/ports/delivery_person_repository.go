package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// DeliveryPersonRepository persists users with the delivery role.
type DeliveryPersonRepository interface {
	Add(ctx context.Context, aggregate *courier.DeliveryPerson) error

	// Update returns errs.ErrObjectNotFound if the delivery person does not exist.
	Update(ctx context.Context, aggregate *courier.DeliveryPerson) error

	// Get returns the delivery person or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*courier.DeliveryPerson, error)

	// GetAll returns every delivery person; filtering happens in the domain.
	GetAll(ctx context.Context) ([]*courier.DeliveryPerson, error)
}
