package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository persists restaurants and their owner and pickup address.
type RestaurantRepository interface {
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error

	// Get returns the restaurant or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}
