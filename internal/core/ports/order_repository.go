package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their line items.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the current state of an existing order.
	// Returns errs.ErrObjectNotFound if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByDeliveryPerson returns, per delivery person, the number of orders
	// in WaitingCourier or Delivering. Couriers without active orders are absent.
	CountActiveByDeliveryPerson(ctx context.Context) (map[kernel.UUID]int, error)

	// CountActiveForDeliveryPerson is CountActiveByDeliveryPerson for a single courier.
	CountActiveForDeliveryPerson(ctx context.Context, deliveryPersonID kernel.UUID) (int, error)

	// GetReadyForDeliveryBefore returns up to limit orders that have been ReadyForDelivery
	// since before t, longest-waiting first.
	GetReadyForDeliveryBefore(ctx context.Context, t time.Time, limit int) ([]*order.Order, error)
}
