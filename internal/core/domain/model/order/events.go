package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the type tag stored with the event in the outbox.
const StatusChangedEventName = "order.status_changed"

// StatusChanged is raised whenever an order moves to a different status.
// DeliveryPersonID is the courier involved in the change, including the one being released.
type StatusChanged struct {
	EventID          kernel.UUID
	OrderID          kernel.UUID
	RestaurantID     kernel.UUID
	CustomerID       kernel.UUID
	DeliveryPersonID *kernel.UUID
	Previous         Status
	Current          Status
	ActorID          kernel.UUID
	OccurredAt       time.Time
}

// Name returns StatusChangedEventName.
func (e StatusChanged) Name() string {
	return StatusChangedEventName
}

// AggregateID is the order id. The outbox relay uses it as the Kafka key, which keeps
// events of one order in one partition and in order.
func (e StatusChanged) AggregateID() kernel.UUID {
	return e.OrderID
}
