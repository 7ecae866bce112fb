package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CashBalanceChecker decides whether a courier can collect amount in cash.
type CashBalanceChecker interface {
	HasSufficientCashBalance(ctx context.Context, deliveryPersonID kernel.UUID, amount decimal.Decimal) (bool, error)
}

// NotificationDispatcher informs stakeholders about a status change.
// Delivery to devices and mailboxes happens downstream.
type NotificationDispatcher interface {
	NotifyOrderStatusChange(ctx context.Context, change StatusChangeNotification) error
}

// StatusChangeNotification carries everything a notification worker needs to address
// the customer, the restaurant owner and the assigned courier.
type StatusChangeNotification struct {
	OrderID          kernel.UUID
	RestaurantID     kernel.UUID
	CustomerID       kernel.UUID
	DeliveryPersonID *kernel.UUID
	PreviousStatus   order.Status
	NewStatus        order.Status
	ActorID          kernel.UUID
	OccurredAt       time.Time
}

// EventPublisher sends outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}

// AssignmentLocker serializes assignment attempts on the same order across instances.
type AssignmentLocker interface {
	// TryLock returns acquired=false without error when someone else holds key.
	// The returned unlock must be called once the critical section ends.
	TryLock(ctx context.Context, key string) (unlock func(context.Context) error, acquired bool, err error)
}
