// Package rabbitmq fans order status changes out to the notification workers
// that push to customer devices, restaurant dashboards and couriers.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/ports"

	amqp "github.com/streadway/amqp"
)

const routingKeyPrefix = "order.status."

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Notification is the message body consumed by the notification workers.
type Notification struct {
	OrderID          string    `json:"order_id"`
	RestaurantID     string    `json:"restaurant_id"`
	CustomerID       string    `json:"customer_id"`
	DeliveryPersonID string    `json:"delivery_person_id,omitempty"`
	PreviousStatus   string    `json:"previous_status"`
	NewStatus        string    `json:"new_status"`
	ActorID          string    `json:"actor_id,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NotificationDispatcher publishes to a topic exchange with routing key
// order.status.<NewStatus>, so workers can bind to the statuses they care about.
type NotificationDispatcher struct {
	channel  publisher
	exchange string
}

// NewNotificationDispatcher publishes through channel to exchange, normally Client.Channel().
func NewNotificationDispatcher(channel publisher, exchange string) *NotificationDispatcher {
	return &NotificationDispatcher{channel: channel, exchange: exchange}
}

// NotifyOrderStatusChange publishes change as a persistent JSON message.
func (d *NotificationDispatcher) NotifyOrderStatusChange(ctx context.Context, change ports.StatusChangeNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n := Notification{
		OrderID:        change.OrderID.String(),
		RestaurantID:   change.RestaurantID.String(),
		CustomerID:     change.CustomerID.String(),
		PreviousStatus: change.PreviousStatus.String(),
		NewStatus:      change.NewStatus.String(),
		OccurredAt:     change.OccurredAt,
	}
	if change.DeliveryPersonID != nil {
		n.DeliveryPersonID = change.DeliveryPersonID.String()
	}
	if !change.ActorID.IsZero() {
		n.ActorID = change.ActorID.String()
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = d.channel.Publish(
		d.exchange,
		routingKeyPrefix+change.NewStatus.String(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    change.OrderID.String() + ":" + change.NewStatus.String(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
