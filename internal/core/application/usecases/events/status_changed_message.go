package events

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// StatusChangedMessage is the wire form of order.StatusChanged in the outbox and on the broker.
type StatusChangedMessage struct {
	EventID          string    `json:"event_id"`
	OrderID          string    `json:"order_id"`
	RestaurantID     string    `json:"restaurant_id"`
	CustomerID       string    `json:"customer_id"`
	DeliveryPersonID *string   `json:"delivery_person_id,omitempty"`
	PreviousStatus   string    `json:"previous_status"`
	NewStatus        string    `json:"new_status"`
	ActorID          string    `json:"actor_id,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewOutboxMessage serializes a domain event into an outbox row.
func NewOutboxMessage(e order.StatusChanged) (ports.OutboxMessage, error) {
	msg := StatusChangedMessage{
		EventID:        e.EventID.String(),
		OrderID:        e.OrderID.String(),
		RestaurantID:   e.RestaurantID.String(),
		CustomerID:     e.CustomerID.String(),
		PreviousStatus: e.Previous.String(),
		NewStatus:      e.Current.String(),
		OccurredAt:     e.OccurredAt,
	}
	if e.DeliveryPersonID != nil {
		id := e.DeliveryPersonID.String()
		msg.DeliveryPersonID = &id
	}
	if !e.ActorID.IsZero() {
		msg.ActorID = e.ActorID.String()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return ports.OutboxMessage{}, fmt.Errorf("marshal %s: %w", e.Name(), err)
	}

	return ports.OutboxMessage{
		ID:          e.EventID,
		EventName:   e.Name(),
		AggregateID: e.OrderID,
		Payload:     payload,
		OccurredAt:  e.OccurredAt,
	}, nil
}

// DecodeStatusChanged parses a broker payload back into a notification.
func DecodeStatusChanged(payload []byte) (ports.StatusChangeNotification, error) {
	var msg StatusChangedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return ports.StatusChangeNotification{}, fmt.Errorf("unmarshal status changed message: %w", err)
	}

	orderID, err := kernel.UUIDFromString(msg.OrderID)
	if err != nil {
		return ports.StatusChangeNotification{}, err
	}
	restaurantID, err := kernel.UUIDFromString(msg.RestaurantID)
	if err != nil {
		return ports.StatusChangeNotification{}, err
	}
	customerID, err := kernel.UUIDFromString(msg.CustomerID)
	if err != nil {
		return ports.StatusChangeNotification{}, err
	}
	previous, err := order.ParseStatus(msg.PreviousStatus)
	if err != nil {
		return ports.StatusChangeNotification{}, err
	}
	current, err := order.ParseStatus(msg.NewStatus)
	if err != nil {
		return ports.StatusChangeNotification{}, err
	}

	n := ports.StatusChangeNotification{
		OrderID:        orderID,
		RestaurantID:   restaurantID,
		CustomerID:     customerID,
		PreviousStatus: previous,
		NewStatus:      current,
		OccurredAt:     msg.OccurredAt,
	}
	if msg.DeliveryPersonID != nil {
		dp, dpErr := kernel.UUIDFromString(*msg.DeliveryPersonID)
		if dpErr != nil {
			return ports.StatusChangeNotification{}, dpErr
		}
		n.DeliveryPersonID = &dp
	}
	if msg.ActorID != "" {
		actor, actorErr := kernel.UUIDFromString(msg.ActorID)
		if actorErr != nil {
			return ports.StatusChangeNotification{}, actorErr
		}
		n.ActorID = actor
	}

	return n, nil
}
