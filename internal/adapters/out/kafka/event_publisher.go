// Package kafka relays outbox messages to the order events topic.
package kafka

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

const EventTypeHeader = "event_type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// EventPublisher keys every message by aggregate id so events of one order stay
// in one partition and keep their order.
type EventPublisher struct {
	writer messageWriter
}

// NewWriter returns a synchronous writer that waits for all in-sync replicas.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewEventPublisher wraps writer.
func NewEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes msg with its event name and id as headers.
// The relay marks the outbox row published only after Publish returns nil.
func (p *EventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(msg.AggregateID.String()),
		Value: msg.Payload,
		Time:  msg.OccurredAt,
		Headers: []kafkago.Header{
			{Key: EventTypeHeader, Value: []byte(msg.EventName)},
			{Key: "event_id", Value: []byte(msg.ID.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s %s: %w", msg.EventName, msg.ID, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
