// Package kafka consumes order status events and hands them to the event handlers.
package kafka

import (
	"context"
	"errors"
	"log/slog"

	kafkaout "fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafkago.Reader the consumer uses. Offsets are committed
// explicitly, so the reader must belong to a consumer group.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type statusChangedHandler interface {
	HandlePayload(ctx context.Context, payload []byte) error
}

// OrderEventsConsumer feeds StatusChanged events from Kafka to the event handler.
// A message is committed only after it was handled, so a crash in between redelivers
// it (at-least-once). Messages that cannot be decoded are committed anyway and logged.
type OrderEventsConsumer struct {
	reader  messageReader
	handler statusChangedHandler
	logger  *slog.Logger
}

// NewReader returns a consumer-group reader for topic. CommitInterval is left at zero,
// so CommitMessages writes the offset before it returns.
func NewReader(brokers []string, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6,
	})
}

func NewOrderEventsConsumer(reader messageReader, handler statusChangedHandler, logger *slog.Logger) *OrderEventsConsumer {
	return &OrderEventsConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "order_events_consumer"),
	}
}

// Run blocks until ctx is cancelled.
func (c *OrderEventsConsumer) Run(ctx context.Context) {
	c.logger.Info("Order events consumer started")
	for ctx.Err() == nil {
		c.processMessage(ctx)
	}
	c.logger.Info("Order events consumer stopped")
}

func (c *OrderEventsConsumer) Close() error {
	return c.reader.Close()
}

func (c *OrderEventsConsumer) processMessage(ctx context.Context) {
	m, err := c.reader.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		c.logger.ErrorContext(ctx, "failed to fetch message", "error", err)
		return
	}

	if eventType(m) != order.StatusChangedEventName {
		c.logger.DebugContext(ctx, "skipping message", "event_type", eventType(m), "offset", m.Offset)
	} else if err = c.handler.HandlePayload(ctx, m.Value); err != nil {
		c.logger.ErrorContext(ctx, "failed to handle message",
			"partition", m.Partition, "offset", m.Offset, "error", err)
	}

	if err = c.reader.CommitMessages(ctx, m); err != nil {
		c.logger.WarnContext(ctx, "failed to commit message, it will be redelivered",
			"partition", m.Partition, "offset", m.Offset, "error", err)
	}
}

func eventType(m kafkago.Message) string {
	for _, h := range m.Headers {
		if h.Key == kafkaout.EventTypeHeader {
			return string(h.Value)
		}
	}
	return ""
}
