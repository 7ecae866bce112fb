package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkaadapter "fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublish_KeysByAggregateAndSetsEventType(t *testing.T) {
	writer := &fakeWriter{}
	publisher := kafkaadapter.NewEventPublisher(writer)

	msg := ports.OutboxMessage{
		ID:          kernel.NewUUID(),
		EventName:   order.StatusChangedEventName,
		AggregateID: kernel.NewUUID(),
		Payload:     []byte(`{"new_status":"Preparing"}`),
		OccurredAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, publisher.Publish(t.Context(), msg))
	require.Len(t, writer.messages, 1)

	got := writer.messages[0]
	assert.Equal(t, msg.AggregateID.String(), string(got.Key))
	assert.Equal(t, msg.Payload, got.Value)
	assert.Equal(t, msg.OccurredAt, got.Time)
	require.NotEmpty(t, got.Headers)
	assert.Equal(t, kafkaadapter.EventTypeHeader, got.Headers[0].Key)
	assert.Equal(t, order.StatusChangedEventName, string(got.Headers[0].Value))

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestPublish_WrapsWriterError(t *testing.T) {
	brokerDown := errors.New("broker down")
	publisher := kafkaadapter.NewEventPublisher(&fakeWriter{err: brokerDown})

	err := publisher.Publish(t.Context(), ports.OutboxMessage{ID: kernel.NewUUID(), AggregateID: kernel.NewUUID()})

	require.ErrorIs(t, err, brokerDown)
}
