package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed domain events to the broker. Messages are
// published in the order they occurred and the batch stops at the first failure, so a
// later status change is never published before an earlier one. Delivery is at least once.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     loggerOrDefault(logger),
	}
}

// Handle returns the number of messages published. Messages published before a failure
// are still marked.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.GetUnpublished(ctx, command.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", msg.EventName, msg.ID, publishErr)
			break
		}
		if err = outbox.MarkPublished(ctx, msg.ID, time.Now().UTC()); err != nil {
			return 0, err
		}
		published++
	}

	if published > 0 {
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
		h.logger.DebugContext(ctx, "outbox relayed", "published", published)
	}

	return published, publishErr
}
