package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored in the same transaction as the aggregate that raised it.
type OutboxMessage struct {
	ID          kernel.UUID
	EventName   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads the outbox for the relay. Messages are written by the unit of work on Commit.
type OutboxRepository interface {
	// GetUnpublished returns up to limit messages in the order they occurred.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished flags the message so it is not relayed again.
	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error
}
