// Package outboxrepo stores domain events next to the aggregates that raised them
// so the relay can publish them after the transaction commits.
package outboxrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxEventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventName   string     `gorm:"type:varchar(128);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts messages in the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OutboxEventDTO, 0, len(messages))
	for _, msg := range messages {
		dtos = append(dtos, OutboxEventDTO{
			ID:          msg.ID.Bytes(),
			EventName:   msg.EventName,
			AggregateID: msg.AggregateID.Bytes(),
			Payload:     msg.Payload,
			OccurredAt:  msg.OccurredAt.UTC(),
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxEventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(dto.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:          id,
			EventName:   dto.EventName,
			AggregateID: aggregateID,
			Payload:     dto.Payload,
			OccurredAt:  dto.OccurredAt,
		})
	}
	return messages, nil
}

// MarkPublished sets published_at, or returns an errs.ObjectNotFoundError when no
// message has id.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Where("id = ?", id.Bytes()).
		Update("published_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", id.String())
	}
	return nil
}
