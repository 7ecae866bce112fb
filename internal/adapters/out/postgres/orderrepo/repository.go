package orderrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository binds the repository to db, usually the unit of work's transaction.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column of the order row. Line items never change after checkout.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID", "CreatedAt", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the order with its items and locks the order row until the surrounding
// transaction ends. Handlers that also touch a delivery person lock the order first.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) CountActiveByDeliveryPerson(ctx context.Context) (map[kernel.UUID]int, error) {
	var rows []struct {
		DeliveryPersonID uuid.UUID
		Active           int
	}

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("delivery_person_id, COUNT(*) AS active").
		Where("delivery_person_id IS NOT NULL AND status IN ?", activeStatuses()).
		Group("delivery_person_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[kernel.UUID]int, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.DeliveryPersonID[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[id] = row.Active
	}
	return counts, nil
}

func (r *GormOrderRepository) CountActiveForDeliveryPerson(ctx context.Context, deliveryPersonID kernel.UUID) (int, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("delivery_person_id = ? AND status IN ?", deliveryPersonID.Bytes(), activeStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// GetReadyForDeliveryBefore returns orders that entered ReadyForDelivery before t and are
// still waiting there, longest-waiting first.
func (r *GormOrderRepository) GetReadyForDeliveryBefore(ctx context.Context, t time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("status = ? AND status_changed_at < ?", int(order.ReadyForDelivery), t.UTC()).
		Order("status_changed_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func activeStatuses() []int {
	return []int{int(order.WaitingCourier), int(order.Delivering)}
}
