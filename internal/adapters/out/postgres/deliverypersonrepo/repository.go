package deliverypersonrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryPersonRepository implements ports.DeliveryPersonRepository using GORM.
type GormDeliveryPersonRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryPersonRepository binds the repository to db, usually the unit of work's transaction.
func NewGormDeliveryPersonRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryPersonRepository {
	return &GormDeliveryPersonRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDeliveryPersonRepository) Add(ctx context.Context, aggregate *courier.DeliveryPerson) error {
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

// Update overwrites the row, including location columns that became NULL.
func (r *GormDeliveryPersonRepository) Update(ctx context.Context, aggregate *courier.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryPersonDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery person", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the delivery person and locks the row (SELECT ... FOR UPDATE) until the
// surrounding transaction ends. Update writes the whole row back, so a second Get on the
// same courier waits for the first unit of work to commit.
func (r *GormDeliveryPersonRepository) Get(ctx context.Context, id kernel.UUID) (*courier.DeliveryPerson, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPersonDTO
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery person", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryPersonRepository) GetAll(ctx context.Context) ([]*courier.DeliveryPerson, error) {
	var dtos []DeliveryPersonDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	people := make([]*courier.DeliveryPerson, 0, len(dtos))
	for _, dto := range dtos {
		dp, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		people = append(people, dp)
	}
	return people, nil
}
