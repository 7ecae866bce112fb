// Package restaurantrepo persists restaurants and their geocoded addresses.
package restaurantrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantDTO struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name    string     `gorm:"type:varchar(255);not null"`
	Address AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// AddressDTO columns are all NULL for a restaurant without an address.
type AddressDTO struct {
	Street    *string  `gorm:"type:varchar(255)"`
	City      *string  `gorm:"type:varchar(255)"`
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

type GormRestaurantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRestaurantRepository(db *gorm.DB, tracker aggregateTracker) *GormRestaurantRepository {
	return &GormRestaurantRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *restaurant.Restaurant) error {
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

// Get returns an errs.ObjectNotFoundError when id is unknown.
func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func fromDomain(r *restaurant.Restaurant) RestaurantDTO {
	dto := RestaurantDTO{
		ID:      r.ID().Bytes(),
		OwnerID: r.OwnerID().Bytes(),
		Name:    r.Name(),
	}

	if a := r.Address(); a != nil {
		street, city := a.Street(), a.City()
		dto.Address.Street = &street
		dto.Address.City = &city
		if p, ok := a.Point(); ok {
			lat, lng := p.Latitude(), p.Longitude()
			dto.Address.Latitude = &lat
			dto.Address.Longitude = &lng
		}
	}
	return dto
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var address *kernel.Address
	if dto.Address.Street != nil {
		var point *kernel.GeoPoint
		if dto.Address.Latitude != nil && dto.Address.Longitude != nil {
			p, pointErr := kernel.NewGeoPoint(*dto.Address.Latitude, *dto.Address.Longitude)
			if pointErr != nil {
				return nil, pointErr
			}
			point = &p
		}

		city := ""
		if dto.Address.City != nil {
			city = *dto.Address.City
		}

		a, addrErr := kernel.NewAddress(*dto.Address.Street, city, point)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &a
	}

	return restaurant.NewRestaurant(id, ownerID, dto.Name, address)
}
