// Package deliverypersonrepo maps DeliveryPerson aggregates onto the delivery_persons table.
package deliverypersonrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryPersonDTO is one row of delivery_persons. The location columns are NULL
// until the courier's device reports a position.
type DeliveryPersonDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                string          `gorm:"type:varchar(255);not null"`
	Phone               string          `gorm:"type:varchar(64);not null"`
	Location            LocationDTO     `gorm:"embedded;embeddedPrefix:location_"`
	IsAvailable         bool            `gorm:"not null"`
	AcceptsCOD          bool            `gorm:"column:accepts_cod;not null"`
	CashBalance         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MaxCashLimit        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CompletedDeliveries int             `gorm:"not null"`
}

func (DeliveryPersonDTO) TableName() string {
	return "delivery_persons"
}

type LocationDTO struct {
	Latitude  *float64   `gorm:"type:double precision"`
	Longitude *float64   `gorm:"type:double precision"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func fromDomain(dp *courier.DeliveryPerson) DeliveryPersonDTO {
	dto := DeliveryPersonDTO{
		ID:                  dp.ID().Bytes(),
		Name:                dp.Name(),
		Phone:               dp.Phone(),
		IsAvailable:         dp.IsAvailable(),
		AcceptsCOD:          dp.AcceptsCOD(),
		CashBalance:         dp.CashBalance(),
		MaxCashLimit:        dp.Status().MaxCashLimit(),
		CompletedDeliveries: dp.CompletedDeliveries(),
	}

	if pos := dp.Position(); pos != nil {
		lat, lng, at := pos.Point.Latitude(), pos.Point.Longitude(), pos.UpdatedAt
		dto.Location = LocationDTO{Latitude: &lat, Longitude: &lng, UpdatedAt: &at}
	}
	return dto
}

func toDomain(dto DeliveryPersonDTO) (*courier.DeliveryPerson, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var position *courier.Position
	if dto.Location.Latitude != nil && dto.Location.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Location.Latitude, *dto.Location.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &courier.Position{Point: point}
		if dto.Location.UpdatedAt != nil {
			position.UpdatedAt = dto.Location.UpdatedAt.UTC()
		}
	}

	status, err := courier.NewDeliveryStatus(dto.IsAvailable, dto.AcceptsCOD, dto.CashBalance, dto.MaxCashLimit)
	if err != nil {
		return nil, err
	}

	return courier.RestoreDeliveryPerson(id, dto.Name, dto.Phone, position, status, dto.CompletedDeliveries)
}
