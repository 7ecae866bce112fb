// Package orderrepo maps Order aggregates onto the orders and order_items tables.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Line items live in order_items.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null"`
	DeliveryPersonID *uuid.UUID      `gorm:"type:uuid;index"`
	Status           int             `gorm:"type:smallint;not null"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Address          AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	PaymentMethod    int             `gorm:"type:smallint;not null"`
	PaymentStatus    int             `gorm:"type:smallint;not null"`
	EstimatedMinutes int             `gorm:"not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	StatusChangedAt  time.Time       `gorm:"not null"`
	UpdatedAt        time.Time
	Items            []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery address embedded in the orders row.
// Latitude and longitude are NULL until the address is geocoded.
type AddressDTO struct {
	Street    string   `gorm:"type:varchar(255);not null"`
	City      string   `gorm:"type:varchar(255);not null"`
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

type OrderItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Options    []string        `gorm:"serializer:json;type:jsonb;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var deliveryPersonID *uuid.UUID
	if dp := o.DeliveryPerson(); dp != nil {
		raw := dp.Bytes()
		deliveryPersonID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		options := item.Options()
		if options == nil {
			options = []string{}
		}
		items = append(items, OrderItemDTO{
			ID:         uuid.NewSHA1(orderID, []byte{byte(i >> 8), byte(i)}),
			OrderID:    orderID,
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Options:    options,
		})
	}

	return OrderDTO{
		ID:               orderID,
		RestaurantID:     o.RestaurantID().Bytes(),
		CustomerID:       o.CustomerID().Bytes(),
		DeliveryPersonID: deliveryPersonID,
		Status:           int(o.Status()),
		Subtotal:         o.Subtotal(),
		DeliveryFee:      o.DeliveryFee(),
		Tax:              o.Tax(),
		Total:            o.Total(),
		Address:          addressFromDomain(o.DeliveryAddress()),
		PaymentMethod:    int(o.PaymentMethod()),
		PaymentStatus:    int(o.PaymentStatus()),
		EstimatedMinutes: o.EstimatedMinutes(),
		CreatedAt:        o.CreatedAt(),
		StatusChangedAt:  o.StatusChangedAt(),
		Items:            items,
	}
}

func addressFromDomain(a kernel.Address) AddressDTO {
	dto := AddressDTO{Street: a.Street(), City: a.City()}
	if p, ok := a.Point(); ok {
		lat, lng := p.Latitude(), p.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		dp, dpErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if dpErr != nil {
			return nil, dpErr
		}
		deliveryPersonID = &dp
	}

	address, err := addressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, restaurantID, customerID,
		items,
		order.Charges{DeliveryFee: dto.DeliveryFee, Tax: dto.Tax},
		address,
		order.PaymentMethod(dto.PaymentMethod),
		order.PaymentStatus(dto.PaymentStatus),
		dto.EstimatedMinutes,
		dto.CreatedAt,
		order.Status(dto.Status),
		dto.StatusChangedAt,
		deliveryPersonID,
	)
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	var point *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return kernel.Address{}, err
		}
		point = &p
	}
	return kernel.NewAddress(dto.Street, dto.City, point)
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(menuItemID, dto.Name, dto.Quantity, dto.UnitPrice, dto.Options)
}
