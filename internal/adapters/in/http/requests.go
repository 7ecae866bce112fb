package http

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var errCoordinatesIncomplete = errors.New("latitude and longitude must be given together")

type AddressRequest struct {
	Street    string   `json:"street" validate:"required"`
	City      string   `json:"city" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

func (r AddressRequest) toAddress() (kernel.Address, error) {
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return kernel.Address{}, errCoordinatesIncomplete
	}
	if r.Latitude == nil {
		return kernel.NewAddress(r.Street, r.City, nil)
	}
	point, err := kernel.NewGeoPoint(*r.Latitude, *r.Longitude)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(r.Street, r.City, &point)
}

type LineItemRequest struct {
	MenuItemID string          `json:"menu_item_id" validate:"required,uuid"`
	Name       string          `json:"name" validate:"required"`
	Quantity   int             `json:"quantity" validate:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Options    []string        `json:"options"`
}

type CreateOrderRequest struct {
	RestaurantID     string            `json:"restaurant_id" validate:"required,uuid"`
	Items            []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryFee      decimal.Decimal   `json:"delivery_fee"`
	Tax              decimal.Decimal   `json:"tax"`
	DeliveryAddress  AddressRequest    `json:"delivery_address"`
	PaymentMethod    string            `json:"payment_method" validate:"required"`
	EstimatedMinutes int               `json:"estimated_minutes" validate:"gte=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignRequest assigns the given courier, or the nearest one when DeliveryPersonID is empty.
type AssignRequest struct {
	DeliveryPersonID string  `json:"delivery_person_id" validate:"omitempty,uuid"`
	RadiusKm         float64 `json:"radius_km" validate:"gte=0"`
}

type CreateRestaurantRequest struct {
	OwnerID string          `json:"owner_id" validate:"omitempty,uuid"`
	Name    string          `json:"name" validate:"required"`
	Address *AddressRequest `json:"address"`
}

type CreateDeliveryPersonRequest struct {
	ID           string          `json:"id" validate:"omitempty,uuid"`
	Name         string          `json:"name" validate:"required"`
	Phone        string          `json:"phone"`
	AcceptsCOD   bool            `json:"accepts_cod"`
	MaxCashLimit decimal.Decimal `json:"max_cash_limit"`
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Available *bool    `json:"available"`
}

type SettleCashRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}
