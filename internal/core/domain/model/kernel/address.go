package kernel

import (
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a postal address with optional coordinates.
// An address without coordinates has not been geocoded yet.
type Address struct {
	street string
	city   string
	point  *GeoPoint
	guard  guard.ConstructorGuard
}

// NewAddress requires a street. city may be empty. point is optional; when given it must
// be a constructed GeoPoint and is copied.
//
// Example:
//
// 	berlin, _ := kernel.NewGeoPoint(52.52, 13.405)
// 	addr, err := kernel.NewAddress("Unter den Linden 1", "Berlin", &berlin)
func NewAddress(street, city string, point *GeoPoint) (Address, error) {
	street = strings.TrimSpace(street)
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}

	if point != nil {
		if err := point.Validate(); err != nil {
			return Address{}, err
		}
		p := *point
		point = &p
	}

	return Address{
		street: street,
		city:   strings.TrimSpace(city),
		point:  point,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrAddressIsNotConstructed for a zero value.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string {
	return a.street
}

func (a Address) City() string {
	return a.city
}

// Point returns the coordinates and whether the address is geocoded.
func (a Address) Point() (GeoPoint, bool) {
	if a.point == nil {
		return GeoPoint{}, false
	}
	return *a.point, true
}

// IsGeocoded reports whether the address carries coordinates. Restaurants need a
// geocoded address before couriers can be matched to their orders.
func (a Address) IsGeocoded() bool {
	return a.point != nil
}
