// Package restaurant models the pickup side of a delivery.
package restaurant

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrNameIsRequired             = errs.NewValueIsRequiredError("restaurant name")
	ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

	// ErrAddressMissing is returned when a courier search needs a restaurant without a geocoded address.
	ErrAddressMissing = errors.New("restaurant has no geocoded address")
)

// Restaurant owns orders. Its geocoded address is the origin of the courier search.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string
	address *kernel.Address
	guard   guard.ConstructorGuard
}

// NewRestaurant registers a restaurant for ownerID. address is optional and copied;
// without coordinates no courier can be matched to the restaurant's orders.
func NewRestaurant(id, ownerID kernel.UUID, name string, address *kernel.Address) (*Restaurant, error) {
	r := &Restaurant{guard: guard.NewConstructorGuard()}

	var nameErr, addressErr error
	if name = strings.TrimSpace(name); name == "" {
		nameErr = ErrNameIsRequired
	}
	if address != nil {
		addressErr = address.Validate()
	}

	if err := errors.Join(id.Validate(), ownerID.Validate(), nameErr, addressErr); err != nil {
		return nil, err
	}

	r.id = id
	r.ownerID = ownerID
	r.name = name
	if address != nil {
		a := *address
		r.address = &a
	}
	return r, nil
}

// Validate returns ErrRestaurantIsNotConstructed for nil or zero-value instances.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.UUID      { return r.id }
func (r *Restaurant) OwnerID() kernel.UUID { return r.ownerID }
func (r *Restaurant) Name() string         { return r.name }

// Address returns a copy of the address or nil.
func (r *Restaurant) Address() *kernel.Address {
	if r.address == nil {
		return nil
	}
	a := *r.address
	return &a
}

// IsOwnedBy reports whether userID is the restaurant's owner. Owner-only operations on
// orders check this against the order's restaurant.
func (r *Restaurant) IsOwnedBy(userID kernel.UUID) bool {
	return r.ownerID.IsEqual(userID)
}

// Location returns the geocoded origin of the restaurant; ok is false when it is unknown.
func (r *Restaurant) Location() (kernel.GeoPoint, bool) {
	if r.address == nil {
		return kernel.GeoPoint{}, false
	}
	return r.address.Point()
}
