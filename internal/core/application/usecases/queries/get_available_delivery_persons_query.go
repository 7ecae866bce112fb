// Package queries contains the read side: courier discovery around a restaurant and
// the order views served to customers, owners and couriers.
package queries

import (
	"errors"
	"math"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAvailableDeliveryPersonsQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveryPersonsQuery must be created via NewGetAvailableDeliveryPersonsQuery constructor",
)

// GetAvailableDeliveryPersonsQuery lists the couriers an owner could assign to an order
// from the restaurant, best candidate first.
type GetAvailableDeliveryPersonsQuery struct {
	restaurantID kernel.UUID
	radiusKm     float64
	guard        guard.ConstructorGuard
}

// NewGetAvailableDeliveryPersonsQuery uses services.DefaultSearchRadiusKm when radiusKm is 0.
func NewGetAvailableDeliveryPersonsQuery(restaurantID kernel.UUID, radiusKm float64) (GetAvailableDeliveryPersonsQuery, error) {
	if radiusKm == 0 {
		radiusKm = services.DefaultSearchRadiusKm
	}

	var radiusErr error
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		radiusErr = errs.NewValueIsOutOfRangeError("radius", radiusKm, 0, "+inf")
	}
	if err := errors.Join(restaurantID.Validate(), radiusErr); err != nil {
		return GetAvailableDeliveryPersonsQuery{}, err
	}

	return GetAvailableDeliveryPersonsQuery{
		restaurantID: restaurantID,
		radiusKm:     radiusKm,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableDeliveryPersonsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveryPersonsQueryIsNotConstructed)
}

// AvailableDeliveryPersonResponse is one candidate courier. Results keep the selector's ranking.
type AvailableDeliveryPersonResponse struct {
	ID                  kernel.UUID
	Name                string
	Phone               string
	Latitude            float64
	Longitude           float64
	LocationUpdatedAt   time.Time
	DistanceKm          float64
	Rating              float64
	ActiveOrders        int
	CompletedDeliveries int
	AcceptsCOD          bool
	CashBalance         decimal.Decimal
	MaxCashLimit        decimal.Decimal
}
