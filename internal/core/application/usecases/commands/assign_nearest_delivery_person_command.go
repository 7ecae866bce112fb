package commands

import (
	"errors"
	"math"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignNearestDeliveryPersonCommandIsNotConstructed = errors.New(
	"AssignNearestDeliveryPersonCommand must be created via NewAssignNearestDeliveryPersonCommand constructor",
)

// AssignNearestDeliveryPersonCommand assigns the best ranked courier within radiusKm
// of the order's restaurant.
type AssignNearestDeliveryPersonCommand struct {
	actor    Actor
	orderID  kernel.UUID
	radiusKm float64
	guard    guard.ConstructorGuard
}

// NewAssignNearestDeliveryPersonCommand uses services.DefaultSearchRadiusKm when radiusKm is 0.
func NewAssignNearestDeliveryPersonCommand(
	actor Actor,
	orderID kernel.UUID,
	radiusKm float64,
) (AssignNearestDeliveryPersonCommand, error) {
	if radiusKm == 0 {
		radiusKm = services.DefaultSearchRadiusKm
	}

	var radiusErr error
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		radiusErr = errs.NewValueIsOutOfRangeError("radius", radiusKm, 0, "+inf")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), radiusErr); err != nil {
		return AssignNearestDeliveryPersonCommand{}, err
	}

	return AssignNearestDeliveryPersonCommand{
		actor:    actor,
		orderID:  orderID,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignNearestDeliveryPersonCommand) RadiusKm() float64 { return c.radiusKm }

func (c AssignNearestDeliveryPersonCommand) Validate() error {
	return c.guard.Validate(ErrAssignNearestDeliveryPersonCommandIsNotConstructed)
}
