package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateDeliveryPersonLocationCommandIsNotConstructed = errors.New(
	"UpdateDeliveryPersonLocationCommand must be created via NewUpdateDeliveryPersonLocationCommand constructor",
)

// UpdateDeliveryPersonLocationCommand is the periodic report of a courier's device.
// A nil available keeps the current availability.
type UpdateDeliveryPersonLocationCommand struct {
	actor            Actor
	deliveryPersonID kernel.UUID
	point            kernel.GeoPoint
	available        *bool
	reportedAt       time.Time
	guard            guard.ConstructorGuard
}

func NewUpdateDeliveryPersonLocationCommand(
	actor Actor,
	deliveryPersonID kernel.UUID,
	latitude, longitude float64,
	available *bool,
) (UpdateDeliveryPersonLocationCommand, error) {
	point, pointErr := kernel.NewGeoPoint(latitude, longitude)
	if err := errors.Join(actor.Validate(), deliveryPersonID.Validate(), pointErr); err != nil {
		return UpdateDeliveryPersonLocationCommand{}, err
	}

	var availability *bool
	if available != nil {
		a := *available
		availability = &a
	}

	return UpdateDeliveryPersonLocationCommand{
		actor:            actor,
		deliveryPersonID: deliveryPersonID,
		point:            point,
		available:        availability,
		reportedAt:       time.Now().UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryPersonLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryPersonLocationCommandIsNotConstructed)
}
