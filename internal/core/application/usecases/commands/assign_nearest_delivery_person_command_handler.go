package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

// CandidateFinder runs courier discovery around a restaurant. When o is not nil the
// cash-on-delivery filter is applied for it.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, restaurantID kernel.UUID, radiusKm float64, o *order.Order) ([]services.Candidate, error)
}

type AssignNearestDeliveryPersonCommandHandler struct {
	uowFactory UoWFactory
	finder     CandidateFinder
	manual     ManualAssignDeliveryPersonCommandHandler
	logger     *slog.Logger
}

func NewAssignNearestDeliveryPersonCommandHandler(
	uowFactory UoWFactory,
	finder CandidateFinder,
	manual ManualAssignDeliveryPersonCommandHandler,
	logger *slog.Logger,
) AssignNearestDeliveryPersonCommandHandler {
	return AssignNearestDeliveryPersonCommandHandler{
		uowFactory: uowFactory,
		finder:     finder,
		manual:     manual,
		logger:     loggerOrDefault(logger),
	}
}

// Handle picks the top ranked candidate and hands it to manual assignment, which
// checks it again under lock. A failed attempt leaves the order ReadyForDelivery.
func (h AssignNearestDeliveryPersonCommandHandler) Handle(
	ctx context.Context,
	command AssignNearestDeliveryPersonCommand,
) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "assign nearest delivery person"

	if !command.actor.IsStaff() && !command.actor.Is(RoleOwner) {
		return failure(ctx, h.logger, op, ErrForbidden), nil
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, command.orderID)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = authorizeRestaurantSide(ctx, command.actor, uow.RestaurantRepository(), o); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if o.Status() != order.ReadyForDelivery {
		return failed(CodeInvalidOrderStatus,
			fmt.Sprintf("order is %s, only %s orders can be assigned", o.Status(), order.ReadyForDelivery)), nil
	}

	candidates, err := h.finder.FindCandidates(ctx, o.RestaurantID(), command.radiusKm, o)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if len(candidates) == 0 {
		result := failed(CodeNoAvailableDeliveryPersons,
			fmt.Sprintf("no available delivery person within %.1f km", command.radiusKm))
		result.OrderID = o.ID()
		result.Status = o.Status()
		return result, nil
	}

	best := candidates[0]
	result := h.manual.assign(ctx, command.actor, o.ID(), best.DeliveryPerson.ID())
	if result.Success {
		result.DistanceKm = best.DistanceKm
	}
	return result, nil
}
