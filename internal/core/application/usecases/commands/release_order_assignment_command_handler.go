package commands

import (
	"context"
	"log/slog"
)

// ReleaseOrderAssignmentCommandHandler returns a WaitingCourier order to ReadyForDelivery.
//
// Allowed actors:
//   - the assigned courier, declining the order
//   - the restaurant owner
//   - admins and the system
//
// The released order is picked up again by the StatusChanged consumer or the assignment
// sweep.
type ReleaseOrderAssignmentCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewReleaseOrderAssignmentCommandHandler needs the full UoWFactory because the owner
// check reads the restaurant.
func NewReleaseOrderAssignmentCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ReleaseOrderAssignmentCommandHandler {
	return ReleaseOrderAssignmentCommandHandler{
		uowFactory: uowFactory,
		logger:     loggerOrDefault(logger),
	}
}

// Handle is idempotent: an order without a courier is reported as released and nothing
// is written, so no status event is recorded.
func (h ReleaseOrderAssignmentCommandHandler) Handle(ctx context.Context, command ReleaseOrderAssignmentCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "release order assignment"

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.orderID)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	assigned := o.DeliveryPerson()
	isAssignedCourier := command.actor.Is(RoleDeliveryPerson) && assigned != nil && assigned.IsEqual(command.actor.ID())
	if !isAssignedCourier {
		if err = authorizeRestaurantSide(ctx, command.actor, uow.RestaurantRepository(), o); err != nil {
			return failure(ctx, h.logger, op, err), nil
		}
	}

	previous := o.Status()
	released, err := o.ReleaseDeliveryPerson(command.actor.ID())
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	result := succeeded("order has no assigned delivery person")
	if released {
		if err = orders.Update(ctx, o); err != nil {
			return failure(ctx, h.logger, op, err), nil
		}
		if err = uow.Commit(ctx); err != nil {
			return failure(ctx, h.logger, op, err), nil
		}
		result = succeeded("delivery person released")
		result.DeliveryPersonID = assigned
	}

	result.OrderID = o.ID()
	result.PreviousStatus = previous
	result.Status = o.Status()
	return result, nil
}
