package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/restaurant"
)

// CreateRestaurantCommandHandler registers restaurants for owners and admins.
type CreateRestaurantCommandHandler struct {
	uowFactory RestaurantUoWFactory
	logger     *slog.Logger
}

func NewCreateRestaurantCommandHandler(uowFactory RestaurantUoWFactory, logger *slog.Logger) CreateRestaurantCommandHandler {
	return CreateRestaurantCommandHandler{uowFactory: uowFactory, logger: loggerOrDefault(logger)}
}

// Handle stores the restaurant. Owners always register for themselves; the command
// constructor enforces that.
func (h CreateRestaurantCommandHandler) Handle(ctx context.Context, command CreateRestaurantCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "create restaurant"

	if !command.actor.Is(RoleOwner) && !command.actor.Is(RoleAdmin) {
		return failure(ctx, h.logger, op, ErrForbidden), nil
	}

	r, err := restaurant.NewRestaurant(command.restaurantID, command.ownerID, command.name, command.address)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RestaurantRepository().Add(ctx, r); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	result := succeeded("restaurant registered")
	result.RestaurantID = r.ID()
	return result, nil
}
