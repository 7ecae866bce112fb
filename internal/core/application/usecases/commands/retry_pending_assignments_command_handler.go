package commands

import (
	"context"
	"log/slog"
	"time"
)

// RetryPendingAssignmentsCommandHandler is the safety net behind event-driven assignment.
// It runs nearest assignment for orders that have waited in ReadyForDelivery longer than
// the command's minimum age. Failures are logged per order and never stop the batch.
type RetryPendingAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	assigner   AssignNearestDeliveryPersonCommandHandler
	logger     *slog.Logger
}

func NewRetryPendingAssignmentsCommandHandler(
	uowFactory UoWFactory,
	assigner AssignNearestDeliveryPersonCommandHandler,
	logger *slog.Logger,
) RetryPendingAssignmentsCommandHandler {
	return RetryPendingAssignmentsCommandHandler{
		uowFactory: uowFactory,
		assigner:   assigner,
		logger:     loggerOrDefault(logger),
	}
}

// Handle runs nearest assignment as the system for every stale order and returns how many
// got a courier. A failed attempt for one order does not stop the sweep.
func (h RetryPendingAssignmentsCommandHandler) Handle(ctx context.Context, command RetryPendingAssignmentsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	before := time.Now().UTC().Add(-command.minAge)
	pending, err := h.uowFactory.Create().OrderRepository().GetReadyForDeliveryBefore(ctx, before, command.batchSize)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, o := range pending {
		if ctx.Err() != nil {
			return assigned, ctx.Err()
		}

		assign, err := NewAssignNearestDeliveryPersonCommand(SystemActor(), o.ID(), command.radiusKm)
		if err != nil {
			return assigned, err
		}

		result, err := h.assigner.Handle(ctx, assign)
		if err != nil {
			return assigned, err
		}
		if !result.Success {
			h.logger.DebugContext(ctx, "order still waiting for a delivery person",
				"order_id", o.ID().String(), "code", string(result.ErrorCode))
			continue
		}
		assigned++
	}

	return assigned, nil
}
