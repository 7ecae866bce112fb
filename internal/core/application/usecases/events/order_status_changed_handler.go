// Package events reacts to order status changes after they are committed.
package events

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

type nearestAssigner interface {
	Handle(ctx context.Context, command commands.AssignNearestDeliveryPersonCommand) (commands.Result, error)
}

// OrderStatusChangedHandler runs the side effects of a status change: it notifies the
// stakeholders and, when an order becomes ReadyForDelivery, tries to assign the nearest
// courier. Both are best effort. A failure is logged and never undoes the status change;
// orders that stay unassigned are picked up again by the assignment sweep.
type OrderStatusChangedHandler struct {
	notifier ports.NotificationDispatcher
	assigner nearestAssigner
	logger   *slog.Logger
}

// NewOrderStatusChangedHandler wires the notifier and the nearest-courier assigner. The
// assigner runs as SystemActor.
func NewOrderStatusChangedHandler(
	notifier ports.NotificationDispatcher,
	assigner nearestAssigner,
	logger *slog.Logger,
) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{
		notifier: notifier,
		assigner: assigner,
		logger:   logger.With("component", "order_status_changed_handler"),
	}
}

// HandlePayload decodes a broker message and handles it. Only a malformed payload is
// reported as an error.
func (h *OrderStatusChangedHandler) HandlePayload(ctx context.Context, payload []byte) error {
	change, err := DecodeStatusChanged(payload)
	if err != nil {
		return err
	}
	h.Handle(ctx, change)
	return nil
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, change ports.StatusChangeNotification) {
	log := h.logger.With(
		"order_id", change.OrderID.String(),
		"previous_status", change.PreviousStatus.String(),
		"new_status", change.NewStatus.String(),
	)

	if err := h.notifier.NotifyOrderStatusChange(ctx, change); err != nil {
		log.WarnContext(ctx, "failed to notify order status change", "error", err)
	}

	if change.NewStatus != order.ReadyForDelivery {
		return
	}

	cmd, err := commands.NewAssignNearestDeliveryPersonCommand(commands.SystemActor(), change.OrderID, 0)
	if err != nil {
		log.ErrorContext(ctx, "failed to build auto assignment", "error", err)
		return
	}

	result, err := h.assigner.Handle(ctx, cmd)
	switch {
	case err != nil:
		log.ErrorContext(ctx, "auto assignment failed", "error", err)
	case !result.Success:
		log.InfoContext(ctx, "order left for the assignment sweep",
			"code", string(result.ErrorCode), "reason", result.Message)
	default:
		log.InfoContext(ctx, "delivery person auto-assigned",
			"delivery_person_id", result.DeliveryPersonID.String(), "distance_km", result.DistanceKm)
	}
}
