package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ManualAssignDeliveryPersonCommandHandler re-validates everything discovery checked,
// because the candidate list may be stale by the time an assignment is made.
// The order and the courier are locked for the duration of the check-and-update,
// so two instances cannot assign the same order or the last free slot of a courier
// at the same time.
type ManualAssignDeliveryPersonCommandHandler struct {
	uowFactory  UoWFactory
	cashChecker ports.CashBalanceChecker
	locker      ports.AssignmentLocker
	dispatcher  services.OrderDispatcher
	logger      *slog.Logger
}

func NewManualAssignDeliveryPersonCommandHandler(
	uowFactory UoWFactory,
	cashChecker ports.CashBalanceChecker,
	locker ports.AssignmentLocker,
	logger *slog.Logger,
) ManualAssignDeliveryPersonCommandHandler {
	return ManualAssignDeliveryPersonCommandHandler{
		uowFactory:  uowFactory,
		cashChecker: cashChecker,
		locker:      locker,
		dispatcher:  services.NewOrderDispatcher(),
		logger:      loggerOrDefault(logger),
	}
}

func (h ManualAssignDeliveryPersonCommandHandler) Handle(
	ctx context.Context,
	command ManualAssignDeliveryPersonCommand,
) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	return h.assign(ctx, command.actor, command.orderID, command.deliveryPersonID), nil
}

func (h ManualAssignDeliveryPersonCommandHandler) assign(
	ctx context.Context,
	actor Actor,
	orderID, deliveryPersonID kernel.UUID,
) Result {
	const op = "assign delivery person"

	if !actor.IsStaff() && !actor.Is(RoleOwner) {
		return failure(ctx, h.logger, op, ErrForbidden)
	}

	unlockOrder, result, ok := h.lock(ctx, "order:"+orderID.String())
	if !ok {
		return result
	}
	defer unlockOrder()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, orderID)
	if err != nil {
		return failure(ctx, h.logger, op, err)
	}
	if err = authorizeRestaurantSide(ctx, actor, uow.RestaurantRepository(), o); err != nil {
		return failure(ctx, h.logger, op, err)
	}
	if !o.Status().Can(order.ActionAssignDeliveryPerson) {
		return failed(CodeInvalidOrderStatus,
			fmt.Sprintf("order is %s, only %s orders can be assigned", o.Status(), order.ReadyForDelivery))
	}

	dp, err := uow.DeliveryPersonRepository().Get(ctx, deliveryPersonID)
	if err != nil {
		return failure(ctx, h.logger, op, err)
	}

	unlockCourier, result, ok := h.lock(ctx, "delivery-person:"+deliveryPersonID.String())
	if !ok {
		return result
	}
	defer unlockCourier()

	active, err := orders.CountActiveForDeliveryPerson(ctx, deliveryPersonID)
	if err != nil {
		return failure(ctx, h.logger, op, err)
	}

	workload := services.Workload{ActiveOrders: active}
	if o.IsCashOnDelivery() && dp.AcceptsCOD() {
		workload.HasCashCapacity, err = h.cashChecker.HasSufficientCashBalance(ctx, deliveryPersonID, o.Total())
		if err != nil {
			return failure(ctx, h.logger, op, err)
		}
	}

	previous := o.Status()
	if err = h.dispatcher.Dispatch(o, dp, workload, actor.ID()); err != nil {
		return failure(ctx, h.logger, op, err)
	}

	if err = orders.Update(ctx, o); err != nil {
		return failure(ctx, h.logger, op, err)
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err)
	}

	assigned := dp.ID()
	result = succeeded("delivery person assigned")
	result.OrderID = o.ID()
	result.DeliveryPersonID = &assigned
	result.PreviousStatus = previous
	result.Status = o.Status()
	return result
}

// lock returns ok=false together with the Result to report when the key is held or the
// locker fails.
func (h ManualAssignDeliveryPersonCommandHandler) lock(ctx context.Context, key string) (func(), Result, bool) {
	unlock, acquired, err := h.locker.TryLock(ctx, key)
	if err != nil {
		return nil, failure(ctx, h.logger, "assign delivery person", err), false
	}
	if !acquired {
		return nil, failed(CodeAssignmentInProgress, "another assignment for "+key+" is in progress"), false
	}

	return func() {
		if unlockErr := unlock(context.WithoutCancel(ctx)); unlockErr != nil {
			h.logger.WarnContext(ctx, "failed to release assignment lock", "key", key, "error", unlockErr)
		}
	}, Result{}, true
}
