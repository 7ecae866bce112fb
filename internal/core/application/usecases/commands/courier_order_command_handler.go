package commands

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// PickUpOrderCommandHandler moves an order the courier holds from WaitingCourier to Delivering.
type PickUpOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewPickUpOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{uowFactory: uowFactory, logger: loggerOrDefault(logger)}
}

func (h PickUpOrderCommandHandler) Handle(ctx context.Context, command PickUpOrderCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "pick up order"

	if !command.courier.Is(RoleDeliveryPerson) {
		return failure(ctx, h.logger, op, ErrForbidden), nil
	}

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

	previous := o.Status()
	if err = o.PickUp(command.courier.ID()); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = orders.Update(ctx, o); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	result := succeeded("order picked up")
	result.OrderID = o.ID()
	result.DeliveryPersonID = o.DeliveryPerson()
	result.PreviousStatus = previous
	result.Status = o.Status()
	return result, nil
}

// DeliverOrderCommandHandler completes an order. In one transaction it marks the order
// Delivered, settles cash-on-delivery payment and credits the collected total to the
// courier's cash balance.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewDeliverOrderCommandHandler creates the handler. A nil logger falls back to slog.Default.
func NewDeliverOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{uowFactory: uowFactory, logger: loggerOrDefault(logger)}
}

// Handle completes the order and, in the same transaction, credits the courier with the
// delivery and with the cash collected for a cash-on-delivery order.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, command DeliverOrderCommand) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}
	const op = "deliver order"

	if !command.courier.Is(RoleDeliveryPerson) {
		return failure(ctx, h.logger, op, ErrForbidden), nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	people := uow.DeliveryPersonRepository()

	o, err := orders.Get(ctx, command.orderID)
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	previous := o.Status()
	if err = o.Deliver(command.courier.ID()); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	dp, err := people.Get(ctx, command.courier.ID())
	if err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	cash := decimal.Zero
	if o.IsCashOnDelivery() {
		cash = o.Total()
	}
	if err = dp.RecordDelivery(cash); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	if err = orders.Update(ctx, o); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = people.Update(ctx, dp); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}
	if err = uow.Commit(ctx); err != nil {
		return failure(ctx, h.logger, op, err), nil
	}

	balance := dp.CashBalance()
	deliveredBy := dp.ID()
	result := succeeded("order delivered")
	result.OrderID = o.ID()
	result.DeliveryPersonID = &deliveredBy
	result.PreviousStatus = previous
	result.Status = o.Status()
	result.CashBalance = &balance
	return result, nil
}
