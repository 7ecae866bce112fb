package services

import (
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

var (
	ErrDeliveryPersonNotAvailable = errors.New("delivery person is not available")
	ErrMaxActiveOrdersReached     = errors.New("delivery person already holds the maximum number of active orders")
	ErrCODNotAccepted             = errors.New("delivery person does not accept cash on delivery")
	ErrInsufficientCashCapacity   = errors.New("delivery person cannot carry more cash")
)

// Workload is what the dispatcher needs to know about a courier beyond the aggregate itself.
type Workload struct {
	ActiveOrders int

	// HasCashCapacity is the result of the balance check for the order total.
	// Ignored for orders that are not cash on delivery.
	HasCashCapacity bool
}

// OrderDispatcher re-checks a courier against an order and performs the assignment.
type OrderDispatcher struct{}

// NewOrderDispatcher returns the stateless dispatcher. The zero value works as well.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch assigns dp to o when the order is ReadyForDelivery and the courier is
// available, below MaxActiveOrders and, for cash orders, able to carry the cash.
// Nothing is modified when an error is returned.
func (d OrderDispatcher) Dispatch(
	o *order.Order,
	dp *courier.DeliveryPerson,
	workload Workload,
	actorID kernel.UUID,
) error {
	if err := errors.Join(o.Validate(), dp.Validate()); err != nil {
		return err
	}

	if err := d.CheckEligibility(o, dp, workload); err != nil {
		return err
	}

	return o.AssignDeliveryPerson(dp.ID(), actorID)
}

// CheckEligibility runs the same checks as Dispatch without assigning.
func (d OrderDispatcher) CheckEligibility(o *order.Order, dp *courier.DeliveryPerson, workload Workload) error {
	if _, err := o.Status().Apply(order.ActionAssignDeliveryPerson); err != nil {
		return err
	}

	switch {
	case !dp.IsAvailable():
		return ErrDeliveryPersonNotAvailable
	case workload.ActiveOrders >= MaxActiveOrders:
		return ErrMaxActiveOrdersReached
	case o.IsCashOnDelivery() && !dp.AcceptsCOD():
		return ErrCODNotAccepted
	case o.IsCashOnDelivery() && !workload.HasCashCapacity:
		return ErrInsufficientCashCapacity
	}

	return nil
}
