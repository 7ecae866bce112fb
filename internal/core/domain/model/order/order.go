package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNotAssignedDeliveryPerson is returned when a courier acts on an order assigned to someone else.
	ErrNotAssignedDeliveryPerson = errors.New("delivery person is not assigned to the order")
)

// Charges are the amounts added on top of the line items.
type Charges struct {
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
}

// Order is the aggregate root of a customer purchase.
//
// Invariants:
//   - id, restaurant and customer references are valid
//   - at least one line item; total = subtotal + delivery fee + tax
//   - status only changes through the transition table (see Status.Apply)
//   - a delivery person is referenced iff status is WaitingCourier, Delivering or Delivered
//
// Every status change records a StatusChanged event that the unit of work persists
// together with the order.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	customerID   kernel.UUID

	items       []LineItem
	subtotal    decimal.Decimal
	deliveryFee decimal.Decimal
	tax         decimal.Decimal
	total       decimal.Decimal

	deliveryAddress  kernel.Address
	paymentMethod    PaymentMethod
	paymentStatus    PaymentStatus
	createdAt        time.Time
	estimatedMinutes int

	status           Status
	statusChangedAt  time.Time
	deliveryPersonID *kernel.UUID

	domainEvents  []StatusChanged
	isConstructed bool
}

// NewOrder places an order at checkout. The order starts in Pending with payment pending
// and no courier.
//
// Parameters:
//   - id, restaurantID, customerID: valid identifiers
//   - items: at least one line item; the subtotal is their sum
//   - charges: non-negative delivery fee and tax
//   - deliveryAddress: where the order goes, with or without coordinates
//   - paymentMethod: any known method; cash on delivery makes the total collectable
//   - estimatedMinutes: delivery estimate, zero or more
//   - createdAt: checkout time, stored in UTC
//
// All violations are returned together (errors.Join), so a client sees every bad field
// at once.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), restaurantID, customerID,
//	    items, order.Charges{DeliveryFee: fee, Tax: tax}, address,
//	    order.PaymentMethodCard, 30, time.Now())
func NewOrder(
	id, restaurantID, customerID kernel.UUID,
	items []LineItem,
	charges Charges,
	deliveryAddress kernel.Address,
	paymentMethod PaymentMethod,
	estimatedMinutes int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		statusChangedAt: createdAt.UTC(),
		paymentStatus:   PaymentStatusPending,
		createdAt:       createdAt.UTC(),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setIdentity(id, restaurantID, customerID),
		o.setItems(items),
		o.setCharges(charges),
		o.setDeliveryAddress(deliveryAddress),
		o.setPaymentMethod(paymentMethod),
		o.setEstimatedMinutes(estimatedMinutes),
	); err != nil {
		return nil, err
	}

	o.total = o.subtotal.Add(o.deliveryFee).Add(o.tax)
	return o, nil
}

// RestoreOrder rebuilds an order from storage without raising events.
// A zero statusChangedAt falls back to createdAt.
func RestoreOrder(
	id, restaurantID, customerID kernel.UUID,
	items []LineItem,
	charges Charges,
	deliveryAddress kernel.Address,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	estimatedMinutes int,
	createdAt time.Time,
	status Status,
	statusChangedAt time.Time,
	deliveryPersonID *kernel.UUID,
) (*Order, error) {
	o, err := NewOrder(id, restaurantID, customerID, items, charges, deliveryAddress,
		paymentMethod, estimatedMinutes, createdAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		status.Validate(),
		paymentStatus.Validate(),
		status.ValidateDeliveryPerson(deliveryPersonID != nil),
	); err != nil {
		return nil, err
	}
	if deliveryPersonID != nil {
		if err = deliveryPersonID.Validate(); err != nil {
			return nil, err
		}
		dp := *deliveryPersonID
		o.deliveryPersonID = &dp
	}

	o.status = status
	o.paymentStatus = paymentStatus
	if !statusChangedAt.IsZero() {
		o.statusChangedAt = statusChangedAt.UTC()
	}
	return o, nil
}

// Validate reports ErrOrderIsNotConstructed for a nil order or one built as a struct
// literal instead of through NewOrder or RestoreOrder. Repositories call it before writing.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by id only.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// RestaurantID returns the restaurant that prepares the order. Its owner is the only
// owner allowed to change the order.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Subtotal is the sum of the line item totals.
func (o *Order) Subtotal() decimal.Decimal { return o.subtotal }

func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }
func (o *Order) Tax() decimal.Decimal         { return o.tax }

// Total is subtotal + delivery fee + tax. For cash-on-delivery orders this is the cash
// the courier collects and the amount checked against the courier's cash limit.
func (o *Order) Total() decimal.Decimal { return o.total }

// DeliveryAddress returns where the order goes. It may lack coordinates.
func (o *Order) DeliveryAddress() kernel.Address { return o.deliveryAddress }

func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// CreatedAt is the checkout time in UTC.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// EstimatedMinutes is the delivery estimate given at checkout.
func (o *Order) EstimatedMinutes() int { return o.estimatedMinutes }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// StatusChangedAt is when the order entered its current status. The assignment sweep
// measures how long an order has waited for a courier from this moment.
func (o *Order) StatusChangedAt() time.Time { return o.statusChangedAt }

// Items returns a copy of the line items in checkout order.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// DeliveryPerson returns the assigned courier or nil. The returned pointer is a copy.
func (o *Order) DeliveryPerson() *kernel.UUID {
	if o.deliveryPersonID == nil {
		return nil
	}
	id := *o.deliveryPersonID
	return &id
}

// IsCashOnDelivery reports whether the courier collects the total at the door.
func (o *Order) IsCashOnDelivery() bool {
	return o.paymentMethod == PaymentMethodCashOnDelivery
}

// ApplyOwnerStatus performs the owner's status update. Setting the current status again
// is accepted and records nothing; changed reports whether the status moved.
func (o *Order) ApplyOwnerStatus(target Status, actorID kernel.UUID) (bool, error) {
	action, err := OwnerActionFor(target)
	if err != nil {
		return false, err
	}
	return o.apply(action, actorID)
}

// CancelByCustomer cancels on behalf of the customer. Only Pending and Preparing orders
// can be cancelled this way; later statuses return a *TransitionError.
func (o *Order) CancelByCustomer(actorID kernel.UUID) error {
	_, err := o.apply(ActionCustomerCancel, actorID)
	return err
}

// CancelByOwner cancels on behalf of the restaurant owner. A courier assigned to a
// WaitingCourier order is released; Delivering orders can no longer be cancelled.
func (o *Order) CancelByOwner(actorID kernel.UUID) error {
	_, err := o.apply(ActionOwnerCancel, actorID)
	return err
}

// AssignDeliveryPerson moves a ReadyForDelivery order to WaitingCourier.
func (o *Order) AssignDeliveryPerson(deliveryPersonID, actorID kernel.UUID) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	next, err := o.status.Apply(ActionAssignDeliveryPerson)
	if err != nil {
		return err
	}

	o.deliveryPersonID = &deliveryPersonID
	o.changeStatus(next, actorID)
	return nil
}

// ReleaseDeliveryPerson returns the order to ReadyForDelivery. An order without a courier
// is left untouched and released is false.
func (o *Order) ReleaseDeliveryPerson(actorID kernel.UUID) (bool, error) {
	if o.deliveryPersonID == nil {
		return false, nil
	}
	if _, err := o.apply(ActionReleaseDeliveryPerson, actorID); err != nil {
		return false, err
	}
	return true, nil
}

// PickUp moves a WaitingCourier order to Delivering.
//
// Errors:
//   - ErrNotAssignedDeliveryPerson when deliveryPersonID is not the assigned courier
//   - *TransitionError when the order is not WaitingCourier
func (o *Order) PickUp(deliveryPersonID kernel.UUID) error {
	if err := o.checkAssigned(deliveryPersonID); err != nil {
		return err
	}
	_, err := o.apply(ActionPickUp, deliveryPersonID)
	return err
}

// Deliver completes the order. Cash-on-delivery orders become paid.
func (o *Order) Deliver(deliveryPersonID kernel.UUID) error {
	if err := o.checkAssigned(deliveryPersonID); err != nil {
		return err
	}
	if _, err := o.apply(ActionDeliver, deliveryPersonID); err != nil {
		return err
	}
	if o.IsCashOnDelivery() {
		o.paymentStatus = PaymentStatusPaid
	}
	return nil
}

// DomainEvents returns the StatusChanged events recorded since the last commit, oldest first.
func (o *Order) DomainEvents() []StatusChanged {
	return append([]StatusChanged(nil), o.domainEvents...)
}

// ClearDomainEvents is called by the unit of work once the events are stored in the outbox.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) apply(action Action, actorID kernel.UUID) (bool, error) {
	next, err := o.status.Apply(action)
	if err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}
	o.changeStatus(next, actorID)
	return true, nil
}

func (o *Order) changeStatus(next Status, actorID kernel.UUID) {
	event := StatusChanged{
		EventID:          kernel.NewUUID(),
		OrderID:          o.id,
		RestaurantID:     o.restaurantID,
		CustomerID:       o.customerID,
		DeliveryPersonID: o.DeliveryPerson(),
		Previous:         o.status,
		Current:          next,
		ActorID:          actorID,
		OccurredAt:       time.Now().UTC(),
	}

	o.status = next
	o.statusChangedAt = event.OccurredAt
	if !next.RequiresDeliveryPerson() {
		o.deliveryPersonID = nil
	}
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) checkAssigned(deliveryPersonID kernel.UUID) error {
	if o.deliveryPersonID == nil || !o.deliveryPersonID.IsEqual(deliveryPersonID) {
		return ErrNotAssignedDeliveryPerson
	}
	return nil
}

func (o *Order) setIdentity(id, restaurantID, customerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), restaurantID.Validate(), customerID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.restaurantID = restaurantID
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		subtotal = subtotal.Add(item.Total())
	}

	o.items = append([]LineItem(nil), items...)
	o.subtotal = subtotal
	return nil
}

func (o *Order) setCharges(charges Charges) error {
	fee, feeErr := kernel.NewAmount("delivery fee", charges.DeliveryFee)
	tax, taxErr := kernel.NewAmount("tax", charges.Tax)
	if err := errors.Join(feeErr, taxErr); err != nil {
		return err
	}
	o.deliveryFee = fee
	o.tax = tax
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setEstimatedMinutes(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated delivery minutes", fmt.Errorf("%d is negative", minutes))
	}
	o.estimatedMinutes = minutes
	return nil
}
