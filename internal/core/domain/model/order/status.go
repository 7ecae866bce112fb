package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown is the zero value and is never persisted.
	Unknown Status = iota

	// Pending: order placed, restaurant has not started.
	Pending

	// Preparing: the kitchen is working on the order.
	Preparing

	// ReadyForDelivery: food is ready and waits for a delivery person.
	ReadyForDelivery

	// WaitingCourier: a delivery person is assigned and on the way to the restaurant.
	WaitingCourier

	// Delivering: the delivery person picked the order up.
	Delivering

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:          "Unknown",
	Pending:          "Pending",
	Preparing:        "Preparing",
	ReadyForDelivery: "ReadyForDelivery",
	WaitingCourier:   "WaitingCourier",
	Delivering:       "Delivering",
	Delivered:        "Delivered",
	Cancelled:        "Cancelled",
}

// ParseStatus accepts the names returned by String, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports Delivered and Cancelled. No action leaves a terminal status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActiveDelivery reports whether an order in this status counts toward a delivery person's load.
func (s Status) IsActiveDelivery() bool {
	return s == WaitingCourier || s == Delivering
}

// RequiresDeliveryPerson reports whether an order in this status must reference a delivery person.
func (s Status) RequiresDeliveryPerson() bool {
	return s == WaitingCourier || s == Delivering || s == Delivered
}

// ValidateDeliveryPerson checks the courier invariant for a restored order.
func (s Status) ValidateDeliveryPerson(assigned bool) error {
	if assigned && !s.RequiresDeliveryPerson() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot have a delivery person", s),
		)
	}
	if !assigned && s.RequiresDeliveryPerson() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must have a delivery person", s),
		)
	}
	return nil
}
