package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMethod is how the customer pays. Only cash on delivery affects dispatch.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodCard
	PaymentMethodWallet
	PaymentMethodCashOnDelivery
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodUnknown:        "Unknown",
	PaymentMethodCard:           "Card",
	PaymentMethodWallet:         "Wallet",
	PaymentMethodCashOnDelivery: "CashOnDelivery",
}

// ParsePaymentMethod accepts the names returned by String, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, name := range paymentMethodNames {
		if m != PaymentMethodUnknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method", fmt.Errorf("%q is not a known payment method", s))
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return paymentMethodNames[PaymentMethodUnknown]
}

func (m PaymentMethod) Validate() error {
	if m <= PaymentMethodUnknown || m > PaymentMethodCashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// PaymentStatus tracks whether the order is paid. Cash-on-delivery orders become Paid on
// delivery.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusPaid
	PaymentStatusRefunded
	PaymentStatusFailed
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentStatusUnknown:  "Unknown",
	PaymentStatusPending:  "Pending",
	PaymentStatusPaid:     "Paid",
	PaymentStatusRefunded: "Refunded",
	PaymentStatusFailed:   "Failed",
}

func (s PaymentStatus) String() string {
	if name, ok := paymentStatusNames[s]; ok {
		return name
	}
	return paymentStatusNames[PaymentStatusUnknown]
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentStatusUnknown || s > PaymentStatusFailed {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
