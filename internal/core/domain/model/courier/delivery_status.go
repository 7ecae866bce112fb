package courier

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDeliveryStatusIsNotConstructed = errs.NewValueIsRequiredError("delivery status must be created via NewDeliveryStatus")

// DeliveryStatus is the dispatch-relevant state of a delivery person:
// whether they take work right now and how much cash they can carry.
type DeliveryStatus struct {
	isAvailable  bool
	acceptsCOD   bool
	cashBalance  decimal.Decimal
	maxCashLimit decimal.Decimal
	guard        guard.ConstructorGuard
}

// NewDeliveryStatus requires a non-negative balance and limit, both rounded to cents.
// A balance above the limit is accepted; it only blocks further COD assignments.
func NewDeliveryStatus(isAvailable, acceptsCOD bool, cashBalance, maxCashLimit decimal.Decimal) (DeliveryStatus, error) {
	balance, balanceErr := kernel.NewAmount("cash balance", cashBalance)
	limit, limitErr := kernel.NewAmount("max cash limit", maxCashLimit)
	if err := errors.Join(balanceErr, limitErr); err != nil {
		return DeliveryStatus{}, err
	}

	return DeliveryStatus{
		isAvailable:  isAvailable,
		acceptsCOD:   acceptsCOD,
		cashBalance:  balance,
		maxCashLimit: limit,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrDeliveryStatusIsNotConstructed for the zero value.
func (s DeliveryStatus) Validate() error {
	return s.guard.Validate(ErrDeliveryStatusIsNotConstructed)
}

func (s DeliveryStatus) IsAvailable() bool             { return s.isAvailable }
func (s DeliveryStatus) AcceptsCOD() bool              { return s.acceptsCOD }
func (s DeliveryStatus) CashBalance() decimal.Decimal  { return s.cashBalance }
func (s DeliveryStatus) MaxCashLimit() decimal.Decimal { return s.maxCashLimit }

// HasCapacityFor reports whether collecting amount keeps the balance within the limit.
func (s DeliveryStatus) HasCapacityFor(amount decimal.Decimal) bool {
	return s.cashBalance.Add(amount).LessThanOrEqual(s.maxCashLimit)
}

func (s DeliveryStatus) withAvailability(available bool) DeliveryStatus {
	s.isAvailable = available
	return s
}

func (s DeliveryStatus) withCOD(accepts bool, limit decimal.Decimal) DeliveryStatus {
	s.acceptsCOD = accepts
	s.maxCashLimit = limit
	return s
}

func (s DeliveryStatus) withBalance(balance decimal.Decimal) DeliveryStatus {
	s.cashBalance = balance
	return s
}
