package kernel

import (
	"github.com/shopspring/decimal"

	"fooddelivery/internal/pkg/errs"
)

// MoneyScale is the number of fraction digits kept for currency amounts.
const MoneyScale = 2

// NewAmount validates a non-negative currency amount and rounds it to MoneyScale.
func NewAmount(paramName string, value decimal.Decimal) (decimal.Decimal, error) {
	if value.IsNegative() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError(paramName, value.String(), "0", "+inf")
	}
	return value.Round(MoneyScale), nil
}

// MustAmount is NewAmount for literals known to be valid.
func MustAmount(value string) decimal.Decimal {
	d := decimal.RequireFromString(value)
	amount, err := NewAmount("amount", d)
	if err != nil {
		panic(err)
	}
	return amount
}
