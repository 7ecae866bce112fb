package postgres

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashBalanceChecker answers cash capacity questions straight from delivery_persons
// without loading the aggregate.
type CashBalanceChecker struct {
	db *gorm.DB
}

// NewCashBalanceChecker reads through db outside any unit of work.
func NewCashBalanceChecker(db *gorm.DB) *CashBalanceChecker {
	return &CashBalanceChecker{db: db}
}

// HasSufficientCashBalance reports whether balance + amount stays within the courier's limit.
func (c *CashBalanceChecker) HasSufficientCashBalance(
	ctx context.Context,
	deliveryPersonID kernel.UUID,
	amount decimal.Decimal,
) (bool, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return false, err
	}

	var row struct {
		CashBalance  decimal.Decimal
		MaxCashLimit decimal.Decimal
	}
	result := c.db.WithContext(ctx).
		Raw(`SELECT cash_balance, max_cash_limit FROM delivery_persons WHERE id = ?`, deliveryPersonID.Bytes()).
		Scan(&row)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, errs.NewObjectNotFoundError("delivery person", deliveryPersonID.String())
	}

	return row.CashBalance.Add(amount).LessThanOrEqual(row.MaxCashLimit), nil
}
