package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// LineItem is one ordered menu item with the options the customer selected.
type LineItem struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	unitPrice  decimal.Decimal
	options    []string
	guard      guard.ConstructorGuard
}

// NewLineItem validates a positive quantity, a non-negative unit price (rounded to cents)
// and a non-empty name. options are copied; nil and empty mean the same.
func NewLineItem(
	menuItemID kernel.UUID,
	name string,
	quantity int,
	unitPrice decimal.Decimal,
	options []string,
) (LineItem, error) {
	name = strings.TrimSpace(name)

	var nameErr, quantityErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("line item name")
	}
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	price, priceErr := kernel.NewAmount("unit price", unitPrice)

	if err := errors.Join(menuItemID.Validate(), nameErr, quantityErr, priceErr); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		menuItemID: menuItemID,
		name:       name,
		quantity:   quantity,
		unitPrice:  price,
		options:    append([]string(nil), options...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrLineItemIsNotConstructed for the zero value.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) Quantity() int {
	return i.quantity
}

func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Options returns a copy of the selected options.
func (i LineItem) Options() []string {
	return append([]string(nil), i.options...)
}

// Total is unit price times quantity.
func (i LineItem) Total() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
