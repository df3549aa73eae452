// Package billing computes invoice totals with exact decimal arithmetic.
package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNoItems          = errors.New("invoice must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be greater than zero")
	ErrNegativeAmount   = errors.New("unit price, tax and discount cannot be negative")
	ErrNegativeTotal    = errors.New("discount cannot exceed subtotal plus tax")
	ErrMissingItemLabel = errors.New("item description is required")
)

type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Amount is quantity × unit price rounded to cents.
func (i LineItem) Amount() decimal.Decimal {
	return round(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

type Totals struct {
	Amounts  []decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives per-item amounts, the subtotal and the total
// (subtotal + tax - discount). Every value is rounded half away from zero to
// two places.
func ComputeTotals(items []LineItem, tax, discount decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, ErrNoItems
	}
	if tax.IsNegative() || discount.IsNegative() {
		return Totals{}, ErrNegativeAmount
	}

	totals := Totals{
		Amounts:  make([]decimal.Decimal, 0, len(items)),
		Subtotal: decimal.Zero,
		Tax:      round(tax),
		Discount: round(discount),
	}
	for _, item := range items {
		if item.Description == "" {
			return Totals{}, ErrMissingItemLabel
		}
		if item.Quantity <= 0 {
			return Totals{}, ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return Totals{}, ErrNegativeAmount
		}
		amount := item.Amount()
		totals.Amounts = append(totals.Amounts, amount)
		totals.Subtotal = totals.Subtotal.Add(amount)
	}

	totals.Subtotal = round(totals.Subtotal)
	totals.Total = round(totals.Subtotal.Add(totals.Tax).Sub(totals.Discount))
	if totals.Total.IsNegative() {
		return Totals{}, ErrNegativeTotal
	}
	return totals, nil
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
