package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{{Description: "Consultation", Quantity: 2, UnitPrice: dec("100")}}

	totals, err := ComputeTotals(items, dec("10"), dec("5"))
	require.NoError(t, err)

	assert.True(t, dec("200").Equal(totals.Subtotal), totals.Subtotal.String())
	assert.True(t, dec("205").Equal(totals.Total), totals.Total.String())
	require.Len(t, totals.Amounts, 1)
	assert.True(t, dec("200").Equal(totals.Amounts[0]))
}

func TestComputeTotals_NoFloatDrift(t *testing.T) {
	items := []LineItem{
		{Description: "Gauze", Quantity: 3, UnitPrice: dec("0.10")},
		{Description: "Saline", Quantity: 1, UnitPrice: dec("0.20")},
	}

	totals, err := ComputeTotals(items, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.5", totals.Subtotal.String())
	assert.True(t, totals.Subtotal.Equal(totals.Total))
}

func TestComputeTotals_RoundsHalfAwayFromZero(t *testing.T) {
	items := []LineItem{{Description: "Lab", Quantity: 1, UnitPrice: dec("10.005")}}

	totals, err := ComputeTotals(items, dec("0.125"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "10.01", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.13", totals.Tax.StringFixed(2))
	assert.Equal(t, "10.14", totals.Total.StringFixed(2))
}

func TestComputeTotals_Rejects(t *testing.T) {
	valid := LineItem{Description: "X-ray", Quantity: 1, UnitPrice: dec("50")}

	tests := []struct {
		name     string
		items    []LineItem
		tax      string
		discount string
		want     error
	}{
		{"no items", nil, "0", "0", ErrNoItems},
		{"zero quantity", []LineItem{{Description: "X-ray", Quantity: 0, UnitPrice: dec("50")}}, "0", "0", ErrInvalidQuantity},
		{"negative price", []LineItem{{Description: "X-ray", Quantity: 1, UnitPrice: dec("-1")}}, "0", "0", ErrNegativeAmount},
		{"missing description", []LineItem{{Quantity: 1, UnitPrice: dec("1")}}, "0", "0", ErrMissingItemLabel},
		{"negative tax", []LineItem{valid}, "-1", "0", ErrNegativeAmount},
		{"negative discount", []LineItem{valid}, "0", "-1", ErrNegativeAmount},
		{"discount above total", []LineItem{valid}, "5", "55.01", ErrNegativeTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(tt.items, dec(tt.tax), dec(tt.discount))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComputeTotals_DiscountEqualToTotalIsAllowed(t *testing.T) {
	items := []LineItem{{Description: "X-ray", Quantity: 1, UnitPrice: dec("50")}}

	totals, err := ComputeTotals(items, dec("5"), dec("55"))
	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero())
}
