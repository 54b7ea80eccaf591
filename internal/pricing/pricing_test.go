package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jerseyshop/internal/domain"
)

func newCalc(t *testing.T, rate string) *Calculator {
	t.Helper()
	c, err := NewCalculator(decimal.RequireFromString(rate))
	require.NoError(t, err)
	return c
}

func TestTotalsTaxProfiles(t *testing.T) {
	lines := []Line{{UnitPrice: 10000, Quantity: 2}, {UnitPrice: 5000, Quantity: 1}}

	tests := []struct {
		name  string
		rate  string
		tax   domain.Cents
		total domain.Cents
	}{
		{name: "sales tax 8%", rate: "0.08", tax: 2000, total: 27000},
		{name: "gst 18%", rate: "0.18", tax: 4500, total: 29500},
		{name: "zero", rate: "0", tax: 0, total: 25000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newCalc(t, tt.rate).Totals(lines)
			assert.Equal(t, domain.Cents(25000), got.Subtotal)
			assert.Equal(t, tt.tax, got.Tax)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, got.Subtotal+got.Tax, got.Total)
		})
	}
}

func TestTaxRoundsToCent(t *testing.T) {
	c := newCalc(t, "0.08")
	// 89.99 * 0.08 = 7.1992
	assert.Equal(t, domain.Cents(720), c.Tax(8999))
	// 0.06 * 0.08 = 0.0048
	assert.Equal(t, domain.Cents(0), c.Tax(6))
}

func TestNewCalculatorRejectsBadRates(t *testing.T) {
	_, err := NewCalculator(decimal.RequireFromString("-0.1"))
	assert.Error(t, err)
	_, err = NewCalculator(decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestCartSubtotalUsesCurrentPrice(t *testing.T) {
	jersey := &domain.Jersey{ID: 1, Price: 10000}
	items := []domain.CartItem{
		{JerseyID: 1, Quantity: 2, Jersey: jersey},
		{JerseyID: 2, Quantity: 1, Jersey: &domain.Jersey{ID: 2, Price: 5000}},
	}
	subtotal, count := CartSubtotal(items)
	assert.Equal(t, domain.Cents(25000), subtotal)
	assert.Equal(t, 3, count)

	jersey.Price = 12000
	subtotal, _ = CartSubtotal(items)
	assert.Equal(t, domain.Cents(29000), subtotal)
}
