// Package pricing computes cart and order money amounts.
//
// Two prices exist for a jersey: the current catalog price, read whenever a
// cart is displayed, and the snapshot price copied onto an order line at
// checkout. Carts always use the former and orders only ever the latter.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"jerseyshop/internal/domain"
)

// Line is one priced quantity.
type Line struct {
	UnitPrice domain.Cents
	Quantity  int
}

func (l Line) Total() domain.Cents {
	return l.UnitPrice * domain.Cents(l.Quantity)
}

// Totals is the frozen money breakdown of an order.
type Totals struct {
	Subtotal domain.Cents
	Tax      domain.Cents
	Total    domain.Cents
}

// CurrentPrice is the live catalog price of j.
func CurrentPrice(j domain.Jersey) domain.Cents {
	return j.Price
}

// SnapshotPrice is the price recorded on an order line.
func SnapshotPrice(it domain.OrderItem) domain.Cents {
	return it.Price
}

// CartSubtotal prices cart items at current catalog prices. Items without an
// attached jersey are ignored.
func CartSubtotal(items []domain.CartItem) (domain.Cents, int) {
	var subtotal domain.Cents
	count := 0
	for _, it := range items {
		count += it.Quantity
		if it.Jersey == nil {
			continue
		}
		subtotal += Line{UnitPrice: CurrentPrice(*it.Jersey), Quantity: it.Quantity}.Total()
	}
	return subtotal, count
}

// Calculator applies a flat tax rate.
type Calculator struct {
	rate decimal.Decimal
}

// NewCalculator returns a Calculator for rate, e.g. 0.08 or 0.18.
func NewCalculator(rate decimal.Decimal) (*Calculator, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("tax rate must be in [0, 1), got %s", rate)
	}
	return &Calculator{rate: rate}, nil
}

func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Tax is subtotal × rate rounded half away from zero to the cent.
func (c *Calculator) Tax(subtotal domain.Cents) domain.Cents {
	return domain.CentsFromDecimal(subtotal.Decimal().Mul(c.rate))
}

// Totals sums lines and applies tax.
func (c *Calculator) Totals(lines []Line) Totals {
	var subtotal domain.Cents
	for _, l := range lines {
		subtotal += l.Total()
	}
	tax := c.Tax(subtotal)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}
