package domain

import (
	"github.com/shopspring/decimal"
)

// Cents is an amount of money in the smallest currency unit. It is rendered in
// JSON as a decimal number with two fraction digits.
type Cents int64

// CentsFromDecimal rounds d to the nearest cent.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts both 12.5 and "12.50".
func (c *Cents) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*c = CentsFromDecimal(d)
	return nil
}
