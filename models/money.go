package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise. All stored and computed amounts use it so
// that rupee values never pass through floating point.
type Money int64

// MaxDocumentAmount bounds the value of a single document. Tax at the
// highest slab on it, and sums of many such documents, stay well inside
// int64 paise.
const MaxDocumentAmount Money = 1_000_000_000_000_000 // ₹10 lakh crore

var (
	hundred  = decimal.NewFromInt(100)
	maxPaise = decimal.NewFromInt(math.MaxInt64)
)

// NewMoney parses a rupee amount such as "1180.50". More than two decimal
// places is an error.
func NewMoney(rupees string) (Money, error) {
	d, err := decimal.NewFromString(rupees)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", rupees)
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal converts a rupee decimal to paise, rejecting fractional paise.
func MoneyFromDecimal(rupees decimal.Decimal) (Money, error) {
	p := rupees.Mul(hundred)
	if !p.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than two decimal places", rupees.String())
	}
	if p.Abs().GreaterThan(maxPaise) {
		return 0, fmt.Errorf("amount %s is out of range", rupees.String())
	}
	return Money(p.IntPart()), nil
}

// Rupees returns the amount as a rupee decimal.
func (m Money) Rupees() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Rupees().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if string(b) == "null" || len(b) == 0 {
		*m = 0
		return nil
	}
	v, err := NewMoney(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Scan implements sql.Scanner for BIGINT paise columns.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
	case nil:
		*m = 0
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}
