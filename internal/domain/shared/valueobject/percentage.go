package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Percentage is a share of profit in the closed range [0, 100].
// It is immutable; arithmetic returns new values.
type Percentage struct {
	value decimal.Decimal
}

// NewPercentage validates and wraps a percentage value
func NewPercentage(value decimal.Decimal) (Percentage, error) {
	if value.IsNegative() {
		return Percentage{}, fmt.Errorf("percentage cannot be negative: %s", value.String())
	}
	if value.GreaterThan(hundred) {
		return Percentage{}, fmt.Errorf("percentage cannot exceed 100: %s", value.String())
	}
	return Percentage{value: value}, nil
}

// MustNewPercentage panics on invalid input; intended for constants and tests
func MustNewPercentage(value decimal.Decimal) Percentage {
	p, err := NewPercentage(value)
	if err != nil {
		panic(err)
	}
	return p
}

// PercentageFromInt builds a percentage from a whole number
func PercentageFromInt(value int64) (Percentage, error) {
	return NewPercentage(decimal.NewFromInt(value))
}

// FullPercentage is 100%
func FullPercentage() Percentage {
	return Percentage{value: hundred}
}

// Decimal returns the raw value in percent units (0..100)
func (p Percentage) Decimal() decimal.Decimal {
	return p.value
}

// Ratio returns the percentage as a fraction in [0, 1]
func (p Percentage) Ratio() decimal.Decimal {
	return p.value.Div(hundred)
}

// Of returns this percentage of the given amount
func (p Percentage) Of(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.value).Div(hundred)
}

// IsZero reports whether the percentage is 0
func (p Percentage) IsZero() bool {
	return p.value.IsZero()
}

// Equals compares two percentages
func (p Percentage) Equals(other Percentage) bool {
	return p.value.Equal(other.value)
}

// String returns the value with two decimal places and a percent sign
func (p Percentage) String() string {
	return p.value.StringFixed(2) + "%"
}

// MarshalJSON encodes the percentage as a decimal string
func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value.String())
}

// UnmarshalJSON accepts a JSON number or string
func (p *Percentage) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid percentage: %w", err)
	}
	parsed, err := NewPercentage(d)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer
func (p Percentage) Value() (driver.Value, error) {
	return p.value.String(), nil
}

// Scan implements sql.Scanner
func (p *Percentage) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan percentage: %w", err)
	}
	p.value = d
	return nil
}

// SumPercentages adds raw percentage values without clamping; the sum may exceed 100
func SumPercentages(values ...Percentage) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.value)
	}
	return total
}
