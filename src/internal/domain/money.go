package domain

import "github.com/shopspring/decimal"

// Money is a fixed-point amount with a 2-digit scale. Every arithmetic result
// is rounded half-up back to 2 digits, so repeated operations (interest runs)
// stay reproducible.
type Money struct {
	value decimal.Decimal
}

// NewMoney rounds value to the 2-digit scale. It accepts any sign; balances
// stay non-negative through the account rules, not through this constructor.
func NewMoney(value decimal.Decimal) Money {
	return Money{value: value.Round(2)}
}

// NewAmount is the operation-boundary guard: every deposit, withdrawal and
// transfer amount passes through it. Non-positive values fail with
// ErrInvalidAmount before any balance is touched.
func NewAmount(value decimal.Decimal) (Money, error) {
	m := NewMoney(value)
	if !m.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// MoneyFromString parses a decimal string into Money.
func MoneyFromString(raw string) (Money, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(value), nil
}

// AmountFromString parses a decimal string through the NewAmount guard.
func AmountFromString(raw string) (Money, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return NewAmount(value)
}

func ZeroMoney() Money {
	return Money{value: decimal.Zero}
}

func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value).Round(2)}
}

func (m Money) Subtract(other Money) Money {
	return Money{value: m.value.Sub(other.value).Round(2)}
}

// Compare returns -1, 0 or 1 as m is less than, equal to or greater than other.
func (m Money) Compare(other Money) int {
	return m.value.Cmp(other.value)
}

func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.value.IsNegative()
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.value
}

func (m Money) String() string {
	return m.value.StringFixed(2)
}
