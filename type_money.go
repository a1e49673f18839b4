package accounts

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money is an amount in a currency, used to display amounts.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// String returns the amount formatted in its currency, like "$12.50".
// Amounts in an unknown currency are written as plain numbers.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return formatDecimal(m.value)
	}
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string        { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool      { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }

// KnownCurrency reports whether code is an ISO 4217 currency code.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// MarshalJSON writes the amount and its currency.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}{m.value, m.cur})
}
