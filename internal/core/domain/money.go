package domain

import (
	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Significant-digit precisions used by the interest engine. Commit uses the
// narrower one so repeated postings do not drift.
const (
	EphemeralPrecision int32 = 15
	CommitPrecision    int32 = 10
)

// Money is a decimal amount tagged with a currency code.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) sameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return apperrors.NewValidationError("currencyCode", o.Currency, "cannot combine "+m.Currency+" with "+o.Currency)
	}
	return nil
}

// Add returns m + o. Mixing currencies is rejected.
func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}, nil
}

// Sub returns m - o. Mixing currencies is rejected.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}, nil
}

func (m Money) String() string {
	return m.Currency + " " + m.Amount.String()
}

// RoundSignificant rounds d half-to-even to the given number of significant digits.
func RoundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	integerDigits := int32(d.NumDigits()) + d.Exponent()
	return d.RoundBank(digits - integerDigits)
}
