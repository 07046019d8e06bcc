package domain_test

import (
	"testing"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := domain.NewMoney(dec("10.50"), "USD")
	b := domain.NewMoney(dec("0.75"), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, dec("11.25").Equal(sum.Amount))
	assert.Equal(t, "USD", sum.Currency)

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.True(t, dec("-9.75").Equal(diff.Amount))
	assert.Equal(t, "USD -9.75", diff.String())
}

func TestMoney_RejectsCrossCurrency(t *testing.T) {
	usd := domain.NewMoney(dec("1"), "USD")
	eur := domain.NewMoney(dec("1"), "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRoundSignificant(t *testing.T) {
	tests := []struct {
		in     string
		digits int32
		want   string
	}{
		{"9.8630136986301370", 10, "9.863013699"},
		{"12345.678", 3, "12300"},
		{"0.000123456", 2, "0.00012"},
		{"2.5", 1, "2"},
		{"3.5", 1, "4"},
		{"0", 15, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := domain.RoundSignificant(dec(tt.in), tt.digits)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}
