package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
)

func TestJournalAmount_SumsDebitsInJournalCurrency(t *testing.T) {
	journal := domain.Journal{
		CurrencyCode: "USD",
		Lines: []domain.JournalLine{
			{EntryType: domain.Debit, Amount: decimal.RequireFromString("100")},
			{EntryType: domain.Credit, Amount: decimal.RequireFromString("100")},
			{EntryType: domain.Debit, Amount: decimal.RequireFromString("12.50")},
			{EntryType: domain.Credit, Amount: decimal.RequireFromString("12.50")},
		},
	}

	amount, err := journalAmount(journal)

	require.NoError(t, err)
	assert.Equal(t, "USD", amount.Currency)
	assert.True(t, decimal.RequireFromString("112.50").Equal(amount.Amount))
	assert.Equal(t, "USD 112.5", amount.String())
}

func TestJournalAmount_EmptyJournal(t *testing.T) {
	amount, err := journalAmount(domain.Journal{CurrencyCode: "EUR"})

	require.NoError(t, err)
	assert.True(t, amount.Amount.IsZero())
	assert.Equal(t, "EUR", amount.Currency)
}
