package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper functions shared by the domain tests.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pcOn(today time.Time) domain.ProcessingContext {
	return domain.ProcessingContext{Today: today, Now: today.Add(9 * time.Hour), UserID: "user-1"}
}

func stringPtr(s string) *string {
	return &s
}

// newAccount returns an approved USD savings account with no interest.
func newAccount(submittedOn time.Time) *domain.SavingsAccount {
	return &domain.SavingsAccount{
		AccountID:     "acc-1",
		AccountNumber: "000000001",
		ProductID:     "prod-1",
		DepositType:   domain.DepositTypeSavings,
		Status:        domain.StatusApproved,
		OfficeID:      "office-1",
		ClientID:      stringPtr("client-1"),
		Currency:      domain.CurrencyData{Code: "USD", DecimalPlaces: 2},
		Interest: domain.InterestTerms{
			NominalAnnualRate: decimal.Zero,
			PostingPeriod:     domain.PostingMonthly,
			DaysInYear:        365,
		},
		SubmittedOn: submittedOn,
	}
}

func activeAccount(t *testing.T, activatedOn time.Time) *domain.SavingsAccount {
	t.Helper()
	a := newAccount(activatedOn)
	require.NoError(t, a.Activate(pcOn(activatedOn), domain.ActivationCommand{ActivatedOn: activatedOn}))
	return a
}

func deposit(t *testing.T, a *domain.SavingsAccount, today, on time.Time, amount string) domain.Transaction {
	t.Helper()
	txn, err := a.Deposit(pcOn(today), domain.TransactionCommand{TransactionDate: on, Amount: dec(amount)})
	require.NoError(t, err)
	return txn
}

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want decimal.Decimal
	}{
		{"deposit credits", domain.Transaction{Type: domain.TxnDeposit, Amount: dec("100")}, dec("100")},
		{"interest credits", domain.Transaction{Type: domain.TxnInterestPosting, Amount: dec("1.25")}, dec("1.25")},
		{"withdrawal debits", domain.Transaction{Type: domain.TxnWithdrawal, Amount: dec("40")}, dec("-40")},
		{"charge payment debits", domain.Transaction{Type: domain.TxnPayCharge, Amount: dec("5")}, dec("-5")},
		{"transfer marker is neutral", domain.Transaction{Type: domain.TxnInitiateTransfer, Amount: dec("900")}, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.txn.SignedAmount()), "got %s", tt.txn.SignedAmount())
		})
	}
}

func TestTransaction_ReversedOnlyOnce(t *testing.T) {
	a := activeAccount(t, day(2024, 1, 1))
	today := day(2024, 1, 10)
	txn := deposit(t, a, today, day(2024, 1, 5), "100")

	_, err := a.UndoTransaction(pcOn(today), txn.TransactionID, false)
	require.NoError(t, err)

	_, err = a.UndoTransaction(pcOn(today), txn.TransactionID, false)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReversed)

	reversed, ok := a.TransactionByID(txn.TransactionID)
	require.True(t, ok)
	assert.True(t, reversed.IsReversed())
	require.NotNil(t, reversed.ReversedOn)
	assert.Equal(t, today, *reversed.ReversedOn)
}
