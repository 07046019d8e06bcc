package domain_test

import (
	"testing"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionIDs(txns []domain.Transaction) []string {
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		ids = append(ids, t.TransactionID)
	}
	return ids
}

func TestBridgeProjector_Derive(t *testing.T) {
	a := activeAccount(t, day(2024, 1, 1))
	today := day(2024, 1, 31)
	existing := deposit(t, a, today, day(2024, 1, 5), "100")

	projector := domain.NewBridgeProjector(a)
	created := deposit(t, a, today, day(2024, 1, 6), "40")
	_, err := a.UndoTransaction(pcOn(today), existing.TransactionID, false)
	require.NoError(t, err)

	delta, err := projector.Derive(a)

	require.NoError(t, err)
	assert.False(t, delta.IsEmpty())
	assert.Equal(t, a.AccountID, delta.SavingsAccountID)
	assert.Equal(t, a.OfficeID, delta.OfficeID)
	assert.Equal(t, "USD", delta.Currency.Code)
	assert.Equal(t, []string{created.TransactionID}, transactionIDs(delta.NewTransactions))
	assert.Equal(t, []string{existing.TransactionID}, transactionIDs(delta.ReversedTransactions))
}

func TestBridgeProjector_EmitsOnce(t *testing.T) {
	a := activeAccount(t, day(2024, 1, 1))
	projector := domain.NewBridgeProjector(a)

	delta, err := projector.Derive(a)
	require.NoError(t, err)
	assert.True(t, delta.IsEmpty())

	_, err = projector.Derive(a)
	assert.ErrorIs(t, err, domain.ErrBridgeAlreadyEmitted)
}

func TestBridgeProjector_CreatedAndReversedInSameUnit(t *testing.T) {
	a := activeAccount(t, day(2024, 1, 1))
	today := day(2024, 1, 31)
	projector := domain.NewBridgeProjector(a)

	txn := deposit(t, a, today, day(2024, 1, 5), "100")
	_, err := a.UndoTransaction(pcOn(today), txn.TransactionID, false)
	require.NoError(t, err)

	delta, err := projector.Derive(a)

	require.NoError(t, err)
	assert.Equal(t, []string{txn.TransactionID}, transactionIDs(delta.NewTransactions))
	assert.Equal(t, []string{txn.TransactionID}, transactionIDs(delta.ReversedTransactions))
}

func TestBridgeProjector_InterestRepostingAppearsInDelta(t *testing.T) {
	a := interestAccount(t)
	today := day(2024, 5, 1)
	require.NoError(t, a.PostInterest(pcOn(today), day(2024, 4, 30)))
	oldPosting := interestPostings(a)[0]

	projector := domain.NewBridgeProjector(a)
	created := deposit(t, a, today, day(2024, 4, 16), "365")
	delta, err := projector.Derive(a)

	require.NoError(t, err)
	require.Len(t, delta.NewTransactions, 2)
	assert.Contains(t, transactionIDs(delta.NewTransactions), created.TransactionID)
	assert.Equal(t, []string{oldPosting.TransactionID}, transactionIDs(delta.ReversedTransactions))
}

func TestBridgeProjector_MarksPenaltyCharges(t *testing.T) {
	a := fundedAccount(t)
	def := chargeDefinition("late", domain.ChargeSpecifiedDueDate, "25")
	def.Penalty = true
	due := day(2024, 1, 10)
	penalty, err := a.AddCharge(pcOn(day(2024, 1, 5)), domain.AddChargeCommand{Definition: def, DueDate: &due})
	require.NoError(t, err)
	fee := addMonthlyFee(t, a, day(2024, 1, 5))

	projector := domain.NewBridgeProjector(a)
	_, err = a.PayCharge(pcOn(day(2024, 1, 10)), penalty.ChargeID, day(2024, 1, 10), dec("25"))
	require.NoError(t, err)

	delta, err := projector.Derive(a)

	require.NoError(t, err)
	require.Len(t, delta.NewTransactions, 1)
	assert.True(t, delta.PenaltyCharges[penalty.ChargeID])
	assert.False(t, delta.PenaltyCharges[fee.ChargeID])
}

func TestBridgeProjector_IgnoresPenaltyChargesOutsideDelta(t *testing.T) {
	a := fundedAccount(t)
	def := chargeDefinition("late", domain.ChargeSpecifiedDueDate, "25")
	def.Penalty = true
	due := day(2024, 1, 10)
	unpaid, err := a.AddCharge(pcOn(day(2024, 1, 5)), domain.AddChargeCommand{Definition: def, DueDate: &due})
	require.NoError(t, err)

	projector := domain.NewBridgeProjector(a)
	deposit(t, a, day(2024, 1, 12), day(2024, 1, 12), "50")

	delta, err := projector.Derive(a)

	require.NoError(t, err)
	require.Len(t, delta.NewTransactions, 1)
	assert.False(t, delta.PenaltyCharges[unpaid.ChargeID])
	assert.Empty(t, delta.PenaltyCharges)
}

func TestBridgeProjector_MarksPenaltyOnUndonePayment(t *testing.T) {
	a := fundedAccount(t)
	def := chargeDefinition("late", domain.ChargeSpecifiedDueDate, "25")
	def.Penalty = true
	due := day(2024, 1, 10)
	penalty, err := a.AddCharge(pcOn(day(2024, 1, 5)), domain.AddChargeCommand{Definition: def, DueDate: &due})
	require.NoError(t, err)
	payment, err := a.PayCharge(pcOn(day(2024, 1, 10)), penalty.ChargeID, day(2024, 1, 10), dec("25"))
	require.NoError(t, err)

	projector := domain.NewBridgeProjector(a)
	_, err = a.UndoTransaction(pcOn(day(2024, 1, 11)), payment.TransactionID, false)
	require.NoError(t, err)

	delta, err := projector.Derive(a)

	require.NoError(t, err)
	assert.Equal(t, []string{payment.TransactionID}, transactionIDs(delta.ReversedTransactions))
	assert.True(t, delta.PenaltyCharges[penalty.ChargeID])
}
