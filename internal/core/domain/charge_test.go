package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chargeDefinition(id string, timeType domain.ChargeTimeType, amount string) domain.ChargeDefinition {
	return domain.ChargeDefinition{
		ChargeDefinitionID: id,
		Name:               id,
		CurrencyCode:       "USD",
		TimeType:           timeType,
		CalculationType:    domain.ChargeFlat,
		Amount:             dec(amount),
		FeeInterval:        1,
		Active:             true,
	}
}

// fundedAccount is activated on 2024-01-01 with an opening balance of 1000.
func fundedAccount(t *testing.T) *domain.SavingsAccount {
	t.Helper()
	a := newAccount(day(2024, 1, 1))
	a.MinRequiredOpeningBalance = dec("1000")
	require.NoError(t, a.Activate(pcOn(day(2024, 1, 1)), domain.ActivationCommand{ActivatedOn: day(2024, 1, 1)}))
	return a
}

func addMonthlyFee(t *testing.T, a *domain.SavingsAccount, today time.Time) domain.Charge {
	t.Helper()
	due := day(2024, 1, 15)
	c, err := a.AddCharge(pcOn(today), domain.AddChargeCommand{
		Definition: chargeDefinition("monthly", domain.ChargeMonthlyFee, "10"),
		DueDate:    &due,
	})
	require.NoError(t, err)
	return c
}

func assertChargeInvariant(t *testing.T, c domain.Charge) {
	t.Helper()
	assert.True(t, c.Amount.Equal(c.AmountPaid.Add(c.AmountWaived).Add(c.Outstanding())))
	assert.False(t, c.Outstanding().IsNegative())
}

func TestApplyChargeDue_CollectsMissedInstallments(t *testing.T) {
	a := fundedAccount(t)
	charge := addMonthlyFee(t, a, day(2024, 1, 1))

	collected, err := a.ApplyChargeDue(pcOn(day(2024, 5, 15)), charge.ChargeID, 0)

	require.NoError(t, err)
	require.Len(t, collected, 4)
	for _, txn := range collected {
		assert.Equal(t, domain.TxnPayCharge, txn.Type)
		assert.Equal(t, day(2024, 5, 15), txn.TransactionDate)
		assert.True(t, dec("10").Equal(txn.Amount))
	}
	assert.True(t, dec("960").Equal(a.Balance()))

	c, ok := a.ChargeByID(charge.ChargeID)
	require.True(t, ok)
	require.NotNil(t, c.DueDate)
	assert.Equal(t, day(2024, 5, 15), *c.DueDate)
	assert.True(t, dec("40").Equal(c.AmountPaid))
	assert.True(t, dec("10").Equal(c.Outstanding()))
	assertChargeInvariant(t, c)
	assert.True(t, dec("40").Equal(a.Summary.TotalFeeCharges))
	assertBalanceInvariant(t, a)
}

func TestApplyChargeDue_StopsAtMaxPeriods(t *testing.T) {
	a := fundedAccount(t)
	charge := addMonthlyFee(t, a, day(2024, 1, 1))

	collected, err := a.ApplyChargeDue(pcOn(day(2024, 5, 15)), charge.ChargeID, 2)

	require.NoError(t, err)
	assert.Len(t, collected, 2)
	c, _ := a.ChargeByID(charge.ChargeID)
	assert.Equal(t, day(2024, 3, 15), *c.DueDate)

	// the next call continues where the cap stopped
	collected, err = a.ApplyChargeDue(pcOn(day(2024, 5, 15)), charge.ChargeID, 2)
	require.NoError(t, err)
	assert.Len(t, collected, 2)
	c, _ = a.ChargeByID(charge.ChargeID)
	assert.Equal(t, day(2024, 5, 15), *c.DueDate)
}

func TestApplyChargeDue_DueDateClampedToMonthEnd(t *testing.T) {
	a := fundedAccount(t)
	due := day(2024, 1, 31)
	charge, err := a.AddCharge(pcOn(day(2024, 1, 1)), domain.AddChargeCommand{
		Definition: chargeDefinition("monthly", domain.ChargeMonthlyFee, "10"),
		DueDate:    &due,
	})
	require.NoError(t, err)

	collected, err := a.ApplyChargeDue(pcOn(day(2024, 3, 1)), charge.ChargeID, 1)

	require.NoError(t, err)
	require.Len(t, collected, 1)
	assert.Equal(t, day(2024, 3, 1), collected[0].TransactionDate)
	c, _ := a.ChargeByID(charge.ChargeID)
	assert.Equal(t, day(2024, 2, 29), *c.DueDate)
}

func TestApplyChargeDue_AccountFundedAfterMissedDueDates(t *testing.T) {
	a := activeAccount(t, day(2024, 1, 1))
	charge := addMonthlyFee(t, a, day(2024, 1, 1))
	deposit(t, a, day(2024, 3, 1), day(2024, 3, 1), "100")

	collected, err := a.ApplyChargeDue(pcOn(day(2024, 3, 20)), charge.ChargeID, 0)

	require.NoError(t, err)
	require.Len(t, collected, 3)
	for _, txn := range collected {
		assert.Equal(t, day(2024, 3, 20), txn.TransactionDate)
	}
	assert.True(t, dec("70").Equal(a.Balance()), "balance %s", a.Balance())
	c, _ := a.ChargeByID(charge.ChargeID)
	assert.Equal(t, day(2024, 4, 15), *c.DueDate)
	assertChargeInvariant(t, c)
	assertBalanceInvariant(t, a)
}

func TestPayCharge(t *testing.T) {
	t.Run("partial then full payment advances a periodic charge", func(t *testing.T) {
		a := fundedAccount(t)
		charge := addMonthlyFee(t, a, day(2024, 1, 1))
		today := day(2024, 1, 20)

		_, err := a.PayCharge(pcOn(today), charge.ChargeID, today, dec("4"))
		require.NoError(t, err)
		c, _ := a.ChargeByID(charge.ChargeID)
		assert.Equal(t, day(2024, 1, 15), *c.DueDate)
		assert.True(t, dec("6").Equal(c.Outstanding()))

		_, err = a.PayCharge(pcOn(today), charge.ChargeID, today, dec("6"))
		require.NoError(t, err)
		c, _ = a.ChargeByID(charge.ChargeID)
		assert.Equal(t, day(2024, 2, 15), *c.DueDate)
		assert.True(t, dec("10").Equal(c.Outstanding()))
		assertChargeInvariant(t, c)
	})

	t.Run("more than outstanding is rejected", func(t *testing.T) {
		a := fundedAccount(t)
		charge := addMonthlyFee(t, a, day(2024, 1, 1))

		_, err := a.PayCharge(pcOn(day(2024, 1, 20)), charge.ChargeID, day(2024, 1, 20), dec("10.01"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown charge", func(t *testing.T) {
		a := fundedAccount(t)
		_, err := a.PayCharge(pcOn(day(2024, 1, 20)), "missing", day(2024, 1, 20), dec("1"))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("penalty counts towards penalty totals", func(t *testing.T) {
		a := fundedAccount(t)
		def := chargeDefinition("late", domain.ChargeSpecifiedDueDate, "25")
		def.Penalty = true
		due := day(2024, 1, 10)
		charge, err := a.AddCharge(pcOn(day(2024, 1, 5)), domain.AddChargeCommand{Definition: def, DueDate: &due})
		require.NoError(t, err)

		_, err = a.PayCharge(pcOn(day(2024, 1, 10)), charge.ChargeID, day(2024, 1, 10), dec("25"))

		require.NoError(t, err)
		assert.True(t, dec("25").Equal(a.Summary.TotalPenaltyCharges))
		assert.True(t, a.Summary.TotalFeeCharges.IsZero())
	})
}

func TestUndoChargePayment_RestoresCharge(t *testing.T) {
	a := fundedAccount(t)
	charge := addMonthlyFee(t, a, day(2024, 1, 1))
	today := day(2024, 1, 20)
	txn, err := a.PayCharge(pcOn(today), charge.ChargeID, today, dec("10"))
	require.NoError(t, err)

	_, err = a.UndoTransaction(pcOn(today), txn.TransactionID, false)

	require.NoError(t, err)
	c, _ := a.ChargeByID(charge.ChargeID)
	assert.Equal(t, day(2024, 1, 15), *c.DueDate)
	assert.True(t, c.AmountPaid.IsZero())
	assert.True(t, dec("10").Equal(c.Outstanding()))
	assertChargeInvariant(t, c)
	assert.True(t, dec("1000").Equal(a.Balance()))
}

func TestWaiveCharge(t *testing.T) {
	a := fundedAccount(t)
	charge := addMonthlyFee(t, a, day(2024, 1, 1))
	count := len(a.Transactions)

	waived, err := a.WaiveCharge(pcOn(day(2024, 1, 20)), charge.ChargeID)

	require.NoError(t, err)
	assert.True(t, dec("10").Equal(waived.AmountWaived))
	assert.Equal(t, day(2024, 2, 15), *waived.DueDate)
	assertChargeInvariant(t, waived)
	assert.Len(t, a.Transactions, count)
	assert.True(t, dec("1000").Equal(a.Balance()))

	t.Run("nothing outstanding", func(t *testing.T) {
		due := day(2024, 1, 10)
		def := chargeDefinition("once", domain.ChargeSpecifiedDueDate, "5")
		c, err := a.AddCharge(pcOn(day(2024, 1, 20)), domain.AddChargeCommand{Definition: def, DueDate: &due})
		require.NoError(t, err)
		_, err = a.WaiveCharge(pcOn(day(2024, 1, 20)), c.ChargeID)
		require.NoError(t, err)

		_, err = a.WaiveCharge(pcOn(day(2024, 1, 20)), c.ChargeID)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestRemoveCharge(t *testing.T) {
	a := fundedAccount(t)
	unpaid := addMonthlyFee(t, a, day(2024, 1, 1))
	require.NoError(t, a.RemoveCharge(pcOn(day(2024, 1, 2)), unpaid.ChargeID))
	_, ok := a.ChargeByID(unpaid.ChargeID)
	assert.False(t, ok)

	paid := addMonthlyFee(t, a, day(2024, 1, 1))
	_, err := a.PayCharge(pcOn(day(2024, 1, 20)), paid.ChargeID, day(2024, 1, 20), dec("1"))
	require.NoError(t, err)

	err = a.RemoveCharge(pcOn(day(2024, 1, 20)), paid.ChargeID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateCharge(t *testing.T) {
	a := fundedAccount(t)
	charge := addMonthlyFee(t, a, day(2024, 1, 1))
	newDue := day(2024, 1, 25)
	newAmount := dec("12")

	updated, err := a.UpdateCharge(pcOn(day(2024, 1, 2)), charge.ChargeID, &newDue, &newAmount)

	require.NoError(t, err)
	assert.Equal(t, newDue, *updated.DueDate)
	assert.True(t, newAmount.Equal(updated.Amount))

	beforeActivation := day(2023, 12, 31)
	_, err = a.UpdateCharge(pcOn(day(2024, 1, 2)), charge.ChargeID, &beforeActivation, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestActivationCharge(t *testing.T) {
	t.Run("collected on activation", func(t *testing.T) {
		a := newAccount(day(2024, 1, 1))
		a.MinRequiredOpeningBalance = dec("100")
		_, err := a.AddCharge(pcOn(day(2024, 1, 1)), domain.AddChargeCommand{
			Definition: chargeDefinition("activation", domain.ChargeSavingsActivation, "5"),
		})
		require.NoError(t, err)

		require.NoError(t, a.Activate(pcOn(day(2024, 1, 2)), domain.ActivationCommand{ActivatedOn: day(2024, 1, 2)}))

		assert.True(t, dec("95").Equal(a.Balance()))
		require.Len(t, a.Transactions, 2)
		assert.Equal(t, domain.TxnPayCharge, a.Transactions[1].Type)
	})

	t.Run("activation that cannot cover the fee fails", func(t *testing.T) {
		a := newAccount(day(2024, 1, 1))
		_, err := a.AddCharge(pcOn(day(2024, 1, 1)), domain.AddChargeCommand{
			Definition: chargeDefinition("activation", domain.ChargeSavingsActivation, "5"),
		})
		require.NoError(t, err)

		err = a.ApplyUnit(func(acc *domain.SavingsAccount) error {
			return acc.Activate(pcOn(day(2024, 1, 2)), domain.ActivationCommand{ActivatedOn: day(2024, 1, 2)})
		})

		assert.ErrorIs(t, err, apperrors.ErrNegativeBalance)
		assert.Equal(t, domain.StatusApproved, a.Status)
		assert.Empty(t, a.Transactions)
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		a := fundedAccount(t)
		def := chargeDefinition("activation", domain.ChargeSavingsActivation, "5")
		_, err := a.AddCharge(pcOn(day(2024, 1, 2)), domain.AddChargeCommand{Definition: def})
		require.NoError(t, err)
		assert.True(t, dec("995").Equal(a.Balance()))

		_, err = a.AddCharge(pcOn(day(2024, 1, 2)), domain.AddChargeCommand{Definition: def})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestWithdrawalFee(t *testing.T) {
	tests := []struct {
		name        string
		calculation domain.ChargeCalculationType
		amount      string
		wantBalance string
	}{
		{"flat", domain.ChargeFlat, "3", "797"},
		{"percent of withdrawal", domain.ChargePercentOfAmount, "1.5", "797"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fundedAccount(t)
			def := chargeDefinition("withdrawal", domain.ChargeWithdrawalFee, tt.amount)
			def.CalculationType = tt.calculation
			charge, err := a.AddCharge(pcOn(day(2024, 1, 2)), domain.AddChargeCommand{Definition: def})
			require.NoError(t, err)
			assert.True(t, charge.Amount.IsZero())

			_, err = a.Withdraw(pcOn(day(2024, 1, 5)), domain.TransactionCommand{TransactionDate: day(2024, 1, 5), Amount: dec("200")}, false)

			require.NoError(t, err)
			assert.True(t, dec(tt.wantBalance).Equal(a.Balance()), "got %s", a.Balance())
			c, _ := a.ChargeByID(charge.ChargeID)
			assert.True(t, dec("3").Equal(c.AmountPaid))
			assertChargeInvariant(t, c)
		})
	}
}

func TestAddCharge_Validation(t *testing.T) {
	a := fundedAccount(t)
	due := day(2024, 1, 15)

	inactive := chargeDefinition("inactive", domain.ChargeSpecifiedDueDate, "5")
	inactive.Active = false
	otherCurrency := chargeDefinition("eur", domain.ChargeSpecifiedDueDate, "5")
	otherCurrency.CurrencyCode = "EUR"

	tests := []struct {
		name string
		cmd  domain.AddChargeCommand
	}{
		{"inactive definition", domain.AddChargeCommand{Definition: inactive, DueDate: &due}},
		{"currency mismatch", domain.AddChargeCommand{Definition: otherCurrency, DueDate: &due}},
		{"missing due date", domain.AddChargeCommand{Definition: chargeDefinition("due", domain.ChargeSpecifiedDueDate, "5")}},
		{"due date not applicable", domain.AddChargeCommand{Definition: chargeDefinition("wd", domain.ChargeWithdrawalFee, "5"), DueDate: &due}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.AddCharge(pcOn(day(2024, 1, 2)), tt.cmd)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestAddCharge_CurrencyMismatchLeavesAccountUntouched(t *testing.T) {
	a := fundedAccount(t)
	due := day(2024, 1, 15)
	def := chargeDefinition("eur", domain.ChargeSpecifiedDueDate, "5")
	def.CurrencyCode = "EUR"
	override := dec("7")

	_, err := a.AddCharge(pcOn(day(2024, 1, 2)), domain.AddChargeCommand{Definition: def, DueDate: &due, Amount: &override})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "currencyCode", domainErr.Parameter)
	assert.Equal(t, "EUR", domainErr.Value)
	assert.Empty(t, a.Charges)
}
