package domain

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ActivationCommand activates a submitted or approved account.
type ActivationCommand struct {
	ActivatedOn time.Time
	// TransferFromAccountID marks the opening balance as funded by another account.
	TransferFromAccountID *string
}

// CloseCommand closes an account and pays out its remaining balance.
type CloseCommand struct {
	ClosedOn        time.Time
	PaymentDetailID *string
	Note            string
}

// Activate flips the account to ACTIVE. A configured opening balance becomes
// the first deposit and activation fees are collected on the same date.
func (a *SavingsAccount) Activate(pc ProcessingContext, cmd ActivationCommand) error {
	if err := a.requireStatus("activate", StatusSubmitted, StatusApproved); err != nil {
		return err
	}
	date := DateOf(cmd.ActivatedOn)
	if date.After(pc.Today) {
		return apperrors.NewValidationError("activatedOnDate", date.Format(time.DateOnly), "cannot be in the future")
	}
	if date.Before(DateOf(a.SubmittedOn)) {
		return apperrors.NewValidationError("activatedOnDate", date.Format(time.DateOnly), "cannot be before the submitted date")
	}

	a.Status = StatusActive
	a.ActivatedOn = &date
	a.touch(pc)

	if a.MinRequiredOpeningBalance.IsPositive() {
		a.appendTransaction(pc, TxnDeposit, date, a.MinRequiredOpeningBalance, appendOptions{
			transferLinked: cmd.TransferFromAccountID != nil,
		})
	}
	a.collectActivationCharges(pc, date)

	a.recomputeInterest(pc, date)
	return a.validateBalance("activation")
}

// Deposit appends a deposit. A back-dated deposit is slotted into date order
// and every later running balance is recomputed.
func (a *SavingsAccount) Deposit(pc ProcessingContext, cmd TransactionCommand) (Transaction, error) {
	if err := a.requireNotFixedDeposit("deposit"); err != nil {
		return Transaction{}, err
	}
	if err := a.requireStatus("deposit", StatusActive); err != nil {
		return Transaction{}, err
	}
	if err := a.validateTransactionCommand(pc, cmd); err != nil {
		return Transaction{}, err
	}

	txn := a.appendTransaction(pc, TxnDeposit, cmd.TransactionDate, cmd.Amount, appendOptions{
		paymentDetailID: cmd.PaymentDetailID,
	})
	a.touch(pc)

	a.recomputeInterest(pc, txn.TransactionDate)
	if err := a.validateBalance("deposit"); err != nil {
		return Transaction{}, err
	}
	return a.mustTransaction(txn.TransactionID), nil
}

// Withdraw appends a withdrawal and any withdrawal fees. The balance may only
// go below zero when allowOverdraft is set and the product permits overdraft.
func (a *SavingsAccount) Withdraw(pc ProcessingContext, cmd TransactionCommand, allowOverdraft bool) (Transaction, error) {
	if err := a.requireNotFixedDeposit("withdrawal"); err != nil {
		return Transaction{}, err
	}
	if err := a.requireStatus("withdrawal", StatusActive); err != nil {
		return Transaction{}, err
	}
	if err := a.validateTransactionCommand(pc, cmd); err != nil {
		return Transaction{}, err
	}

	txn := a.appendTransaction(pc, TxnWithdrawal, cmd.TransactionDate, cmd.Amount, appendOptions{
		paymentDetailID: cmd.PaymentDetailID,
	})
	a.applyWithdrawalFees(pc, txn.TransactionDate, cmd.Amount)
	a.touch(pc)

	a.recomputeInterest(pc, txn.TransactionDate)
	if err := a.ValidateBalanceNotNegative("withdrawal", allowOverdraft); err != nil {
		return Transaction{}, err
	}
	return a.mustTransaction(txn.TransactionID), nil
}

// UndoTransaction marks a transaction reversed. History is kept; the reversed
// record stays in the ledger with a zero effect.
func (a *SavingsAccount) UndoTransaction(pc ProcessingContext, transactionID string, allowTransferModification bool) (Transaction, error) {
	if err := a.requireNotFixedDeposit("undo"); err != nil {
		return Transaction{}, err
	}
	if err := a.requireStatus("undo", StatusActive); err != nil {
		return Transaction{}, err
	}
	idx := a.FindTransaction(transactionID)
	if idx < 0 {
		return Transaction{}, apperrors.NewNotFoundError("savingsaccount.transaction", transactionID)
	}
	target := a.Transactions[idx]
	if target.IsReversed() {
		return Transaction{}, apperrors.NewAlreadyReversedError(transactionID)
	}
	if target.Type.IsTransferMarker() || (target.TransferLinked && !allowTransferModification) {
		return Transaction{}, apperrors.NewTransferLinkedError(transactionID)
	}
	if target.Type == TxnInterestPosting {
		return Transaction{}, apperrors.NewValidationError("transactionId", transactionID, "interest postings are maintained by interest posting and cannot be undone")
	}

	if err := a.Transactions[idx].reverse(pc); err != nil {
		return Transaction{}, err
	}
	if target.Type == TxnPayCharge {
		a.restoreChargePayment(pc, target)
	}
	a.recalculateRunningBalancesFrom(idx)
	a.touch(pc)

	a.recomputeInterest(pc, target.TransactionDate)
	if err := a.validateBalance("undo"); err != nil {
		return Transaction{}, err
	}
	return a.mustTransaction(transactionID), nil
}

// AdjustTransaction replaces a deposit or withdrawal with a new one of the same
// type. The replacement keeps the original creation sequence and timestamp so
// it sorts where the original did among same-day transactions.
// Calendar rules are not applied to the new date.
func (a *SavingsAccount) AdjustTransaction(pc ProcessingContext, transactionID string, cmd TransactionCommand) (Transaction, error) {
	if err := a.requireNotFixedDeposit("adjust"); err != nil {
		return Transaction{}, err
	}
	if err := a.requireStatus("adjust", StatusActive); err != nil {
		return Transaction{}, err
	}
	idx := a.FindTransaction(transactionID)
	if idx < 0 {
		return Transaction{}, apperrors.NewNotFoundError("savingsaccount.transaction", transactionID)
	}
	original := a.Transactions[idx]
	if original.Type != TxnDeposit && original.Type != TxnWithdrawal {
		return Transaction{}, apperrors.NewValidationError("transactionId", transactionID, "only deposits and withdrawals can be adjusted")
	}
	if original.IsReversed() {
		return Transaction{}, apperrors.NewAlreadyReversedError(transactionID)
	}
	if original.TransferLinked {
		return Transaction{}, apperrors.NewTransferLinkedError(transactionID)
	}
	if err := a.validateTransactionCommand(pc, cmd); err != nil {
		return Transaction{}, err
	}

	if err := a.Transactions[idx].reverse(pc); err != nil {
		return Transaction{}, err
	}
	a.recalculateRunningBalancesFrom(idx)

	createdAt := original.CreatedAt
	replacement := a.appendTransaction(pc, original.Type, cmd.TransactionDate, cmd.Amount, appendOptions{
		sequence:        original.Sequence,
		createdAt:       &createdAt,
		paymentDetailID: cmd.PaymentDetailID,
	})
	a.touch(pc)

	a.recomputeInterest(pc, original.TransactionDate, replacement.TransactionDate)
	if err := a.validateBalance("adjustment"); err != nil {
		return Transaction{}, err
	}
	return a.mustTransaction(replacement.TransactionID), nil
}

// Close posts interest through the closing date, pays out the remaining
// balance and sets the account to CLOSED. Matured term deposits can be closed
// too; their interest was posted at maturity.
func (a *SavingsAccount) Close(pc ProcessingContext, cmd CloseCommand) (*Transaction, error) {
	allowed := []AccountStatus{StatusActive}
	if a.DepositType.IsTermDeposit() {
		allowed = append(allowed, StatusMatured)
	}
	if err := a.requireStatus("close", allowed...); err != nil {
		return nil, err
	}
	return a.close(pc, cmd, nil)
}

// PrematureClose closes a term deposit before maturity. The partial posting
// period is paid at the reduced rate or not at all, per PrematureClosure.
func (a *SavingsAccount) PrematureClose(pc ProcessingContext, cmd CloseCommand) (*Transaction, error) {
	if err := a.requireStatus("prematureclose", StatusActive); err != nil {
		return nil, err
	}
	closedOn := DateOf(cmd.ClosedOn)
	if a.MaturityDate != nil && !closedOn.Before(*a.MaturityDate) {
		return nil, apperrors.NewValidationError("closedOnDate", closedOn.Format(time.DateOnly), "is on or after the maturity date")
	}
	terms := a.PrematureClosure
	return a.close(pc, cmd, &terms)
}

func (a *SavingsAccount) close(pc ProcessingContext, cmd CloseCommand, premature *PrematureClosureTerms) (*Transaction, error) {
	closedOn := DateOf(cmd.ClosedOn)
	if err := a.validateTransactionDate(pc, "closedOnDate", closedOn); err != nil {
		return nil, err
	}
	if last := a.lastActiveTransactionDate(); last != nil && closedOn.Before(*last) {
		return nil, apperrors.NewValidationError("closedOnDate", closedOn.Format(time.DateOnly), "cannot be before the last transaction date")
	}

	if a.Status != StatusMatured {
		a.postInterest(pc, CommitPrecision, closedOn, true, premature)
	}

	balance := a.Balance()
	if balance.IsNegative() {
		return nil, apperrors.NewNegativeBalanceError(a.AccountID, "account closure")
	}
	var closing *Transaction
	if balance.IsPositive() {
		t := a.appendTransaction(pc, TxnWithdrawal, closedOn, balance, appendOptions{
			paymentDetailID: cmd.PaymentDetailID,
		})
		closing = &t
	}
	if err := a.validateBalance("account closure"); err != nil {
		return nil, err
	}

	a.Status = StatusClosed
	a.ClosedOn = &closedOn
	a.touch(pc)
	return closing, nil
}

// ValidateBalanceNotNegative replays every active transaction in order and
// fails if any running total drops below the floor. The floor is zero unless
// overdraft is requested and the product allows it.
func (a *SavingsAccount) ValidateBalanceNotNegative(action string, allowOverdraft bool) error {
	floor := decimal.Zero
	if allowOverdraft && a.Overdraft.AllowOverdraft {
		floor = a.Overdraft.OverdraftLimit.Abs().Neg()
	}
	running := decimal.Zero
	for _, t := range a.Transactions {
		running = running.Add(t.effect())
		if running.LessThan(floor) {
			return apperrors.NewNegativeBalanceError(a.AccountID, action)
		}
	}
	return nil
}

// validateBalance checks against the product's own overdraft allowance so
// earlier permitted overdrafts do not block unrelated operations.
func (a *SavingsAccount) validateBalance(action string) error {
	return a.ValidateBalanceNotNegative(action, a.Overdraft.AllowOverdraft)
}

func (a *SavingsAccount) mustTransaction(transactionID string) Transaction {
	t, _ := a.TransactionByID(transactionID)
	return t
}
