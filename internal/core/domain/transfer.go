package domain

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
)

// Transfer handshake between offices, from this account's side:
//
//	ACTIVE --initiate--> TRANSFER_IN_PROGRESS --reject--> TRANSFER_ON_HOLD
//	TRANSFER_IN_PROGRESS --accept--> ACTIVE
//	TRANSFER_IN_PROGRESS | TRANSFER_ON_HOLD --withdraw--> ACTIVE
//
// Every step except reject leaves a balance-neutral marker transaction.

// InitiateTransfer starts a transfer of the account to another office.
func (a *SavingsAccount) InitiateTransfer(pc ProcessingContext, transferDate time.Time) (Transaction, error) {
	if err := a.requireStatus("transfer.initiate", StatusActive); err != nil {
		return Transaction{}, err
	}
	return a.transferStep(pc, TxnInitiateTransfer, transferDate, StatusTransferInProgress)
}

// RejectTransfer puts an in-progress transfer on hold. The ledger is untouched.
func (a *SavingsAccount) RejectTransfer(pc ProcessingContext) error {
	if err := a.requireStatus("transfer.reject", StatusTransferInProgress); err != nil {
		return err
	}
	a.Status = StatusTransferOnHold
	a.touch(pc)
	return nil
}

// WithdrawTransfer cancels a pending or held transfer.
func (a *SavingsAccount) WithdrawTransfer(pc ProcessingContext, transferDate time.Time) (Transaction, error) {
	if err := a.requireStatus("transfer.withdraw", StatusTransferInProgress, StatusTransferOnHold); err != nil {
		return Transaction{}, err
	}
	return a.transferStep(pc, TxnWithdrawTransfer, transferDate, StatusActive)
}

// AcceptTransfer completes the transfer: the account moves to destinationOfficeID
// and, when given, to a new field officer.
func (a *SavingsAccount) AcceptTransfer(pc ProcessingContext, transferDate time.Time, destinationOfficeID string, fieldOfficerID *string) (Transaction, error) {
	if err := a.requireStatus("transfer.accept", StatusTransferInProgress); err != nil {
		return Transaction{}, err
	}
	if destinationOfficeID == "" {
		return Transaction{}, apperrors.NewValidationError("destinationOfficeId", destinationOfficeID, "is required")
	}
	a.OfficeID = destinationOfficeID
	if fieldOfficerID != nil {
		officer := *fieldOfficerID
		a.FieldOfficerID = &officer
	}
	return a.transferStep(pc, TxnApproveTransfer, transferDate, StatusActive)
}

func (a *SavingsAccount) transferStep(pc ProcessingContext, txnType TransactionType, transferDate time.Time, next AccountStatus) (Transaction, error) {
	date := DateOf(transferDate)
	if err := a.validateTransactionDate(pc, "transferDate", date); err != nil {
		return Transaction{}, err
	}
	if last := a.lastActiveTransactionDate(); last != nil && date.Before(*last) {
		return Transaction{}, apperrors.NewValidationError("transferDate", date.Format(time.DateOnly), "cannot be before the last transaction date")
	}

	// markers carry the balance as a positive magnitude through transfer suspense
	if a.Balance().IsNegative() {
		return Transaction{}, apperrors.NewNegativeBalanceError(a.AccountID, "transfer of an overdrawn account")
	}

	txn := a.appendTransaction(pc, txnType, date, a.Balance(), appendOptions{transferLinked: true})
	a.Status = next
	a.touch(pc)
	a.CalculateInterestUsing(EphemeralPrecision, date)
	return txn, nil
}
