package domain

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType identifies what a savings transaction records.
type TransactionType string

const (
	TxnDeposit          TransactionType = "DEPOSIT"
	TxnWithdrawal       TransactionType = "WITHDRAWAL"
	TxnInterestPosting  TransactionType = "INTEREST_POSTING"
	TxnPayCharge        TransactionType = "PAY_CHARGE"
	TxnInitiateTransfer TransactionType = "INITIATE_TRANSFER"
	TxnApproveTransfer  TransactionType = "APPROVE_TRANSFER"
	TxnWithdrawTransfer TransactionType = "WITHDRAW_TRANSFER"
)

// IsCredit reports whether the type increases the balance.
func (t TransactionType) IsCredit() bool {
	return t == TxnDeposit || t == TxnInterestPosting
}

// IsDebit reports whether the type decreases the balance.
func (t TransactionType) IsDebit() bool {
	return t == TxnWithdrawal || t == TxnPayCharge
}

// IsTransferMarker reports whether the type is a balance-neutral transfer handshake record.
func (t TransactionType) IsTransferMarker() bool {
	return t == TxnInitiateTransfer || t == TxnApproveTransfer || t == TxnWithdrawTransfer
}

// TransactionStatus is ACTIVE until reversed. REVERSED is final.
type TransactionStatus string

const (
	TxnStatusActive   TransactionStatus = "ACTIVE"
	TxnStatusReversed TransactionStatus = "REVERSED"
)

// Transaction is one record in a savings account's ledger. Apart from its
// status it is never modified after creation.
type Transaction struct {
	TransactionID    string            `json:"transactionID"`
	SavingsAccountID string            `json:"savingsAccountID"`
	OfficeID         string            `json:"officeID"`
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"` // always a positive magnitude
	TransactionDate  time.Time         `json:"transactionDate"`
	RunningBalance   decimal.Decimal   `json:"runningBalance"`
	Sequence         int64             `json:"sequence"`
	Status           TransactionStatus `json:"status"`
	ReversedOn       *time.Time        `json:"reversedOn,omitempty"`
	PaymentDetailID  *string           `json:"paymentDetailID,omitempty"`
	ChargeID         *string           `json:"chargeID,omitempty"`
	TransferLinked   bool              `json:"transferLinked"`
	AuditFields
}

func (t Transaction) IsReversed() bool {
	return t.Status == TxnStatusReversed
}

// SignedAmount is the effect on the balance: positive for credits, negative
// for debits and zero for transfer markers.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch {
	case t.Type.IsCredit():
		return t.Amount
	case t.Type.IsDebit():
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// effect is the signed amount while active and zero once reversed.
func (t Transaction) effect() decimal.Decimal {
	if t.IsReversed() {
		return decimal.Zero
	}
	return t.SignedAmount()
}

// reverse is the only status transition a transaction has.
func (t *Transaction) reverse(pc ProcessingContext) error {
	if t.IsReversed() {
		return apperrors.NewAlreadyReversedError(t.TransactionID)
	}
	reversedOn := pc.Today
	t.Status = TxnStatusReversed
	t.ReversedOn = &reversedOn
	t.LastUpdatedAt = pc.Now
	t.LastUpdatedBy = pc.UserID
	return nil
}

// before orders transactions by date, then by creation sequence.
func (t Transaction) before(o Transaction) bool {
	if !t.TransactionDate.Equal(o.TransactionDate) {
		return t.TransactionDate.Before(o.TransactionDate)
	}
	return t.Sequence < o.Sequence
}

// TransactionCommand carries the caller-supplied fields of a deposit, withdrawal or adjustment.
type TransactionCommand struct {
	TransactionDate time.Time
	Amount          decimal.Decimal
	PaymentDetailID *string
	Note            string
}
