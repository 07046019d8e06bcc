package domain

import (
	"slices"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a savings account.
type AccountStatus string

const (
	StatusSubmitted          AccountStatus = "SUBMITTED_AND_PENDING_APPROVAL"
	StatusApproved           AccountStatus = "APPROVED"
	StatusActive             AccountStatus = "ACTIVE"
	StatusTransferInProgress AccountStatus = "TRANSFER_IN_PROGRESS"
	StatusTransferOnHold     AccountStatus = "TRANSFER_ON_HOLD"
	StatusWithdrawn          AccountStatus = "WITHDRAWN"
	StatusRejected           AccountStatus = "REJECTED"
	StatusClosed             AccountStatus = "CLOSED"
	StatusMatured            AccountStatus = "MATURED"
)

// IsTerminal reports whether the status rejects every further ledger mutation.
func (s AccountStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusRejected || s == StatusWithdrawn
}

// DepositAccountType distinguishes plain savings from term deposit products.
type DepositAccountType string

const (
	DepositTypeSavings   DepositAccountType = "SAVINGS"
	DepositTypeFixed     DepositAccountType = "FIXED_DEPOSIT"
	DepositTypeRecurring DepositAccountType = "RECURRING_DEPOSIT"
)

// IsTermDeposit reports whether the product has a maturity date.
func (t DepositAccountType) IsTermDeposit() bool {
	return t == DepositTypeFixed || t == DepositTypeRecurring
}

// InterestTerms configures the interest engine for one account.
type InterestTerms struct {
	NominalAnnualRate decimal.Decimal   `json:"nominalAnnualRate"` // percent, 12 means 12%
	PostingPeriod     PostingPeriodType `json:"postingPeriod"`
	DaysInYear        int               `json:"daysInYear"` // 360 or 365
}

// OverdraftTerms bounds how far below zero the balance may go when overdraft is permitted.
type OverdraftTerms struct {
	AllowOverdraft bool            `json:"allowOverdraft"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
}

// PrematureClosureTerms apply to the partial posting period when an account is closed early.
type PrematureClosureTerms struct {
	WithholdInterest bool            `json:"withholdInterest"`
	PenalRate        decimal.Decimal `json:"penalRate"` // percent, deducted from the nominal rate
}

// AccountSummary holds totals derived from the ledger.
type AccountSummary struct {
	AccountBalance         decimal.Decimal `json:"accountBalance"`
	TotalDeposits          decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals       decimal.Decimal `json:"totalWithdrawals"`
	TotalInterestPosted    decimal.Decimal `json:"totalInterestPosted"`
	TotalFeeCharges        decimal.Decimal `json:"totalFeeCharges"`
	TotalPenaltyCharges    decimal.Decimal `json:"totalPenaltyCharges"`
	TotalInterestEarned    decimal.Decimal `json:"totalInterestEarned"`
	InterestCalculatedAsOf *time.Time      `json:"interestCalculatedAsOf,omitempty"`
}

// SavingsAccount is the aggregate: it owns its transactions and charges and
// refers to everything else by id.
type SavingsAccount struct {
	AccountID                 string                `json:"accountID"`
	AccountNumber             string                `json:"accountNumber"`
	ProductID                 string                `json:"productID"`
	DepositType               DepositAccountType    `json:"depositType"`
	Status                    AccountStatus         `json:"status"`
	OfficeID                  string                `json:"officeID"`
	ClientID                  *string               `json:"clientID,omitempty"`
	GroupID                   *string               `json:"groupID,omitempty"`
	FieldOfficerID            *string               `json:"fieldOfficerID,omitempty"`
	Currency                  CurrencyData          `json:"currency"`
	Interest                  InterestTerms         `json:"interest"`
	Overdraft                 OverdraftTerms        `json:"overdraft"`
	PrematureClosure          PrematureClosureTerms `json:"prematureClosure"`
	MinRequiredOpeningBalance decimal.Decimal       `json:"minRequiredOpeningBalance"`
	SubmittedOn               time.Time             `json:"submittedOn"`
	ActivatedOn               *time.Time            `json:"activatedOn,omitempty"`
	ClosedOn                  *time.Time            `json:"closedOn,omitempty"`
	MaturityDate              *time.Time            `json:"maturityDate,omitempty"`
	InterestPostedTill        *time.Time            `json:"interestPostedTill,omitempty"`
	Transactions              []Transaction         `json:"transactions"`
	Charges                   []Charge              `json:"charges"`
	Summary                   AccountSummary        `json:"summary"`
	Version                   int64                 `json:"version"`
	AuditFields
}

// ApplyUnit runs fn against the account. If fn fails the account is restored
// to its state before the call.
func (a *SavingsAccount) ApplyUnit(fn func(*SavingsAccount) error) error {
	snapshot := a.clone()
	if err := fn(a); err != nil {
		*a = snapshot
		return err
	}
	return nil
}

// clone copies the owned collections. Pointer fields are only ever replaced,
// never written through, so sharing them is safe.
func (a *SavingsAccount) clone() SavingsAccount {
	c := *a
	c.Transactions = slices.Clone(a.Transactions)
	c.Charges = slices.Clone(a.Charges)
	return c
}

// Balance is the sum of the signed amounts of all active transactions.
func (a *SavingsAccount) Balance() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range a.Transactions {
		sum = sum.Add(t.effect())
	}
	return sum
}

// BalanceMoney is Balance tagged with the account currency.
func (a *SavingsAccount) BalanceMoney() Money {
	return NewMoney(a.Balance(), a.Currency.Code)
}

// FindTransaction returns the index of the transaction with the given id or -1.
func (a *SavingsAccount) FindTransaction(transactionID string) int {
	return slices.IndexFunc(a.Transactions, func(t Transaction) bool {
		return t.TransactionID == transactionID
	})
}

// TransactionByID returns a copy of the transaction with the given id.
func (a *SavingsAccount) TransactionByID(transactionID string) (Transaction, bool) {
	idx := a.FindTransaction(transactionID)
	if idx < 0 {
		return Transaction{}, false
	}
	return a.Transactions[idx], true
}

func (a *SavingsAccount) nextSequence() int64 {
	var max int64
	for _, t := range a.Transactions {
		if t.Sequence > max {
			max = t.Sequence
		}
	}
	return max + 1
}

type appendOptions struct {
	sequence        int64
	createdAt       *time.Time
	paymentDetailID *string
	chargeID        *string
	transferLinked  bool
}

// appendTransaction inserts a new active transaction in (date, sequence) order
// and recomputes running balances from the insertion point forward.
func (a *SavingsAccount) appendTransaction(pc ProcessingContext, txnType TransactionType, date time.Time, amount decimal.Decimal, opts appendOptions) Transaction {
	seq := opts.sequence
	if seq == 0 {
		seq = a.nextSequence()
	}
	txn := Transaction{
		TransactionID:    uuid.NewString(),
		SavingsAccountID: a.AccountID,
		OfficeID:         a.OfficeID,
		Type:             txnType,
		Amount:           amount,
		TransactionDate:  DateOf(date),
		Sequence:         seq,
		Status:           TxnStatusActive,
		PaymentDetailID:  opts.paymentDetailID,
		ChargeID:         opts.chargeID,
		TransferLinked:   opts.transferLinked,
		AuditFields:      pc.audit(),
	}
	if opts.createdAt != nil {
		txn.CreatedAt = *opts.createdAt
	}

	idx := len(a.Transactions)
	for i, existing := range a.Transactions {
		if txn.before(existing) {
			idx = i
			break
		}
	}
	a.Transactions = slices.Insert(a.Transactions, idx, txn)
	a.recalculateRunningBalancesFrom(idx)
	return a.Transactions[idx]
}

// recalculateRunningBalancesFrom replays the ledger from idx to the end.
func (a *SavingsAccount) recalculateRunningBalancesFrom(idx int) {
	if idx < 0 {
		idx = 0
	}
	running := decimal.Zero
	if idx > 0 {
		running = a.Transactions[idx-1].RunningBalance
	}
	for i := idx; i < len(a.Transactions); i++ {
		running = running.Add(a.Transactions[i].effect())
		a.Transactions[i].RunningBalance = running
	}
	a.refreshSummary()
}

// RecalculateRunningBalances replays the whole ledger.
func (a *SavingsAccount) RecalculateRunningBalances() {
	a.recalculateRunningBalancesFrom(0)
}

func (a *SavingsAccount) refreshSummary() {
	s := AccountSummary{
		TotalInterestEarned:    a.Summary.TotalInterestEarned,
		InterestCalculatedAsOf: a.Summary.InterestCalculatedAsOf,
	}
	for _, t := range a.Transactions {
		if t.IsReversed() {
			continue
		}
		switch t.Type {
		case TxnDeposit:
			s.TotalDeposits = s.TotalDeposits.Add(t.Amount)
		case TxnWithdrawal:
			s.TotalWithdrawals = s.TotalWithdrawals.Add(t.Amount)
		case TxnInterestPosting:
			s.TotalInterestPosted = s.TotalInterestPosted.Add(t.Amount)
		case TxnPayCharge:
			if c := a.chargeFor(t); c != nil && c.Definition.Penalty {
				s.TotalPenaltyCharges = s.TotalPenaltyCharges.Add(t.Amount)
			} else {
				s.TotalFeeCharges = s.TotalFeeCharges.Add(t.Amount)
			}
		}
		s.AccountBalance = s.AccountBalance.Add(t.SignedAmount())
	}
	a.Summary = s
}

func (a *SavingsAccount) chargeFor(t Transaction) *Charge {
	if t.ChargeID == nil {
		return nil
	}
	idx := a.FindCharge(*t.ChargeID)
	if idx < 0 {
		return nil
	}
	return &a.Charges[idx]
}

// lastActiveTransactionDate returns the date of the latest active transaction.
func (a *SavingsAccount) lastActiveTransactionDate() *time.Time {
	for i := len(a.Transactions) - 1; i >= 0; i-- {
		if !a.Transactions[i].IsReversed() {
			d := a.Transactions[i].TransactionDate
			return &d
		}
	}
	return nil
}

func (a *SavingsAccount) touch(pc ProcessingContext) {
	a.LastUpdatedAt = pc.Now
	a.LastUpdatedBy = pc.UserID
}

func (a *SavingsAccount) requireStatus(action string, allowed ...AccountStatus) error {
	if slices.Contains(allowed, a.Status) {
		return nil
	}
	return apperrors.NewNotActiveError(a.AccountID,
		"error.msg.savingsaccount."+action+".not.allowed."+string(a.Status),
		action+" is not allowed while the account is "+string(a.Status))
}

func (a *SavingsAccount) requireNotFixedDeposit(action string) error {
	if a.DepositType != DepositTypeFixed {
		return nil
	}
	return apperrors.NewNotActiveError(a.AccountID,
		"error.msg.fixeddeposit.account."+action+".not.allowed",
		action+" is not allowed on a fixed deposit account")
}

func (a *SavingsAccount) validateTransactionCommand(pc ProcessingContext, cmd TransactionCommand) error {
	if !cmd.Amount.IsPositive() {
		return apperrors.NewValidationError("transactionAmount", cmd.Amount.String(), "must be greater than zero")
	}
	return a.validateTransactionDate(pc, "transactionDate", cmd.TransactionDate)
}

func (a *SavingsAccount) validateTransactionDate(pc ProcessingContext, parameter string, date time.Time) error {
	d := DateOf(date)
	if d.After(pc.Today) {
		return apperrors.NewValidationError(parameter, d.Format(time.DateOnly), "cannot be in the future")
	}
	if a.ActivatedOn != nil && d.Before(*a.ActivatedOn) {
		return apperrors.NewValidationError(parameter, d.Format(time.DateOnly), "cannot be before the activation date")
	}
	return nil
}
