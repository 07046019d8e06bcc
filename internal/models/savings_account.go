package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsAccount is the savings_accounts row. Terms and summary totals are
// flattened into columns; transactions and charges live in their own tables.
type SavingsAccount struct {
	AccountID                 string          `db:"account_id"`
	AccountNumber             string          `db:"account_number"`
	ProductID                 string          `db:"product_id"`
	DepositType               string          `db:"deposit_type"`
	Status                    string          `db:"status"`
	OfficeID                  string          `db:"office_id"`
	ClientID                  *string         `db:"client_id"`
	GroupID                   *string         `db:"group_id"`
	FieldOfficerID            *string         `db:"field_officer_id"`
	CurrencyCode              string          `db:"currency_code"`
	NominalAnnualRate         decimal.Decimal `db:"nominal_annual_rate"`
	PostingPeriod             string          `db:"posting_period"`
	DaysInYear                int             `db:"days_in_year"`
	AllowOverdraft            bool            `db:"allow_overdraft"`
	OverdraftLimit            decimal.Decimal `db:"overdraft_limit"`
	WithholdInterest          bool            `db:"withhold_interest"`
	PenalRate                 decimal.Decimal `db:"penal_rate"`
	MinRequiredOpeningBalance decimal.Decimal `db:"min_required_opening_balance"`
	SubmittedOn               time.Time       `db:"submitted_on"`
	ActivatedOn               *time.Time      `db:"activated_on"`
	ClosedOn                  *time.Time      `db:"closed_on"`
	MaturityDate              *time.Time      `db:"maturity_date"`
	InterestPostedTill        *time.Time      `db:"interest_posted_till"`
	AccountBalance            decimal.Decimal `db:"account_balance"`
	TotalDeposits             decimal.Decimal `db:"total_deposits"`
	TotalWithdrawals          decimal.Decimal `db:"total_withdrawals"`
	TotalInterestPosted       decimal.Decimal `db:"total_interest_posted"`
	TotalFeeCharges           decimal.Decimal `db:"total_fee_charges"`
	TotalPenaltyCharges       decimal.Decimal `db:"total_penalty_charges"`
	TotalInterestEarned       decimal.Decimal `db:"total_interest_earned"`
	InterestCalculatedAsOf    *time.Time      `db:"interest_calculated_as_of"`
	Version                   int64           `db:"version"`
	AuditFields
}

// SavingsTransaction is one savings_transactions row.
type SavingsTransaction struct {
	TransactionID    string          `db:"transaction_id"`
	SavingsAccountID string          `db:"savings_account_id"`
	OfficeID         string          `db:"office_id"`
	TransactionType  string          `db:"transaction_type"`
	Amount           decimal.Decimal `db:"amount"`
	TransactionDate  time.Time       `db:"transaction_date"`
	RunningBalance   decimal.Decimal `db:"running_balance"`
	Sequence         int64           `db:"sequence"`
	Status           string          `db:"status"`
	ReversedOn       *time.Time      `db:"reversed_on"`
	PaymentDetailID  *string         `db:"payment_detail_id"`
	ChargeID         *string         `db:"charge_id"`
	TransferLinked   bool            `db:"transfer_linked"`
	AuditFields
}
