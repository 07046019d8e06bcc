package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeDefinition is a charge_definitions catalog row.
type ChargeDefinition struct {
	ChargeDefinitionID string          `db:"charge_definition_id"`
	Name               string          `db:"name"`
	CurrencyCode       string          `db:"currency_code"`
	TimeType           string          `db:"time_type"`
	CalculationType    string          `db:"calculation_type"`
	Amount             decimal.Decimal `db:"amount"`
	Penalty            bool            `db:"penalty"`
	FeeInterval        int             `db:"fee_interval"`
	Active             bool            `db:"active"`
}

// SavingsCharge is a savings_charges row. The definition columns are a
// snapshot taken when the charge was attached.
type SavingsCharge struct {
	ChargeID          string          `db:"charge_id"`
	SavingsAccountID  string          `db:"savings_account_id"`
	Definition        ChargeDefinition
	DueDate           *time.Time      `db:"due_date"`
	InstallmentAmount decimal.Decimal `db:"installment_amount"`
	Amount            decimal.Decimal `db:"amount"`
	AmountPaid        decimal.Decimal `db:"amount_paid"`
	AmountWaived      decimal.Decimal `db:"amount_waived"`
	Active            bool            `db:"active"`
	AuditFields
}
