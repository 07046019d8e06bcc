package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents one balanced batch of GL lines written by a savings unit of work.
type Journal struct {
	JournalID        string    `db:"journal_id"`
	OfficeID         string    `db:"office_id"`
	SavingsAccountID string    `db:"savings_account_id"`
	JournalDate      time.Time `db:"journal_date"`
	CurrencyCode     string    `db:"currency_code"`
	Status           string    `db:"status"` // POSTED or REVERSED
	AuditFields
}

// JournalLine is a single debit or credit against one GL account.
type JournalLine struct {
	LineID               string          `db:"line_id"`
	JournalID            string          `db:"journal_id"`
	GLAccountID          string          `db:"gl_account_id"`
	GLAccountType        string          `db:"account_type"` // joined from gl_accounts
	EntryType            string          `db:"entry_type"`   // DEBIT or CREDIT
	Amount               decimal.Decimal `db:"amount"`
	SavingsTransactionID string          `db:"savings_transaction_id"`
	TransactionDate      time.Time       `db:"transaction_date"`
	Reversal             bool            `db:"reversal"`
}

// GLAccountRef is a mapped GL account id with its type joined from gl_accounts.
type GLAccountRef struct {
	GLAccountID string
	AccountType string
}

// GLMapping is a gl_mappings row with each referenced account resolved.
type GLMapping struct {
	ProductID           string `db:"product_id"`
	AccountingRule      string `db:"accounting_rule"`
	SavingsReference    GLAccountRef
	SavingsControl      GLAccountRef
	InterestOnSavings   GLAccountRef
	IncomeFromFees      GLAccountRef
	IncomeFromPenalties GLAccountRef
	TransfersSuspense   GLAccountRef
}
