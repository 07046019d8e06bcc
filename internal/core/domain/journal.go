package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GLAccountType defines the fundamental accounting type of a general ledger account.
type GLAccountType string

const (
	Asset     GLAccountType = "ASSET"
	Liability GLAccountType = "LIABILITY"
	Equity    GLAccountType = "EQUITY"
	Income    GLAccountType = "INCOME"
	Expense   GLAccountType = "EXPENSE"
)

// EntryType indicates whether a journal line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// AccountingRule selects whether a savings product produces journal entries.
type AccountingRule string

const (
	AccountingNone AccountingRule = "NONE"
	AccountingCash AccountingRule = "CASH_BASED"
)

// GLAccountRef is a general ledger account as referenced by a product mapping.
type GLAccountRef struct {
	GLAccountID string        `json:"glAccountID"`
	Type        GLAccountType `json:"type"`
}

// GLMapping is a savings product's chart-of-accounts wiring.
type GLMapping struct {
	ProductID           string         `json:"productID"`
	AccountingRule      AccountingRule `json:"accountingRule"`
	SavingsReference    GLAccountRef   `json:"savingsReference"` // cash / fund source
	SavingsControl      GLAccountRef   `json:"savingsControl"`   // deposit liability
	InterestOnSavings   GLAccountRef   `json:"interestOnSavings"`
	IncomeFromFees      GLAccountRef   `json:"incomeFromFees"`
	IncomeFromPenalties GLAccountRef   `json:"incomeFromPenalties"`
	TransfersSuspense   GLAccountRef   `json:"transfersSuspense"`
}

// Journal is one balanced batch of lines, produced per unit of work.
type Journal struct {
	JournalID        string        `json:"journalID"`
	OfficeID         string        `json:"officeID"`
	SavingsAccountID string        `json:"savingsAccountID"`
	JournalDate      time.Time     `json:"journalDate"`
	CurrencyCode     string        `json:"currencyCode"`
	Status           JournalStatus `json:"status"`
	Lines            []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is a single debit or credit against one GL account.
type JournalLine struct {
	LineID               string          `json:"lineID"`
	JournalID            string          `json:"journalID"`
	GLAccountID          string          `json:"glAccountID"`
	GLAccountType        GLAccountType   `json:"glAccountType"`
	EntryType            EntryType       `json:"entryType"`
	Amount               decimal.Decimal `json:"amount"` // Positive value
	SavingsTransactionID string          `json:"savingsTransactionID"`
	TransactionDate      time.Time       `json:"transactionDate"`
	Reversal             bool            `json:"reversal"`
}
