package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID               string          `json:"lineID"`
	GLAccountID          string          `json:"glAccountID"`
	GLAccountType        string          `json:"glAccountType"`
	EntryType            string          `json:"entryType"` // DEBIT or CREDIT
	Amount               decimal.Decimal `json:"amount"`
	SavingsTransactionID string          `json:"savingsTransactionID"`
	TransactionDate      string          `json:"transactionDate"`
	Reversal             bool            `json:"reversal"`
}

// JournalResponse defines the data returned for a journal and its lines.
type JournalResponse struct {
	JournalID        string                `json:"journalID"`
	OfficeID         string                `json:"officeID"`
	SavingsAccountID string                `json:"savingsAccountID"`
	JournalDate      string                `json:"journalDate"`
	CurrencyCode     string                `json:"currencyCode"`
	Status           string                `json:"status"`
	Lines            []JournalLineResponse `json:"lines"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			LineID:               l.LineID,
			GLAccountID:          l.GLAccountID,
			GLAccountType:        string(l.GLAccountType),
			EntryType:            string(l.EntryType),
			Amount:               l.Amount,
			SavingsTransactionID: l.SavingsTransactionID,
			TransactionDate:      l.TransactionDate.Format(DateFormat),
			Reversal:             l.Reversal,
		}
	}
	return JournalResponse{
		JournalID:        j.JournalID,
		OfficeID:         j.OfficeID,
		SavingsAccountID: j.SavingsAccountID,
		JournalDate:      j.JournalDate.Format(DateFormat),
		CurrencyCode:     j.CurrencyCode,
		Status:           string(j.Status),
		Lines:            lines,
		CreatedAt:        j.CreatedAt,
		CreatedBy:        j.CreatedBy,
	}
}
