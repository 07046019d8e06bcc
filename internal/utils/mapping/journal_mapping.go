package mapping

import (
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:        d.JournalID,
		OfficeID:         d.OfficeID,
		SavingsAccountID: d.SavingsAccountID,
		JournalDate:      d.JournalDate,
		CurrencyCode:     d.CurrencyCode,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal and its lines to a domain Journal
func ToDomainJournal(m models.Journal, lines []models.JournalLine) domain.Journal {
	return domain.Journal{
		JournalID:        m.JournalID,
		OfficeID:         m.OfficeID,
		SavingsAccountID: m.SavingsAccountID,
		JournalDate:      m.JournalDate,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.JournalStatus(m.Status),
		Lines:            ToDomainJournalLineSlice(lines),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:               d.LineID,
		JournalID:            d.JournalID,
		GLAccountID:          d.GLAccountID,
		GLAccountType:        string(d.GLAccountType),
		EntryType:            string(d.EntryType),
		Amount:               d.Amount,
		SavingsTransactionID: d.SavingsTransactionID,
		TransactionDate:      d.TransactionDate,
		Reversal:             d.Reversal,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:               m.LineID,
		JournalID:            m.JournalID,
		GLAccountID:          m.GLAccountID,
		GLAccountType:        domain.GLAccountType(m.GLAccountType),
		EntryType:            domain.EntryType(m.EntryType),
		Amount:               m.Amount,
		SavingsTransactionID: m.SavingsTransactionID,
		TransactionDate:      m.TransactionDate,
		Reversal:             m.Reversal,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

func toDomainGLAccountRef(m models.GLAccountRef) domain.GLAccountRef {
	return domain.GLAccountRef{GLAccountID: m.GLAccountID, Type: domain.GLAccountType(m.AccountType)}
}

// ToDomainGLMapping converts a model GLMapping to a domain GLMapping
func ToDomainGLMapping(m models.GLMapping) domain.GLMapping {
	return domain.GLMapping{
		ProductID:           m.ProductID,
		AccountingRule:      domain.AccountingRule(m.AccountingRule),
		SavingsReference:    toDomainGLAccountRef(m.SavingsReference),
		SavingsControl:      toDomainGLAccountRef(m.SavingsControl),
		InterestOnSavings:   toDomainGLAccountRef(m.InterestOnSavings),
		IncomeFromFees:      toDomainGLAccountRef(m.IncomeFromFees),
		IncomeFromPenalties: toDomainGLAccountRef(m.IncomeFromPenalties),
		TransfersSuspense:   toDomainGLAccountRef(m.TransfersSuspense),
	}
}
