package mapping

import (
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/models"
)

// ToModelSavingsAccount flattens a domain SavingsAccount into its row.
// Transactions and charges are mapped separately.
func ToModelSavingsAccount(d domain.SavingsAccount) models.SavingsAccount {
	return models.SavingsAccount{
		AccountID:                 d.AccountID,
		AccountNumber:             d.AccountNumber,
		ProductID:                 d.ProductID,
		DepositType:               string(d.DepositType),
		Status:                    string(d.Status),
		OfficeID:                  d.OfficeID,
		ClientID:                  d.ClientID,
		GroupID:                   d.GroupID,
		FieldOfficerID:            d.FieldOfficerID,
		CurrencyCode:              d.Currency.Code,
		NominalAnnualRate:         d.Interest.NominalAnnualRate,
		PostingPeriod:             string(d.Interest.PostingPeriod),
		DaysInYear:                d.Interest.DaysInYear,
		AllowOverdraft:            d.Overdraft.AllowOverdraft,
		OverdraftLimit:            d.Overdraft.OverdraftLimit,
		WithholdInterest:          d.PrematureClosure.WithholdInterest,
		PenalRate:                 d.PrematureClosure.PenalRate,
		MinRequiredOpeningBalance: d.MinRequiredOpeningBalance,
		SubmittedOn:               d.SubmittedOn,
		ActivatedOn:               d.ActivatedOn,
		ClosedOn:                  d.ClosedOn,
		MaturityDate:              d.MaturityDate,
		InterestPostedTill:        d.InterestPostedTill,
		AccountBalance:            d.Summary.AccountBalance,
		TotalDeposits:             d.Summary.TotalDeposits,
		TotalWithdrawals:          d.Summary.TotalWithdrawals,
		TotalInterestPosted:       d.Summary.TotalInterestPosted,
		TotalFeeCharges:           d.Summary.TotalFeeCharges,
		TotalPenaltyCharges:       d.Summary.TotalPenaltyCharges,
		TotalInterestEarned:       d.Summary.TotalInterestEarned,
		InterestCalculatedAsOf:    d.Summary.InterestCalculatedAsOf,
		Version:                   d.Version,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsAccount rebuilds the aggregate from its rows. Only the
// currency code is known here; callers resolve the rest from the catalog.
func ToDomainSavingsAccount(m models.SavingsAccount, txns []models.SavingsTransaction, charges []models.SavingsCharge) domain.SavingsAccount {
	return domain.SavingsAccount{
		AccountID:      m.AccountID,
		AccountNumber:  m.AccountNumber,
		ProductID:      m.ProductID,
		DepositType:    domain.DepositAccountType(m.DepositType),
		Status:         domain.AccountStatus(m.Status),
		OfficeID:       m.OfficeID,
		ClientID:       m.ClientID,
		GroupID:        m.GroupID,
		FieldOfficerID: m.FieldOfficerID,
		Currency:       domain.CurrencyData{Code: m.CurrencyCode},
		Interest: domain.InterestTerms{
			NominalAnnualRate: m.NominalAnnualRate,
			PostingPeriod:     domain.PostingPeriodType(m.PostingPeriod),
			DaysInYear:        m.DaysInYear,
		},
		Overdraft: domain.OverdraftTerms{
			AllowOverdraft: m.AllowOverdraft,
			OverdraftLimit: m.OverdraftLimit,
		},
		PrematureClosure: domain.PrematureClosureTerms{
			WithholdInterest: m.WithholdInterest,
			PenalRate:        m.PenalRate,
		},
		MinRequiredOpeningBalance: m.MinRequiredOpeningBalance,
		SubmittedOn:               m.SubmittedOn,
		ActivatedOn:               m.ActivatedOn,
		ClosedOn:                  m.ClosedOn,
		MaturityDate:              m.MaturityDate,
		InterestPostedTill:        m.InterestPostedTill,
		Transactions:              ToDomainSavingsTransactionSlice(txns),
		Charges:                   ToDomainSavingsChargeSlice(charges),
		Summary: domain.AccountSummary{
			AccountBalance:         m.AccountBalance,
			TotalDeposits:          m.TotalDeposits,
			TotalWithdrawals:       m.TotalWithdrawals,
			TotalInterestPosted:    m.TotalInterestPosted,
			TotalFeeCharges:        m.TotalFeeCharges,
			TotalPenaltyCharges:    m.TotalPenaltyCharges,
			TotalInterestEarned:    m.TotalInterestEarned,
			InterestCalculatedAsOf: m.InterestCalculatedAsOf,
		},
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSavingsTransaction converts a domain Transaction to its row
func ToModelSavingsTransaction(d domain.Transaction) models.SavingsTransaction {
	return models.SavingsTransaction{
		TransactionID:    d.TransactionID,
		SavingsAccountID: d.SavingsAccountID,
		OfficeID:         d.OfficeID,
		TransactionType:  string(d.Type),
		Amount:           d.Amount,
		TransactionDate:  d.TransactionDate,
		RunningBalance:   d.RunningBalance,
		Sequence:         d.Sequence,
		Status:           string(d.Status),
		ReversedOn:       d.ReversedOn,
		PaymentDetailID:  d.PaymentDetailID,
		ChargeID:         d.ChargeID,
		TransferLinked:   d.TransferLinked,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsTransaction converts a row to a domain Transaction
func ToDomainSavingsTransaction(m models.SavingsTransaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		SavingsAccountID: m.SavingsAccountID,
		OfficeID:         m.OfficeID,
		Type:             domain.TransactionType(m.TransactionType),
		Amount:           m.Amount,
		TransactionDate:  domain.DateOf(m.TransactionDate),
		RunningBalance:   m.RunningBalance,
		Sequence:         m.Sequence,
		Status:           domain.TransactionStatus(m.Status),
		ReversedOn:       m.ReversedOn,
		PaymentDetailID:  m.PaymentDetailID,
		ChargeID:         m.ChargeID,
		TransferLinked:   m.TransferLinked,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSavingsTransactionSlice converts rows to domain Transactions
func ToDomainSavingsTransactionSlice(ms []models.SavingsTransaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSavingsTransaction(m)
	}
	return ds
}
