package mapping

import (
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/models"
)

// ToModelChargeDefinition converts a domain ChargeDefinition to a model ChargeDefinition
func ToModelChargeDefinition(d domain.ChargeDefinition) models.ChargeDefinition {
	return models.ChargeDefinition{
		ChargeDefinitionID: d.ChargeDefinitionID,
		Name:               d.Name,
		CurrencyCode:       d.CurrencyCode,
		TimeType:           string(d.TimeType),
		CalculationType:    string(d.CalculationType),
		Amount:             d.Amount,
		Penalty:            d.Penalty,
		FeeInterval:        d.FeeInterval,
		Active:             d.Active,
	}
}

// ToDomainChargeDefinition converts a model ChargeDefinition to a domain ChargeDefinition
func ToDomainChargeDefinition(m models.ChargeDefinition) domain.ChargeDefinition {
	return domain.ChargeDefinition{
		ChargeDefinitionID: m.ChargeDefinitionID,
		Name:               m.Name,
		CurrencyCode:       m.CurrencyCode,
		TimeType:           domain.ChargeTimeType(m.TimeType),
		CalculationType:    domain.ChargeCalculationType(m.CalculationType),
		Amount:             m.Amount,
		Penalty:            m.Penalty,
		FeeInterval:        m.FeeInterval,
		Active:             m.Active,
	}
}

// ToModelSavingsCharge converts a domain Charge to its row
func ToModelSavingsCharge(d domain.Charge) models.SavingsCharge {
	return models.SavingsCharge{
		ChargeID:          d.ChargeID,
		SavingsAccountID:  d.SavingsAccountID,
		Definition:        ToModelChargeDefinition(d.Definition),
		DueDate:           d.DueDate,
		InstallmentAmount: d.InstallmentAmount,
		Amount:            d.Amount,
		AmountPaid:        d.AmountPaid,
		AmountWaived:      d.AmountWaived,
		Active:            d.Active,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSavingsCharge converts a row to a domain Charge
func ToDomainSavingsCharge(m models.SavingsCharge) domain.Charge {
	return domain.Charge{
		ChargeID:          m.ChargeID,
		SavingsAccountID:  m.SavingsAccountID,
		Definition:        ToDomainChargeDefinition(m.Definition),
		DueDate:           m.DueDate,
		InstallmentAmount: m.InstallmentAmount,
		Amount:            m.Amount,
		AmountPaid:        m.AmountPaid,
		AmountWaived:      m.AmountWaived,
		Active:            m.Active,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSavingsChargeSlice converts rows to domain Charges
func ToDomainSavingsChargeSlice(ms []models.SavingsCharge) []domain.Charge {
	ds := make([]domain.Charge, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSavingsCharge(m)
	}
	return ds
}
