package mapping

import (
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/models"
)

// ToModelPaymentDetail converts a domain PaymentDetail to a model PaymentDetail
func ToModelPaymentDetail(d domain.PaymentDetail) models.PaymentDetail {
	return models.PaymentDetail{
		PaymentDetailID: d.PaymentDetailID,
		PaymentTypeID:   d.PaymentTypeID,
		AccountNumber:   d.AccountNumber,
		CheckNumber:     d.CheckNumber,
		RoutingCode:     d.RoutingCode,
		ReceiptNumber:   d.ReceiptNumber,
		BankNumber:      d.BankNumber,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentDetail converts a model PaymentDetail to a domain PaymentDetail
func ToDomainPaymentDetail(m models.PaymentDetail) domain.PaymentDetail {
	return domain.PaymentDetail{
		PaymentDetailID: m.PaymentDetailID,
		PaymentTypeID:   m.PaymentTypeID,
		AccountNumber:   m.AccountNumber,
		CheckNumber:     m.CheckNumber,
		RoutingCode:     m.RoutingCode,
		ReceiptNumber:   m.ReceiptNumber,
		BankNumber:      m.BankNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
