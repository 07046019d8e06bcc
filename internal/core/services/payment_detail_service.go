package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// PaymentDetailService stores payment instrument details alongside the ledger change.
type PaymentDetailService struct {
	BaseService
	paymentDetailRepo portsrepo.PaymentDetailRepository
}

// NewPaymentDetailService creates the payment instrument capture service.
func NewPaymentDetailService(paymentDetailRepo portsrepo.PaymentDetailRepository) *PaymentDetailService {
	return &PaymentDetailService{paymentDetailRepo: paymentDetailRepo}
}

var _ portssvc.PaymentInstrumentCapture = (*PaymentDetailService)(nil)

func (s *PaymentDetailService) CapturePaymentDetail(ctx context.Context, tx pgx.Tx, detail *domain.PaymentDetail) (*string, map[string]any, error) {
	if detail == nil {
		return nil, nil, nil
	}
	if err := s.paymentDetailRepo.SavePaymentDetailInTx(ctx, tx, *detail); err != nil {
		s.LogError(ctx, err, "Failed to save payment detail",
			slog.String("payment_type_id", detail.PaymentTypeID))
		return nil, nil, fmt.Errorf("failed to save payment detail: %w", err)
	}
	id := detail.PaymentDetailID
	return &id, detail.Changes(), nil
}
