package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentDetailRepository stores payment instrument details
type PaymentDetailRepository interface {
	// SavePaymentDetailInTx persists a payment detail within the given transaction.
	SavePaymentDetailInTx(ctx context.Context, tx pgx.Tx, detail domain.PaymentDetail) error

	// FindPaymentDetailByID retrieves a payment detail by its ID.
	FindPaymentDetailByID(ctx context.Context, paymentDetailID string) (*domain.PaymentDetail, error)
}
