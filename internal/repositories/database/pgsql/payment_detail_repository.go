package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger/internal/models"
	"github.com/SscSPs/savings_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentDetailRepository struct {
	BaseRepository
}

func newPgxPaymentDetailRepository(pool *pgxpool.Pool) portsrepo.PaymentDetailRepository {
	return &PgxPaymentDetailRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentDetailRepository = (*PgxPaymentDetailRepository)(nil)

// SavePaymentDetailInTx inserts a payment detail on the caller's transaction.
func (r *PgxPaymentDetailRepository) SavePaymentDetailInTx(ctx context.Context, tx pgx.Tx, detail domain.PaymentDetail) error {
	m := mapping.ToModelPaymentDetail(detail)
	query := `
		INSERT INTO payment_details (payment_detail_id, payment_type_id, account_number, check_number, routing_code, receipt_number, bank_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentDetailID,
		m.PaymentTypeID,
		m.AccountNumber,
		m.CheckNumber,
		m.RoutingCode,
		m.ReceiptNumber,
		m.BankNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment detail %s: %w", m.PaymentDetailID, err)
	}
	return nil
}

// FindPaymentDetailByID retrieves a payment detail by its ID.
func (r *PgxPaymentDetailRepository) FindPaymentDetailByID(ctx context.Context, paymentDetailID string) (*domain.PaymentDetail, error) {
	query := `
		SELECT payment_detail_id, payment_type_id, account_number, check_number, routing_code, receipt_number, bank_number, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_details
		WHERE payment_detail_id = $1;
	`
	var m models.PaymentDetail
	err := r.Pool.QueryRow(ctx, query, paymentDetailID).Scan(
		&m.PaymentDetailID,
		&m.PaymentTypeID,
		&m.AccountNumber,
		&m.CheckNumber,
		&m.RoutingCode,
		&m.ReceiptNumber,
		&m.BankNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment detail %s: %w", paymentDetailID, err)
	}

	detail := mapping.ToDomainPaymentDetail(m)
	return &detail, nil
}
