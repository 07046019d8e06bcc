package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger/internal/models"
	"github.com/SscSPs/savings_ledger/internal/utils/mapping"
	"github.com/SscSPs/savings_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `
	account_id, account_number, product_id, deposit_type, status, office_id,
	client_id, group_id, field_officer_id, currency_code,
	nominal_annual_rate, posting_period, days_in_year,
	allow_overdraft, overdraft_limit, withhold_interest, penal_rate,
	min_required_opening_balance, submitted_on, activated_on, closed_on,
	maturity_date, interest_posted_till,
	account_balance, total_deposits, total_withdrawals, total_interest_posted,
	total_fee_charges, total_penalty_charges, total_interest_earned, interest_calculated_as_of,
	version, created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `
	transaction_id, savings_account_id, office_id, transaction_type, amount,
	transaction_date, running_balance, sequence, status, reversed_on,
	payment_detail_id, charge_id, transfer_linked,
	created_at, created_by, last_updated_at, last_updated_by`

const chargeColumns = `
	charge_id, savings_account_id, charge_definition_id, name, currency_code,
	time_type, calculation_type, definition_amount, penalty, fee_interval,
	due_date, installment_amount, amount, amount_paid, amount_waived, active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSavingsAccountRepository struct {
	BaseRepository
}

// newPgxSavingsAccountRepository creates a new repository for savings accounts.
func newPgxSavingsAccountRepository(pool *pgxpool.Pool) portsrepo.SavingsAccountRepositoryWithTx {
	return &PgxSavingsAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SavingsAccountRepositoryWithTx = (*PgxSavingsAccountRepository)(nil)

// FindSavingsAccountByID retrieves an account with its transactions and charges.
func (r *PgxSavingsAccountRepository) FindSavingsAccountByID(ctx context.Context, accountID string) (*domain.SavingsAccount, error) {
	return r.load(ctx, r.Pool, accountID, false)
}

// FindSavingsAccountByIDForUpdate loads the account inside tx and holds its row lock.
func (r *PgxSavingsAccountRepository) FindSavingsAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.SavingsAccount, error) {
	return r.load(ctx, tx, accountID, true)
}

func (r *PgxSavingsAccountRepository) load(ctx context.Context, q querier, accountID string, forUpdate bool) (*domain.SavingsAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM savings_accounts WHERE account_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	modelAcc, err := scanSavingsAccount(q.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find savings account %s: %w", accountID, err)
	}

	txns, err := r.loadTransactions(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	charges, err := r.loadCharges(ctx, q, accountID)
	if err != nil {
		return nil, err
	}

	account := mapping.ToDomainSavingsAccount(modelAcc, txns, charges)
	return &account, nil
}

func (r *PgxSavingsAccountRepository) loadTransactions(ctx context.Context, q querier, accountID string) ([]models.SavingsTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM savings_transactions
		WHERE savings_account_id = $1
		ORDER BY transaction_date, sequence, created_at, transaction_id;`
	rows, err := q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for savings account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavingsTransaction, error) {
		return scanSavingsTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for savings account %s: %w", accountID, err)
	}
	return txns, nil
}

func (r *PgxSavingsAccountRepository) loadCharges(ctx context.Context, q querier, accountID string) ([]models.SavingsCharge, error) {
	query := `SELECT ` + chargeColumns + `
		FROM savings_charges
		WHERE savings_account_id = $1
		ORDER BY created_at, charge_id;`
	rows, err := q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query charges for savings account %s: %w", accountID, err)
	}
	defer rows.Close()

	charges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavingsCharge, error) {
		var c models.SavingsCharge
		err := row.Scan(
			&c.ChargeID,
			&c.SavingsAccountID,
			&c.Definition.ChargeDefinitionID,
			&c.Definition.Name,
			&c.Definition.CurrencyCode,
			&c.Definition.TimeType,
			&c.Definition.CalculationType,
			&c.Definition.Amount,
			&c.Definition.Penalty,
			&c.Definition.FeeInterval,
			&c.DueDate,
			&c.InstallmentAmount,
			&c.Amount,
			&c.AmountPaid,
			&c.AmountWaived,
			&c.Active,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		)
		c.Definition.Active = true
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan charges for savings account %s: %w", accountID, err)
	}
	return charges, nil
}

// SaveSavingsAccountInTx writes the account row guarded by its version, then
// upserts every transaction and charge in one batch. Charges no longer on the
// account are deleted.
func (r *PgxSavingsAccountRepository) SaveSavingsAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.SavingsAccount) error {
	m := mapping.ToModelSavingsAccount(*account)

	updateQuery := `
		UPDATE savings_accounts SET
			status = $3, field_officer_id = $4,
			nominal_annual_rate = $5, posting_period = $6, days_in_year = $7,
			allow_overdraft = $8, overdraft_limit = $9, withhold_interest = $10, penal_rate = $11,
			activated_on = $12, closed_on = $13, maturity_date = $14, interest_posted_till = $15,
			account_balance = $16, total_deposits = $17, total_withdrawals = $18, total_interest_posted = $19,
			total_fee_charges = $20, total_penalty_charges = $21, total_interest_earned = $22,
			interest_calculated_as_of = $23, office_id = $24,
			last_updated_at = $25, last_updated_by = $26,
			version = version + 1
		WHERE account_id = $1 AND version = $2;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.AccountID, m.Version,
		m.Status, m.FieldOfficerID,
		m.NominalAnnualRate, m.PostingPeriod, m.DaysInYear,
		m.AllowOverdraft, m.OverdraftLimit, m.WithholdInterest, m.PenalRate,
		m.ActivatedOn, m.ClosedOn, m.MaturityDate, m.InterestPostedTill,
		m.AccountBalance, m.TotalDeposits, m.TotalWithdrawals, m.TotalInterestPosted,
		m.TotalFeeCharges, m.TotalPenaltyCharges, m.TotalInterestEarned,
		m.InterestCalculatedAsOf, m.OfficeID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO savings_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (transaction_id) DO UPDATE SET
			running_balance = EXCLUDED.running_balance,
			status = EXCLUDED.status,
			reversed_on = EXCLUDED.reversed_on,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	for _, txn := range account.Transactions {
		t := mapping.ToModelSavingsTransaction(txn)
		batch.Queue(txnQuery,
			t.TransactionID, t.SavingsAccountID, t.OfficeID, t.TransactionType, t.Amount,
			t.TransactionDate, t.RunningBalance, t.Sequence, t.Status, t.ReversedOn,
			t.PaymentDetailID, t.ChargeID, t.TransferLinked,
			t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
		)
	}

	chargeIDs := make([]string, 0, len(account.Charges))
	for _, c := range account.Charges {
		chargeIDs = append(chargeIDs, c.ChargeID)
	}
	batch.Queue(`DELETE FROM savings_charges WHERE savings_account_id = $1 AND NOT (charge_id = ANY($2));`, m.AccountID, chargeIDs)

	chargeQuery := `
		INSERT INTO savings_charges (` + chargeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (charge_id) DO UPDATE SET
			due_date = EXCLUDED.due_date,
			installment_amount = EXCLUDED.installment_amount,
			amount = EXCLUDED.amount,
			amount_paid = EXCLUDED.amount_paid,
			amount_waived = EXCLUDED.amount_waived,
			active = EXCLUDED.active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	for _, charge := range account.Charges {
		c := mapping.ToModelSavingsCharge(charge)
		batch.Queue(chargeQuery,
			c.ChargeID, c.SavingsAccountID, c.Definition.ChargeDefinitionID, c.Definition.Name, c.Definition.CurrencyCode,
			c.Definition.TimeType, c.Definition.CalculationType, c.Definition.Amount, c.Definition.Penalty, c.Definition.FeeInterval,
			c.DueDate, c.InstallmentAmount, c.Amount, c.AmountPaid, c.AmountWaived, c.Active,
			c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to write ledger batch for savings account "+m.AccountID, err)
	}

	account.Version++
	return nil
}

// ListTransactions retrieves a page of an account's transactions, newest first.
func (r *PgxSavingsAccountRepository) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	query, args, err := transactionPageQuery(accountID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for savings account "+accountID, err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavingsTransaction, error) {
		return scanSavingsTransaction(row)
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan transactions for savings account "+accountID, err)
	}

	var newNextToken *string
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			TransactionDate: last.TransactionDate,
			Sequence:        last.Sequence,
			TransactionID:   last.TransactionID,
		})
		newNextToken = &token
		modelTxns = modelTxns[:limit]
	}

	return mapping.ToDomainSavingsTransactionSlice(modelTxns), newNextToken, nil
}

// transactionPageQuery builds the keyset query for one page, newest first.
// transaction_id is the final key since sequence repeats across an adjusted pair.
func transactionPageQuery(accountID string, limit int, nextToken *string) (string, []any, error) {
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM savings_transactions`
	filterClause := `WHERE savings_account_id = $1`
	orderByClause := `ORDER BY transaction_date DESC, sequence DESC, transaction_id DESC`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return "", nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (transaction_date, sequence, transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.TransactionDate, cursor.Sequence, cursor.TransactionID)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)
	return query, args, nil
}

func scanSavingsAccount(row pgx.Row) (models.SavingsAccount, error) {
	var m models.SavingsAccount
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.ProductID,
		&m.DepositType,
		&m.Status,
		&m.OfficeID,
		&m.ClientID,
		&m.GroupID,
		&m.FieldOfficerID,
		&m.CurrencyCode,
		&m.NominalAnnualRate,
		&m.PostingPeriod,
		&m.DaysInYear,
		&m.AllowOverdraft,
		&m.OverdraftLimit,
		&m.WithholdInterest,
		&m.PenalRate,
		&m.MinRequiredOpeningBalance,
		&m.SubmittedOn,
		&m.ActivatedOn,
		&m.ClosedOn,
		&m.MaturityDate,
		&m.InterestPostedTill,
		&m.AccountBalance,
		&m.TotalDeposits,
		&m.TotalWithdrawals,
		&m.TotalInterestPosted,
		&m.TotalFeeCharges,
		&m.TotalPenaltyCharges,
		&m.TotalInterestEarned,
		&m.InterestCalculatedAsOf,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanSavingsTransaction(row pgx.Row) (models.SavingsTransaction, error) {
	var t models.SavingsTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.SavingsAccountID,
		&t.OfficeID,
		&t.TransactionType,
		&t.Amount,
		&t.TransactionDate,
		&t.RunningBalance,
		&t.Sequence,
		&t.Status,
		&t.ReversedOn,
		&t.PaymentDetailID,
		&t.ChargeID,
		&t.TransferLinked,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}
