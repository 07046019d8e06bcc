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

// PgxJournalRepository implements the journal persistence operations
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and GL mapping data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournalInTx inserts a journal header and its lines in one batch on the
// caller's transaction. Committing is left to the caller.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	modelJournal := mapping.ToModelJournal(journal)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journals (journal_id, office_id, savings_account_id, journal_date, currency_code, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		modelJournal.JournalID,
		modelJournal.OfficeID,
		modelJournal.SavingsAccountID,
		modelJournal.JournalDate,
		modelJournal.CurrencyCode,
		modelJournal.Status,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)

	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, gl_account_id, entry_type, amount, savings_transaction_id, transaction_date, reversal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range journal.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			l.LineID,
			l.JournalID,
			l.GLAccountID,
			l.EntryType,
			l.Amount,
			l.SavingsTransactionID,
			l.TransactionDate,
			l.Reversal,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID, with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, office_id, savings_account_id, journal_date, currency_code, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE journal_id = $1;
	`
	var modelJournal models.Journal
	err := r.Pool.QueryRow(ctx, query, journalID).Scan(
		&modelJournal.JournalID,
		&modelJournal.OfficeID,
		&modelJournal.SavingsAccountID,
		&modelJournal.JournalDate,
		&modelJournal.CurrencyCode,
		&modelJournal.Status,
		&modelJournal.CreatedAt,
		&modelJournal.CreatedBy,
		&modelJournal.LastUpdatedAt,
		&modelJournal.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by id %s: %w", journalID, err)
	}

	linesQuery := `
		SELECT l.line_id, l.journal_id, l.gl_account_id, g.account_type, l.entry_type, l.amount,
		       l.savings_transaction_id, l.transaction_date, l.reversal
		FROM journal_lines l
		JOIN gl_accounts g ON g.gl_account_id = l.gl_account_id
		WHERE l.journal_id = $1
		ORDER BY l.transaction_date, l.savings_transaction_id, l.entry_type DESC;
	`
	rows, err := r.Pool.Query(ctx, linesQuery, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalLine, error) {
		var l models.JournalLine
		err := row.Scan(
			&l.LineID,
			&l.JournalID,
			&l.GLAccountID,
			&l.GLAccountType,
			&l.EntryType,
			&l.Amount,
			&l.SavingsTransactionID,
			&l.TransactionDate,
			&l.Reversal,
		)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines for journal %s: %w", journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(modelJournal, lines)
	return &domainJournal, nil
}

// FindGLMappingByProductID retrieves a savings product's GL accounts with their types.
func (r *PgxJournalRepository) FindGLMappingByProductID(ctx context.Context, productID string) (*domain.GLMapping, error) {
	query := `
		SELECT m.product_id, m.accounting_rule,
		       m.savings_reference_id, ref.account_type,
		       m.savings_control_id, ctl.account_type,
		       m.interest_on_savings_id, intr.account_type,
		       m.income_from_fees_id, fee.account_type,
		       m.income_from_penalties_id, pen.account_type,
		       m.transfers_suspense_id, sus.account_type
		FROM gl_mappings m
		JOIN gl_accounts ref ON ref.gl_account_id = m.savings_reference_id
		JOIN gl_accounts ctl ON ctl.gl_account_id = m.savings_control_id
		JOIN gl_accounts intr ON intr.gl_account_id = m.interest_on_savings_id
		JOIN gl_accounts fee ON fee.gl_account_id = m.income_from_fees_id
		JOIN gl_accounts pen ON pen.gl_account_id = m.income_from_penalties_id
		JOIN gl_accounts sus ON sus.gl_account_id = m.transfers_suspense_id
		WHERE m.product_id = $1;
	`
	var m models.GLMapping
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.AccountingRule,
		&m.SavingsReference.GLAccountID, &m.SavingsReference.AccountType,
		&m.SavingsControl.GLAccountID, &m.SavingsControl.AccountType,
		&m.InterestOnSavings.GLAccountID, &m.InterestOnSavings.AccountType,
		&m.IncomeFromFees.GLAccountID, &m.IncomeFromFees.AccountType,
		&m.IncomeFromPenalties.GLAccountID, &m.IncomeFromPenalties.AccountType,
		&m.TransfersSuspense.GLAccountID, &m.TransfersSuspense.AccountType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find gl mapping for product %s: %w", productID, err)
	}

	glMapping := mapping.ToDomainGLMapping(m)
	return &glMapping, nil
}
