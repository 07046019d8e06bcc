package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/utils/accounting"
)

// journalService turns accounting bridge deltas into balanced journals.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// legs returns the debit and credit GL accounts a transaction type posts to.
// ok is false for types with no accounting effect.
func legs(m *domain.GLMapping, txn domain.Transaction, penalty bool) (debit, credit domain.GLAccountRef, ok bool) {
	switch txn.Type {
	case domain.TxnDeposit:
		return m.SavingsReference, m.SavingsControl, true
	case domain.TxnWithdrawal:
		return m.SavingsControl, m.SavingsReference, true
	case domain.TxnInterestPosting:
		return m.InterestOnSavings, m.SavingsControl, true
	case domain.TxnPayCharge:
		if penalty {
			return m.SavingsControl, m.IncomeFromPenalties, true
		}
		return m.SavingsControl, m.IncomeFromFees, true
	case domain.TxnInitiateTransfer:
		return m.SavingsControl, m.TransfersSuspense, true
	case domain.TxnWithdrawTransfer, domain.TxnApproveTransfer:
		return m.TransfersSuspense, m.SavingsControl, true
	}
	return domain.GLAccountRef{}, domain.GLAccountRef{}, false
}

// buildLines produces one debit and one credit line per transaction. Reversals
// swap the sides of the original posting.
func buildLines(m *domain.GLMapping, journalID string, delta domain.AccountingBridgeDelta) []domain.JournalLine {
	var lines []domain.JournalLine
	add := func(txn domain.Transaction, reversal bool) {
		if !txn.Amount.IsPositive() {
			return
		}
		var penalty bool
		if txn.ChargeID != nil {
			penalty = delta.PenaltyCharges[*txn.ChargeID]
		}
		debit, credit, ok := legs(m, txn, penalty)
		if !ok {
			return
		}
		if reversal {
			debit, credit = credit, debit
		}
		for _, side := range []struct {
			ref   domain.GLAccountRef
			entry domain.EntryType
		}{{debit, domain.Debit}, {credit, domain.Credit}} {
			lines = append(lines, domain.JournalLine{
				LineID:               uuid.NewString(),
				JournalID:            journalID,
				GLAccountID:          side.ref.GLAccountID,
				GLAccountType:        side.ref.Type,
				EntryType:            side.entry,
				Amount:               txn.Amount,
				SavingsTransactionID: txn.TransactionID,
				TransactionDate:      txn.TransactionDate,
				Reversal:             reversal,
			})
		}
	}

	for _, txn := range delta.NewTransactions {
		add(txn, false)
	}
	for _, txn := range delta.ReversedTransactions {
		add(txn, true)
	}
	return lines
}

// PostDelta writes one journal for the delta inside the caller's transaction.
// Products without cash based accounting produce nothing.
func (s *journalService) PostDelta(ctx context.Context, tx pgx.Tx, delta domain.AccountingBridgeDelta, pc domain.ProcessingContext) error {
	if delta.IsEmpty() {
		return nil
	}
	logger := s.accountLogger(ctx, delta.SavingsAccountID).With(
		slog.String("product_id", delta.ProductID))

	mapping, err := s.journalRepo.FindGLMappingByProductID(ctx, delta.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("No GL mapping for product, skipping journal")
			return nil
		}
		logger.Error("Failed to load GL mapping", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load GL mapping for product %s: %w", delta.ProductID, err)
	}
	if mapping.AccountingRule != domain.AccountingCash {
		return nil
	}

	journal := domain.Journal{
		JournalID:        uuid.NewString(),
		OfficeID:         delta.OfficeID,
		SavingsAccountID: delta.SavingsAccountID,
		JournalDate:      pc.Today,
		CurrencyCode:     delta.Currency.Code,
		Status:           domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     pc.Now,
			CreatedBy:     pc.UserID,
			LastUpdatedAt: pc.Now,
			LastUpdatedBy: pc.UserID,
		},
	}
	journal.Lines = buildLines(mapping, journal.JournalID, delta)
	if len(journal.Lines) == 0 {
		return nil
	}

	if err := accounting.ValidateJournalBalance(journal.Lines); err != nil {
		logger.Error("Journal failed balance validation", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	amount, err := journalAmount(journal)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()))
		return fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.Int("lines", len(journal.Lines)),
		slog.String("amount", amount.String()))
	return nil
}

// journalAmount is the total of the debit side in the journal currency.
func journalAmount(journal domain.Journal) (domain.Money, error) {
	total := domain.NewMoney(decimal.Zero, journal.CurrencyCode)
	for _, line := range journal.Lines {
		if line.EntryType != domain.Debit {
			continue
		}
		var err error
		if total, err = total.Add(domain.NewMoney(line.Amount, journal.CurrencyCode)); err != nil {
			return domain.Money{}, err
		}
	}
	return total, nil
}

// GetJournalByID retrieves a specific journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return journal, nil
}
