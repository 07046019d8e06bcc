package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindGLMappingByProductID retrieves the chart-of-accounts wiring of a savings product.
	FindGLMappingByProductID(ctx context.Context, productID string) (*domain.GLMapping, error)
}

// JournalTransactionSupport defines journal writes that join an open unit of work
type JournalTransactionSupport interface {
	// SaveJournalInTx persists a journal and its lines within the given transaction.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalTransactionSupport
}
