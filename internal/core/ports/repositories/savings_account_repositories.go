package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SavingsAccountReader defines read operations for savings account data
type SavingsAccountReader interface {
	// FindSavingsAccountByID retrieves an account with its transactions and charges.
	FindSavingsAccountByID(ctx context.Context, accountID string) (*domain.SavingsAccount, error)

	// ListTransactions retrieves a page of an account's transactions, newest first.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// SavingsAccountTransactionSupport defines operations that run inside a unit of work
type SavingsAccountTransactionSupport interface {
	// FindSavingsAccountByIDForUpdate loads the account and locks its row until the transaction ends.
	FindSavingsAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.SavingsAccount, error)

	// SaveSavingsAccountInTx writes the account, its transactions and its charges.
	// It fails with apperrors.ErrConflict if the stored version differs from account.Version.
	SaveSavingsAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.SavingsAccount) error
}

// SavingsAccountRepositoryFacade combines all savings account repository interfaces
type SavingsAccountRepositoryFacade interface {
	SavingsAccountReader
	SavingsAccountTransactionSupport
}

// SavingsAccountRepositoryWithTx is the savings account store plus the unit of work around commands.
type SavingsAccountRepositoryWithTx interface {
	SavingsAccountRepositoryFacade
	UnitOfWork
}
