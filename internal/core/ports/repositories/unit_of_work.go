package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// UnitOfWork brackets one savings account command. The account rows, payment
// details and journal written for the command share the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that already finished.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
