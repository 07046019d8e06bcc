package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activeStatus = "ACTIVE"

// PgxClientRepository answers owner activity checks against the clients and groups tables.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientActivityReader {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClientActivityReader = (*PgxClientRepository)(nil)

// IsClientActive reports whether the client exists with an ACTIVE status.
func (r *PgxClientRepository) IsClientActive(ctx context.Context, clientID string) (bool, error) {
	return r.isActive(ctx, `SELECT status FROM clients WHERE client_id = $1;`, clientID)
}

// IsGroupActive reports whether the group exists with an ACTIVE status.
func (r *PgxClientRepository) IsGroupActive(ctx context.Context, groupID string) (bool, error) {
	return r.isActive(ctx, `SELECT status FROM groups WHERE group_id = $1;`, groupID)
}

func (r *PgxClientRepository) isActive(ctx context.Context, query, id string) (bool, error) {
	var status string
	if err := r.Pool.QueryRow(ctx, query, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read status of %s: %w", id, err)
	}
	return status == activeStatus, nil
}
