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

type PgxChargeDefinitionRepository struct {
	BaseRepository
}

func newPgxChargeDefinitionRepository(pool *pgxpool.Pool) portsrepo.ChargeDefinitionReader {
	return &PgxChargeDefinitionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ChargeDefinitionReader = (*PgxChargeDefinitionRepository)(nil)

// FindChargeDefinitionByID retrieves a charge catalog entry.
func (r *PgxChargeDefinitionRepository) FindChargeDefinitionByID(ctx context.Context, chargeDefinitionID string) (*domain.ChargeDefinition, error) {
	query := `
		SELECT charge_definition_id, name, currency_code, time_type, calculation_type, amount, penalty, fee_interval, active
		FROM charge_definitions
		WHERE charge_definition_id = $1;
	`
	var m models.ChargeDefinition
	err := r.Pool.QueryRow(ctx, query, chargeDefinitionID).Scan(
		&m.ChargeDefinitionID,
		&m.Name,
		&m.CurrencyCode,
		&m.TimeType,
		&m.CalculationType,
		&m.Amount,
		&m.Penalty,
		&m.FeeInterval,
		&m.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find charge definition %s: %w", chargeDefinitionID, err)
	}

	definition := mapping.ToDomainChargeDefinition(m)
	return &definition, nil
}
