package repositories

import (
	"context"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
)

// ChargeDefinitionReader defines read operations for the charge catalog
type ChargeDefinitionReader interface {
	// FindChargeDefinitionByID retrieves a charge definition by its ID.
	FindChargeDefinitionByID(ctx context.Context, chargeDefinitionID string) (*domain.ChargeDefinition, error)
}
