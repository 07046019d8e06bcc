package pgsql

import (
	"database/sql"

	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, sqlDB *sql.DB) portsrepo.RepositoryProvider {
	savingsAccountRepo := newPgxSavingsAccountRepository(dbPool)
	chargeDefinitionRepo := newPgxChargeDefinitionRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	paymentDetailRepo := newPgxPaymentDetailRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	calendarRepo := NewSQLCalendarRepository(sqlDB)

	return portsrepo.RepositoryProvider{
		SavingsAccountRepo:   savingsAccountRepo,
		ChargeDefinitionRepo: chargeDefinitionRepo,
		CurrencyRepo:         currencyRepo,
		JournalRepo:          journalRepo,
		PaymentDetailRepo:    paymentDetailRepo,
		ClientRepo:           clientRepo,
		CalendarRepo:         calendarRepo,
	}
}
