package services

import (
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker portssvc.AccountLocker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Collaborators the savings account service depends on come first
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	container.Currency = currencySvc
	container.Journal = NewJournalService(repos.JournalRepo)
	calendar := NewCalendarService(repos.CalendarRepo)

	container.SavingsAccount = NewSavingsAccountService(
		repos.SavingsAccountRepo,
		WithChargeDefinitions(repos.ChargeDefinitionRepo),
		WithCurrencyCatalog(currencySvc),
		WithJournalSink(container.Journal),
		WithPaymentCapture(NewPaymentDetailService(repos.PaymentDetailRepo)),
		WithActivityGate(repos.ClientRepo),
		WithCalendars(calendar, calendar),
		WithAccountLocker(locker),
		WithClock(NewTenantClock(cfg.TenantTimezone)),
		WithMaxCatchUpPeriods(cfg.ChargeCatchUpMaxPeriods),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SavingsAccountSvcFacade = (*savingsAccountService)(nil)
	_ portssvc.JournalSvcFacade        = (*journalService)(nil)
	_ portssvc.CurrencySvcFacade       = (*CurrencyService)(nil)
)
