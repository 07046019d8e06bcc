package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	SavingsAccountRepo   SavingsAccountRepositoryWithTx
	ChargeDefinitionRepo ChargeDefinitionReader
	CurrencyRepo         CurrencyRepositoryFacade
	JournalRepo          JournalRepositoryFacade
	PaymentDetailRepo    PaymentDetailRepository
	ClientRepo           ClientActivityReader
	CalendarRepo         CalendarReader
}
