package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	DueRepo         DueRepositoryWithTx
	UserRepo        UserRepositoryFacade
	ExpenseBookRepo ExpenseBookRepositoryWithTx
	LedgerRepo      LedgerReader
	Destinations    DestinationRegistry
}
