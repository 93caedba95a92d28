package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	WalletRepo      WalletRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	RecurringRepo   RecurringRepositoryFacade
	BudgetRepo      BudgetRepositoryFacade
	GoalRepo        GoalRepositoryFacade
	DebtRepo        DebtRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
	UserRepo        UserRepositoryFacade
}
