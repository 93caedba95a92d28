package services

import (
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Wallet = NewWalletService(repos.WalletRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.WalletRepo)
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.WalletRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.Goal = NewGoalService(repos.GoalRepo)
	container.Debt = NewDebtService(repos.DebtRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TransactionRepo, repos.WalletRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
