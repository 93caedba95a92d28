package pgsql

import (
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	walletRepo := newPgxWalletRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, walletRepo)
	recurringRepo := newPgxRecurringRepository(dbPool, walletRepo)
	budgetRepo := newPgxBudgetRepository(dbPool)
	goalRepo := newPgxGoalRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		WalletRepo:      walletRepo,
		TransactionRepo: transactionRepo,
		RecurringRepo:   recurringRepo,
		BudgetRepo:      budgetRepo,
		GoalRepo:        goalRepo,
		DebtRepo:        debtRepo,
		ReportingRepo:   reportingRepo,
		UserRepo:        userRepo,
	}
}
