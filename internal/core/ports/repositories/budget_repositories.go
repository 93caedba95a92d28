package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetsByUser retrieves a user's active budgets, newest first.
	ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)

	// SumExpensesByCategory totals a user's expense transactions for one
	// category within [start, end]. Used to derive budget progress.
	SumExpensesByCategory(ctx context.Context, userID string, category string, start, end time.Time) (decimal.Decimal, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget's details.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeactivateBudget marks a budget as inactive.
	DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
