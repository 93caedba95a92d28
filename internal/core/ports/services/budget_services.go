package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// BudgetSvcFacade manages budgets and derives their current-period progress.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.BudgetProgress, error)
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeactivateBudget(ctx context.Context, userID string, budgetID string) error
}
