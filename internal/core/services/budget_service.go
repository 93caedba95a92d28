package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// budgetService manages budgets and derives their current-period progress.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo: budgetRepo,
	}
}

// Ensure budgetService implements the portssvc.BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget persists a new budget for the user.
// Implements portssvc.BudgetSvcFacade
func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	now := time.Now().UTC()
	period := req.Period
	if period == "" {
		period = domain.BudgetMonthly
	}
	startDate := now
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	budget := domain.Budget{
		BudgetID:  uuid.NewString(),
		UserID:    userID,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    period,
		StartDate: startDate,
		EndDate:   req.EndDate,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("category", budget.Category))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", budget.Category))
	return &budget, nil
}

// ListBudgets retrieves the user's active budgets with derived progress over
// each budget's current period window.
// Implements portssvc.BudgetSvcFacade
func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.BudgetProgress, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	now := time.Now().UTC()
	progress := make([]domain.BudgetProgress, 0, len(budgets))
	for _, budget := range budgets {
		start, end := periodWindow(budget, now)
		spent, err := s.budgetRepo.SumExpensesByCategory(ctx, userID, budget.Category, start, end)
		if err != nil {
			logger.Error("Failed to sum expenses for budget", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
			return nil, fmt.Errorf("failed to derive progress for budget %s: %w", budget.BudgetID, err)
		}
		progress = append(progress, deriveProgress(budget, spent))
	}
	return progress, nil
}

// UpdateBudget updates a budget's details.
// Implements portssvc.BudgetSvcFacade
func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		updated.Amount = *req.Amount
	}
	if req.Period != nil {
		updated.Period = *req.Period
	}
	if req.StartDate != nil {
		updated.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		updated.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, updated); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return &updated, nil
}

// DeactivateBudget marks a budget inactive.
// Implements portssvc.BudgetSvcFacade
func (s *budgetService) DeactivateBudget(ctx context.Context, userID string, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.budgetRepo.DeactivateBudget(ctx, budgetID, userID, now); err != nil {
		logger.Error("Failed to deactivate budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return fmt.Errorf("failed to deactivate budget %s: %w", budgetID, err)
	}

	logger.Info("Budget deactivated", slog.String("budget_id", budgetID))
	return nil
}

func (s *budgetService) getOwnedBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

// periodWindow computes the [start, end) window the budget currently covers.
// Weekly windows anchor on Sunday; custom windows with an open end run to now.
func periodWindow(budget domain.Budget, now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch budget.Period {
	case domain.BudgetDaily:
		return midnight, midnight.AddDate(0, 0, 1)
	case domain.BudgetWeekly:
		weekStart := midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return weekStart, weekStart.AddDate(0, 0, 7)
	case domain.BudgetYearly:
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return yearStart, yearStart.AddDate(1, 0, 0)
	case domain.BudgetCustom:
		end := now
		if budget.EndDate != nil {
			end = budget.EndDate.UTC()
		}
		return budget.StartDate, end
	default: // BudgetMonthly
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return monthStart, monthStart.AddDate(0, 1, 0)
	}
}

// deriveProgress computes spent/remaining/percentage/status for one budget.
// A zero target amount yields 0% rather than dividing by zero.
func deriveProgress(budget domain.Budget, spent decimal.Decimal) domain.BudgetProgress {
	remaining := budget.Amount.Sub(spent)
	percentage := 0.0
	if budget.Amount.IsPositive() {
		percentage = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	status := domain.BudgetSafe
	switch {
	case percentage >= 100:
		status = domain.BudgetExceeded
	case percentage >= 80:
		status = domain.BudgetWarning
	case percentage >= 60:
		status = domain.BudgetCaution
	}
	if percentage > 100 {
		percentage = 100
	}

	return domain.BudgetProgress{
		Budget:     budget,
		Spent:      spent,
		Remaining:  remaining,
		Percentage: percentage,
		Status:     status,
	}
}
