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

// debtService manages debt records and decorates reads with overdue status.
type debtService struct {
	debtRepo portsrepo.DebtRepositoryFacade
}

// NewDebtService creates a new DebtService.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade) portssvc.DebtSvcFacade {
	return &debtService{
		debtRepo: debtRepo,
	}
}

// Ensure debtService implements the portssvc.DebtSvcFacade interface
var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// CreateDebt records a new debt for the user.
// Implements portssvc.DebtSvcFacade
func (s *debtService) CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	now := time.Now().UTC()
	debt := domain.Debt{
		DebtID:      uuid.NewString(),
		UserID:      userID,
		Type:        req.Type,
		PersonName:  req.PersonName,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		logger.Error("Failed to save debt", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID), slog.String("type", string(debt.Type)))
	return &debt, nil
}

// ListDebts retrieves the user's debts with derived overdue status.
// Implements portssvc.DebtSvcFacade
func (s *debtService) ListDebts(ctx context.Context, userID string, params dto.ListDebtsParams) ([]domain.DebtWithStatus, error) {
	filter := portsrepo.DebtFilter{IsPaid: params.IsPaid}
	if params.Type != "" {
		debtType := domain.DebtType(params.Type)
		filter.Type = &debtType
	}

	debts, err := s.debtRepo.ListDebtsByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	now := time.Now().UTC()
	decorated := make([]domain.DebtWithStatus, len(debts))
	for i, debt := range debts {
		decorated[i] = decorateDebt(debt, now)
	}
	return decorated, nil
}

// ListUpcomingDebts retrieves unpaid debts due within the next days.
// Implements portssvc.DebtSvcFacade
func (s *debtService) ListUpcomingDebts(ctx context.Context, userID string, days int) ([]domain.Debt, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now().UTC()
	debts, err := s.debtRepo.ListUpcomingDebts(ctx, userID, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming debts: %w", err)
	}
	return debts, nil
}

// UpdateDebt updates a debt's details. Marking a debt paid stamps PaidDate;
// unmarking clears it.
// Implements portssvc.DebtSvcFacade
func (s *debtService) UpdateDebt(ctx context.Context, userID string, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedDebt(ctx, userID, debtID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := *existing
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.PersonName != nil {
		updated.PersonName = *req.PersonName
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		updated.Amount = *req.Amount
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.DueDate != nil {
		updated.DueDate = req.DueDate.UTC()
	}
	if req.IsPaid != nil {
		updated.IsPaid = *req.IsPaid
		if updated.IsPaid {
			if updated.PaidDate == nil {
				paidAt := now
				updated.PaidDate = &paidAt
			}
		} else {
			updated.PaidDate = nil
		}
	}

	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.debtRepo.UpdateDebt(ctx, updated); err != nil {
		logger.Error("Failed to update debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, fmt.Errorf("failed to update debt %s: %w", debtID, err)
	}

	logger.Info("Debt updated", slog.String("debt_id", debtID))
	return &updated, nil
}

// DeleteDebt removes a debt permanently.
// Implements portssvc.DebtSvcFacade
func (s *debtService) DeleteDebt(ctx context.Context, userID string, debtID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getOwnedDebt(ctx, userID, debtID); err != nil {
		return err
	}

	if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
		logger.Error("Failed to delete debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}

	logger.Info("Debt deleted", slog.String("debt_id", debtID))
	return nil
}

func (s *debtService) getOwnedDebt(ctx context.Context, userID, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to find debt %s: %w", debtID, err)
	}
	if debt.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return debt, nil
}

// decorateDebt derives overdue status as of now. Paid debts are never overdue.
func decorateDebt(debt domain.Debt, now time.Time) domain.DebtWithStatus {
	decorated := domain.DebtWithStatus{Debt: debt}
	if !debt.IsPaid && now.After(debt.DueDate) {
		decorated.IsOverdue = true
		decorated.DaysOverdue = int(now.Sub(debt.DueDate).Hours() / 24)
	}
	return decorated
}
