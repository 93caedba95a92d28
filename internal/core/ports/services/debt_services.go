package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// DebtSvcFacade manages debt records; reads decorate overdue status.
type DebtSvcFacade interface {
	CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error)
	ListDebts(ctx context.Context, userID string, params dto.ListDebtsParams) ([]domain.DebtWithStatus, error)
	ListUpcomingDebts(ctx context.Context, userID string, days int) ([]domain.Debt, error)
	UpdateDebt(ctx context.Context, userID string, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, userID string, debtID string) error
}
