package services

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// ReportingSvcFacade serves the read-only analytics views derived from the
// transaction history.
type ReportingSvcFacade interface {
	// GetDashboard builds the aggregate snapshot as of now.
	GetDashboard(ctx context.Context, userID string, now time.Time) (*domain.Dashboard, error)

	// GetCashFlow buckets transactions within [start, end] by the given
	// granularity and returns ordered {period, income, expense, net} entries.
	GetCashFlow(ctx context.Context, userID string, start, end time.Time, granularity domain.CashFlowGranularity) ([]domain.CashFlowEntry, error)

	// GetCategoryReport returns per-category expense totals within [start, end].
	GetCategoryReport(ctx context.Context, userID string, start, end time.Time) ([]domain.CategoryTotal, error)
}
