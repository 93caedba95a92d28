package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingReader defines the read-only aggregation queries backing the
// analytics endpoints. All aggregation happens in SQL; services only shape
// and bucket the results.
type ReportingReader interface {
	// SumAmountByType totals a user's transactions of one type within [start, end].
	SumAmountByType(ctx context.Context, userID string, txnType domain.TransactionType, start, end time.Time) (decimal.Decimal, error)

	// ExpenseTotalsByCategory returns per-category expense totals and counts
	// within [start, end], largest total first.
	ExpenseTotalsByCategory(ctx context.Context, userID string, start, end time.Time) ([]domain.CategoryTotal, error)

	// SumUnpaidDebtByType totals a user's unpaid debts of one direction.
	SumUnpaidDebtByType(ctx context.Context, userID string, debtType domain.DebtType) (decimal.Decimal, error)

	// ListExpenseAmountsInRange returns individual expense amounts within
	// [start, end]; the forecast treats them as per-day observations.
	ListExpenseAmountsInRange(ctx context.Context, userID string, start, end time.Time) ([]decimal.Decimal, error)
}

// ReportingRepositoryFacade is the facade over reporting queries.
type ReportingRepositoryFacade interface {
	ReportingReader
}
