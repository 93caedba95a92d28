package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
)

// DebtFilter narrows debt listings. Nil pointers mean "no filter".
type DebtFilter struct {
	Type   *domain.DebtType
	IsPaid *bool
}

// DebtReader defines read operations for debt data
type DebtReader interface {
	// FindDebtByID retrieves a specific debt by its unique identifier.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebtsByUser retrieves a user's debts ordered by due date.
	ListDebtsByUser(ctx context.Context, userID string, filter DebtFilter) ([]domain.Debt, error)

	// ListUpcomingDebts retrieves unpaid debts due within [now, until].
	ListUpcomingDebts(ctx context.Context, userID string, now, until time.Time) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debt data
type DebtWriter interface {
	// SaveDebt persists a new debt.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// UpdateDebt updates an existing debt's details.
	UpdateDebt(ctx context.Context, debt domain.Debt) error

	// DeleteDebt removes a debt permanently.
	DeleteDebt(ctx context.Context, debtID string) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
