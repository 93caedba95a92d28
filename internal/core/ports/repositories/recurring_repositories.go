package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurringReader defines read operations for recurring definition data
type RecurringReader interface {
	// FindRecurringByID retrieves a specific recurring definition by its unique identifier.
	FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringDefinition, error)

	// ListRecurringByUser retrieves a user's active recurring definitions
	// ordered by next due date.
	ListRecurringByUser(ctx context.Context, userID string) ([]domain.RecurringDefinition, error)

	// ListDueRecurring retrieves all active definitions across users whose
	// NextDueDate is at or before now.
	ListDueRecurring(ctx context.Context, now time.Time) ([]domain.RecurringDefinition, error)
}

// RecurringWriter defines write operations for recurring definition data
type RecurringWriter interface {
	// SaveRecurring persists a new recurring definition.
	SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error

	// UpdateRecurring updates an existing definition's details.
	UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error

	// DeactivateRecurring marks a definition as inactive.
	DeactivateRecurring(ctx context.Context, recurringID string, userID string, now time.Time) error

	// MaterializeRecurring performs one schedule advancement atomically: it
	// locks the definition row, verifies NextDueDate still equals expectedDue
	// (returns apperrors.ErrConflict if another tick got there first), inserts
	// the materialized transaction, applies its wallet balance delta, and
	// persists newNextDue on the definition.
	MaterializeRecurring(ctx context.Context, def domain.RecurringDefinition, expectedDue time.Time, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, newNextDue time.Time) error
}

// RecurringRepositoryFacade combines all recurring-definition repository interfaces
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}

// RecurringRepositoryWithTx extends RecurringRepositoryFacade with transaction capabilities
type RecurringRepositoryWithTx interface {
	RecurringRepositoryFacade
	TransactionManager
}
