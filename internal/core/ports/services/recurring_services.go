package services

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// RecurringSvcFacade manages recurring definitions and the scheduler entry
// point that materializes due ones into the ledger.
type RecurringSvcFacade interface {
	CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, error)
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error)
	UpdateRecurring(ctx context.Context, userID string, recurringID string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, error)
	DeactivateRecurring(ctx context.Context, userID string, recurringID string) error

	// ProcessDue materializes at most one transaction per definition due at
	// or before now and advances each processed definition exactly one
	// period. Definitions whose wallet vanished are skipped silently; other
	// per-definition failures are logged and skipped so the rest of the
	// batch still runs. Returns the number of definitions materialized.
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}
