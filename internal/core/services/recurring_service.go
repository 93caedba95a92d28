package services

import (
	"context"
	"errors"
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
	"github.com/dompetku/dompetku_backend/internal/utils/ledger"
	"github.com/dompetku/dompetku_backend/internal/utils/schedule"
	"github.com/shopspring/decimal"
)

// recurringService manages recurring definitions and materializes due ones
// into ledger transactions.
type recurringService struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
	walletRepo    portsrepo.WalletReader
}

// NewRecurringService creates a new RecurringService.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, walletRepo portsrepo.WalletReader) portssvc.RecurringSvcFacade {
	return &recurringService{
		recurringRepo: recurringRepo,
		walletRepo:    walletRepo,
	}
}

// Ensure recurringService implements the portssvc.RecurringSvcFacade interface
var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// CreateRecurring persists a new recurring definition.
// Implements portssvc.RecurringSvcFacade
func (s *recurringService) CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet %s: %w", req.WalletID, err)
	}
	if wallet.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	frequency := req.Frequency
	if frequency == "" {
		frequency = domain.Monthly
	}
	nextDue := now
	if req.NextDueDate != nil {
		nextDue = req.NextDueDate.UTC()
	}

	def := domain.RecurringDefinition{
		RecurringID: uuid.NewString(),
		UserID:      userID,
		WalletID:    req.WalletID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Frequency:   frequency,
		DayOfMonth:  req.DayOfMonth,
		NextDueDate: nextDue,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recurringRepo.SaveRecurring(ctx, def); err != nil {
		logger.Error("Failed to save recurring definition", slog.String("error", err.Error()), slog.String("wallet_id", def.WalletID))
		return nil, fmt.Errorf("failed to save recurring definition: %w", err)
	}

	logger.Info("Recurring definition created", slog.String("recurring_id", def.RecurringID), slog.String("frequency", string(def.Frequency)))
	return &def, nil
}

// ListRecurring retrieves the user's active definitions ordered by next due date.
// Implements portssvc.RecurringSvcFacade
func (s *recurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	defs, err := s.recurringRepo.ListRecurringByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring definitions: %w", err)
	}
	return defs, nil
}

// UpdateRecurring updates a definition's details.
// Implements portssvc.RecurringSvcFacade
func (s *recurringService) UpdateRecurring(ctx context.Context, userID string, recurringID string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedRecurring(ctx, userID, recurringID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.WalletID != nil {
		wallet, err := s.walletRepo.FindWalletByID(ctx, *req.WalletID)
		if err != nil {
			return nil, fmt.Errorf("failed to find wallet %s: %w", *req.WalletID, err)
		}
		if wallet.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
		updated.WalletID = *req.WalletID
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Category != nil {
		updated.Category = *req.Category
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
	if req.Frequency != nil {
		updated.Frequency = *req.Frequency
	}
	if req.DayOfMonth != nil {
		updated.DayOfMonth = req.DayOfMonth
	}
	if req.NextDueDate != nil {
		updated.NextDueDate = req.NextDueDate.UTC()
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateRecurring(ctx, updated); err != nil {
		logger.Error("Failed to update recurring definition", slog.String("error", err.Error()), slog.String("recurring_id", recurringID))
		return nil, fmt.Errorf("failed to update recurring definition %s: %w", recurringID, err)
	}

	logger.Info("Recurring definition updated", slog.String("recurring_id", recurringID))
	return &updated, nil
}

// DeactivateRecurring marks a definition inactive so the scheduler stops
// materializing it. Past materialized transactions are untouched.
// Implements portssvc.RecurringSvcFacade
func (s *recurringService) DeactivateRecurring(ctx context.Context, userID string, recurringID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getOwnedRecurring(ctx, userID, recurringID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.recurringRepo.DeactivateRecurring(ctx, recurringID, userID, now); err != nil {
		logger.Error("Failed to deactivate recurring definition", slog.String("error", err.Error()), slog.String("recurring_id", recurringID))
		return fmt.Errorf("failed to deactivate recurring definition %s: %w", recurringID, err)
	}

	logger.Info("Recurring definition deactivated", slog.String("recurring_id", recurringID))
	return nil
}

// ProcessDue materializes at most one transaction per definition due at or
// before now and advances each processed definition exactly one period.
// A definition whose wallet vanished is skipped silently; other failures are
// collected so the rest of the batch still runs.
// Implements portssvc.RecurringSvcFacade
func (s *recurringService) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.recurringRepo.ListDueRecurring(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due recurring definitions: %w", err)
	}

	processed := 0
	var failures []error
	for _, def := range due {
		wallet, err := s.walletRepo.FindWalletByID(ctx, def.WalletID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Skipping recurring definition with vanished wallet", slog.String("recurring_id", def.RecurringID), slog.String("wallet_id", def.WalletID))
				continue
			}
			failures = append(failures, fmt.Errorf("recurring %s: %w", def.RecurringID, err))
			continue
		}
		if wallet.UserID != def.UserID {
			logger.Warn("Skipping recurring definition whose wallet changed owner", slog.String("recurring_id", def.RecurringID), slog.String("wallet_id", def.WalletID))
			continue
		}

		if err := s.materialize(ctx, def, now); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				// Another tick advanced this definition first.
				logger.Info("Recurring definition already materialized by a concurrent tick", slog.String("recurring_id", def.RecurringID))
				continue
			}
			logger.Error("Failed to materialize recurring definition", slog.String("error", err.Error()), slog.String("recurring_id", def.RecurringID))
			failures = append(failures, fmt.Errorf("recurring %s: %w", def.RecurringID, err))
			continue
		}
		processed++
	}

	logger.Info("Recurring batch processed", slog.Int("due", len(due)), slog.Int("materialized", processed), slog.Int("failed", len(failures)))
	return processed, errors.Join(failures...)
}

// materialize inserts one transaction dated at the definition's current due
// date and advances NextDueDate one period, atomically with the wallet
// balance effect.
func (s *recurringService) materialize(ctx context.Context, def domain.RecurringDefinition, now time.Time) error {
	recurringID := def.RecurringID
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        def.UserID,
		WalletID:      def.WalletID,
		Type:          def.Type,
		Category:      def.Category,
		Amount:        def.Amount,
		Description:   def.Description,
		Date:          def.NextDueDate,
		IsRecurring:   true,
		RecurringID:   &recurringID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     def.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: def.UserID,
		},
	}

	balanceChanges, err := ledger.Effects(txn)
	if err != nil {
		return err
	}

	newNextDue, err := schedule.NextDue(def.Frequency, def.DayOfMonth, def.NextDueDate)
	if err != nil {
		return err
	}
	return s.recurringRepo.MaterializeRecurring(ctx, def, def.NextDueDate, txn, balanceChanges, newNextDue)
}

func (s *recurringService) getOwnedRecurring(ctx context.Context, userID, recurringID string) (*domain.RecurringDefinition, error) {
	def, err := s.recurringRepo.FindRecurringByID(ctx, recurringID)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", recurringID, err)
	}
	if def.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return def, nil
}
