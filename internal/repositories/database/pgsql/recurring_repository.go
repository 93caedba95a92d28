package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxRecurringRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletTransactionSupport
}

// newPgxRecurringRepository creates a new repository for recurring definition data.
func newPgxRecurringRepository(pool *pgxpool.Pool, walletRepo portsrepo.WalletTransactionSupport) portsrepo.RecurringRepositoryWithTx {
	return &PgxRecurringRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

// Ensure PgxRecurringRepository implements portsrepo.RecurringRepositoryWithTx
var _ portsrepo.RecurringRepositoryWithTx = (*PgxRecurringRepository)(nil)

const recurringColumns = `recurring_id, user_id, wallet_id, transaction_type, category, amount, description, frequency, day_of_month, next_due_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanRecurring(row pgx.Row) (*domain.RecurringDefinition, error) {
	var d domain.RecurringDefinition
	err := row.Scan(
		&d.RecurringID,
		&d.UserID,
		&d.WalletID,
		&d.Type,
		&d.Category,
		&d.Amount,
		&d.Description,
		&d.Frequency,
		&d.DayOfMonth,
		&d.NextDueDate,
		&d.IsActive,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	query := `
		INSERT INTO recurring_definitions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		def.RecurringID,
		def.UserID,
		def.WalletID,
		def.Type,
		def.Category,
		def.Amount,
		def.Description,
		def.Frequency,
		def.DayOfMonth,
		def.NextDueDate,
		def.IsActive,
		def.CreatedAt,
		def.CreatedBy,
		def.LastUpdatedAt,
		def.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurring definition: %w", err)
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions WHERE recurring_id = $1;`
	def, err := scanRecurring(r.Pool.QueryRow(ctx, query, recurringID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring definition by ID: %w", err)
	}
	return def, nil
}

func (r *PgxRecurringRepository) ListRecurringByUser(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_definitions
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY next_due_date;
	`
	return r.queryRecurring(ctx, query, userID)
}

func (r *PgxRecurringRepository) ListDueRecurring(ctx context.Context, now time.Time) ([]domain.RecurringDefinition, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_definitions
		WHERE is_active = TRUE AND next_due_date <= $1
		ORDER BY next_due_date;
	`
	return r.queryRecurring(ctx, query, now)
}

func (r *PgxRecurringRepository) queryRecurring(ctx context.Context, query string, args ...interface{}) ([]domain.RecurringDefinition, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring definitions: %w", err)
	}
	defer rows.Close()

	defs := make([]domain.RecurringDefinition, 0)
	for rows.Next() {
		def, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring definition row: %w", err)
		}
		defs = append(defs, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring definition rows: %w", err)
	}
	return defs, nil
}

func (r *PgxRecurringRepository) UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	query := `
		UPDATE recurring_definitions
		SET wallet_id = $2, transaction_type = $3, category = $4, amount = $5,
		    description = $6, frequency = $7, day_of_month = $8, next_due_date = $9,
		    is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE recurring_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		def.RecurringID,
		def.WalletID,
		def.Type,
		def.Category,
		def.Amount,
		def.Description,
		def.Frequency,
		def.DayOfMonth,
		def.NextDueDate,
		def.IsActive,
		def.LastUpdatedAt,
		def.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring definition: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringRepository) DeactivateRecurring(ctx context.Context, recurringID string, userID string, now time.Time) error {
	query := `
		UPDATE recurring_definitions
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE recurring_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, recurringID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate recurring definition: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MaterializeRecurring performs one schedule advancement atomically. The
// definition row is locked first; if its next due date no longer matches
// expectedDue another tick has already advanced it and ErrConflict is
// returned without writing anything.
func (r *PgxRecurringRepository) MaterializeRecurring(ctx context.Context, def domain.RecurringDefinition, expectedDue time.Time, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, newNextDue time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var currentDue time.Time
	err = tx.QueryRow(ctx, `
		SELECT next_due_date
		FROM recurring_definitions
		WHERE recurring_id = $1 AND is_active = TRUE
		FOR UPDATE;
	`, def.RecurringID).Scan(&currentDue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock recurring definition %s: %w", def.RecurringID, err)
	}
	if !currentDue.Equal(expectedDue) {
		return apperrors.ErrConflict
	}

	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID,
		txn.UserID,
		txn.WalletID,
		txn.Type,
		txn.Category,
		txn.Amount,
		txn.Description,
		txn.Date,
		txn.TransferToWalletID,
		txn.ReceiptImage,
		txn.IsRecurring,
		txn.RecurringID,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert materialized transaction "+txn.TransactionID, err)
	}

	walletIDs := make([]string, 0, len(balanceChanges))
	for walletID := range balanceChanges {
		walletIDs = append(walletIDs, walletID)
	}
	if _, err := r.walletRepo.FindWalletsByIDsForUpdate(ctx, tx, walletIDs); err != nil {
		return fmt.Errorf("failed to lock wallets for materialization: %w", err)
	}
	if err := r.walletRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply wallet balance changes: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE recurring_definitions
		SET next_due_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE recurring_id = $1;
	`, def.RecurringID, newNextDue, txn.CreatedAt, txn.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance recurring definition "+def.RecurringID, err)
	}

	return r.Commit(ctx, tx)
}
