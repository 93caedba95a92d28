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

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryWithTx
var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, user_id, name, wallet_type, balance, currency, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.WalletID,
		&w.UserID,
		&w.Name,
		&w.Type,
		&w.Balance,
		&w.Currency,
		&w.IsActive,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		wallet.WalletID,
		wallet.UserID,
		wallet.Name,
		wallet.Type,
		wallet.Balance,
		wallet.Currency,
		wallet.IsActive,
		wallet.CreatedAt,
		wallet.CreatedBy,
		wallet.LastUpdatedAt,
		wallet.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`
	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID: %w", err)
	}
	return wallet, nil
}

func (r *PgxWalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]domain.Wallet, 0)
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, *wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}
	return wallets, nil
}

func (r *PgxWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $2, wallet_type = $3, balance = $4, currency = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE wallet_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		wallet.WalletID,
		wallet.Name,
		wallet.Type,
		wallet.Balance,
		wallet.Currency,
		wallet.IsActive,
		wallet.LastUpdatedAt,
		wallet.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWalletRepository) DeactivateWallet(ctx context.Context, walletID string, userID string, now time.Time) error {
	query := `
		UPDATE wallets
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE wallet_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, walletID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate wallet: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindWalletsByIDsForUpdate retrieves multiple wallets by IDs and locks the
// rows for update. Must be called within a transaction.
func (r *PgxWalletRepository) FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	if len(walletIDs) == 0 {
		return map[string]domain.Wallet{}, nil
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE wallet_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, walletIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets by IDs for update: %w", err)
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.Wallet, len(walletIDs))
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked wallet row: %w", err)
		}
		walletsMap[wallet.WalletID] = *wallet
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked wallet rows: %w", err)
	}

	for _, id := range walletIDs {
		if _, found := walletsMap[id]; !found {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, id)
		}
	}
	return walletsMap, nil
}

// ApplyBalanceChangesInTx applies signed deltas to wallet balances within a
// caller-owned transaction.
func (r *PgxWalletRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE wallets
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1;
	`

	batch := &pgx.Batch{}
	walletIDs := make([]string, 0, len(balanceChanges))
	for walletID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, walletID, delta, now, userID)
			walletIDs = append(walletIDs, walletID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for wallet %s: %w", walletIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: wallet %s not found during balance update", apperrors.ErrNotFound, walletIDs[i])
			}
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", closeErr)
	}
	return batchErr
}
