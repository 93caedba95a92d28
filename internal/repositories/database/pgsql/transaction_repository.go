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

type PgxTransactionRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletTransactionSupport
}

// newPgxTransactionRepository creates a new repository for ledger transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, walletRepo portsrepo.WalletTransactionSupport) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, wallet_id, transaction_type, category, amount, description, transaction_date, transfer_to_wallet_id, receipt_image, is_recurring, recurring_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.UserID,
		&t.WalletID,
		&t.Type,
		&t.Category,
		&t.Amount,
		&t.Description,
		&t.Date,
		&t.TransferToWalletID,
		&t.ReceiptImage,
		&t.IsRecurring,
		&t.RecurringID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// applyBalanceChanges locks the affected wallets and applies the deltas
// inside the given transaction.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	walletIDs := make([]string, 0, len(balanceChanges))
	for walletID := range balanceChanges {
		walletIDs = append(walletIDs, walletID)
	}
	if _, err := r.walletRepo.FindWalletsByIDsForUpdate(ctx, tx, walletIDs); err != nil {
		return fmt.Errorf("failed to lock wallets for update: %w", err)
	}
	if err := r.walletRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to apply wallet balance changes: %w", err)
	}
	return nil
}

// SaveTransaction inserts a transaction row and applies its wallet balance
// deltas in a single database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
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
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction updates a transaction row and applies the merged balance
// deltas in a single database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET wallet_id = $2, transaction_type = $3, category = $4, amount = $5,
		    description = $6, transaction_date = $7, transfer_to_wallet_id = $8,
		    receipt_image = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.WalletID,
		txn.Type,
		txn.Category,
		txn.Amount,
		txn.Description,
		txn.Date,
		txn.TransferToWalletID,
		txn.ReceiptImage,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction row and applies the reversal
// deltas in a single database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	return txn, nil
}

// ListTransactionsByUser retrieves a filtered list of the user's
// transactions, newest first. A non-positive limit means no limit.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.WalletID != "" {
		args = append(args, filter.WalletID)
		query += fmt.Sprintf(" AND wallet_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND transaction_type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}

	query += " ORDER BY transaction_date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// ListExpenseAmountsByCategory returns the amounts of a user's expenses in a
// category dated on or after since.
func (r *PgxTransactionRepository) ListExpenseAmountsByCategory(ctx context.Context, userID string, category string, since time.Time) ([]decimal.Decimal, error) {
	query := `
		SELECT amount
		FROM transactions
		WHERE user_id = $1 AND transaction_type = $2 AND category = $3 AND transaction_date >= $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, domain.Expense, category, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense amounts: %w", err)
	}
	defer rows.Close()

	amounts := make([]decimal.Decimal, 0)
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense amount: %w", err)
		}
		amounts = append(amounts, amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense amount rows: %w", err)
	}
	return amounts, nil
}
