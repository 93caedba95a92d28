package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a specific wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListWalletsByUser retrieves all active wallets owned by a user.
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWallet updates an existing wallet's details. Balance here is an
	// absolute overwrite, not a delta.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error

	// DeactivateWallet marks a wallet as inactive.
	DeactivateWallet(ctx context.Context, walletID string, userID string, now time.Time) error
}

// WalletTransactionSupport defines wallet operations that run inside a
// caller-owned database transaction. The ledger repository uses these to
// mutate balances atomically with the transaction row.
type WalletTransactionSupport interface {
	// FindWalletsByIDsForUpdate selects wallets and locks them for update within a transaction.
	FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error)

	// ApplyBalanceChangesInTx applies signed deltas to wallet balances within a given transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
