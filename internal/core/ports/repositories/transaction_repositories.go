package repositories

import (
	"context"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows transaction listings. Zero values mean "no filter".
type TransactionFilter struct {
	WalletID  string
	Type      domain.TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TransactionReader defines read operations for ledger transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a filtered, date-descending list of a
	// user's transactions.
	ListTransactionsByUser(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)

	// ListExpenseAmountsByCategory retrieves the amounts of a user's expenses
	// in a category dated on or after since. Used by the anomaly detector.
	ListExpenseAmountsByCategory(ctx context.Context, userID string, category string, since time.Time) ([]decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger transaction data.
// Every write applies its wallet balance changes in the same database
// transaction as the row mutation; a failure of either rolls back both.
type TransactionWriter interface {
	// SaveTransaction inserts a transaction row and applies the given signed
	// balance deltas to the affected wallets atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction updates a transaction row and applies the given
	// merged (reversal + new effect) balance deltas atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction removes a transaction row and applies the given
	// reversal deltas atomically.
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all ledger transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
