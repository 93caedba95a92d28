package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a ledger transaction.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// Transaction represents a single ledger entry affecting one wallet, or two
// wallets in the transfer case. Amount is always stored positive; the sign of
// the balance effect is determined by Type. A transfer is a single row owned
// by the source wallet with TransferToWalletID set.
type Transaction struct {
	TransactionID      string          `json:"transactionID"` // Primary Key (e.g., UUID)
	UserID             string          `json:"userID"`        // Owning user (NON-NULL)
	WalletID           string          `json:"walletID"`      // FK -> Wallet (source for transfers)
	Type               TransactionType `json:"type"`
	Category           string          `json:"category"`
	Amount             decimal.Decimal `json:"amount"` // Positive value
	Description        string          `json:"description"`
	Date               time.Time       `json:"date"`
	TransferToWalletID *string         `json:"transferToWalletID,omitempty"` // Destination wallet, transfers only
	ReceiptImage       *string         `json:"receiptImage,omitempty"`       // Opaque stored filename
	IsRecurring        bool            `json:"isRecurring"`
	RecurringID        *string         `json:"recurringID,omitempty"` // FK -> RecurringDefinition that materialized this
	AuditFields
}
