package domain

import (
	"github.com/shopspring/decimal"
)

// WalletType defines the kind of money container a wallet represents.
type WalletType string

const (
	WalletCash    WalletType = "CASH"
	WalletBank    WalletType = "BANK"
	WalletEWallet WalletType = "EWALLET"
	WalletCredit  WalletType = "CREDIT"
	WalletOther   WalletType = "OTHER"
)

// Wallet represents a named money container with a running balance.
// Balance is a cached aggregate: it is mutated transactionally alongside
// every ledger-affecting operation rather than derived per read. A direct
// balance edit through UpdateWallet is an absolute overwrite, not a delta.
type Wallet struct {
	WalletID string          `json:"walletID"` // Primary Key (e.g., UUID)
	UserID   string          `json:"userID"`   // Owning user (NON-NULL)
	Name     string          `json:"name"`
	Type     WalletType      `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"` // ISO code, default IDR
	IsActive bool            `json:"isActive"` // Soft delete flag
	AuditFields
}
