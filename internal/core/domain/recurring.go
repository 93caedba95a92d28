package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency defines how often a recurring definition materializes.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// RecurringDefinition is a template that periodically generates a concrete
// transaction. NextDueDate only ever advances forward in time: each
// materialization dates the produced transaction at the current NextDueDate
// and then moves NextDueDate exactly one period ahead. Transfers cannot
// recur; Type is INCOME or EXPENSE only.
type RecurringDefinition struct {
	RecurringID string          `json:"recurringID"` // Primary Key (e.g., UUID)
	UserID      string          `json:"userID"`      // Owning user (NON-NULL)
	WalletID    string          `json:"walletID"`    // FK -> Wallet
	Type        TransactionType `json:"type"`        // INCOME or EXPENSE
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"` // Positive value
	Description string          `json:"description"`
	Frequency   Frequency       `json:"frequency"`
	DayOfMonth  *int            `json:"dayOfMonth,omitempty"` // 1-31 anchor, monthly only
	NextDueDate time.Time       `json:"nextDueDate"`
	IsActive    bool            `json:"isActive"` // Soft delete flag
	AuditFields
}
