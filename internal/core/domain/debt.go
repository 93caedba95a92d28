package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtType distinguishes money lent out from money borrowed.
type DebtType string

const (
	DebtOwed  DebtType = "OWED"  // Owed to the user
	DebtOwing DebtType = "OWING" // The user owes
)

// Debt tracks money owed to or by the user. Overdue status is derived at
// read time from DueDate versus the current clock, never stored.
type Debt struct {
	DebtID      string          `json:"debtID"` // Primary Key (e.g., UUID)
	UserID      string          `json:"userID"` // Owning user (NON-NULL)
	Type        DebtType        `json:"type"`
	PersonName  string          `json:"personName"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	IsPaid      bool            `json:"isPaid"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	AuditFields
}

// DebtWithStatus decorates a debt with its derived overdue state.
type DebtWithStatus struct {
	Debt
	IsOverdue   bool `json:"isOverdue"`
	DaysOverdue int  `json:"daysOverdue,omitempty"`
}
