package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod defines the window a budget applies to.
type BudgetPeriod string

const (
	BudgetDaily   BudgetPeriod = "DAILY"
	BudgetWeekly  BudgetPeriod = "WEEKLY"
	BudgetMonthly BudgetPeriod = "MONTHLY"
	BudgetYearly  BudgetPeriod = "YEARLY"
	BudgetCustom  BudgetPeriod = "CUSTOM"
)

// BudgetStatus is the derived spending tier of a budget.
type BudgetStatus string

const (
	BudgetSafe     BudgetStatus = "safe"     // < 60% spent
	BudgetCaution  BudgetStatus = "caution"  // >= 60%
	BudgetWarning  BudgetStatus = "warning"  // >= 80%
	BudgetExceeded BudgetStatus = "exceeded" // >= 100%
)

// Budget is a per-category spending target. Spent/Remaining/Percentage/Status
// are derived at read time, never stored.
type Budget struct {
	BudgetID  string          `json:"budgetID"` // Primary Key (e.g., UUID)
	UserID    string          `json:"userID"`   // Owning user (NON-NULL)
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"` // Target amount
	Period    BudgetPeriod    `json:"period"`
	StartDate time.Time       `json:"startDate"`
	EndDate   *time.Time      `json:"endDate,omitempty"` // CUSTOM period upper bound
	IsActive  bool            `json:"isActive"`          // Soft delete flag
	AuditFields
}

// BudgetProgress is the derived view of a budget's current-period spending.
type BudgetProgress struct {
	Budget
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"` // Capped at 100
	Status     BudgetStatus    `json:"status"`
}
