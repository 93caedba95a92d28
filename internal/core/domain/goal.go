package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target. IsCompleted flips to true once CurrentAmount
// reaches TargetAmount and is never auto-reverted afterwards.
type Goal struct {
	GoalID        string          `json:"goalID"` // Primary Key (e.g., UUID)
	UserID        string          `json:"userID"` // Owning user (NON-NULL)
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	Description   string          `json:"description"`
	IsCompleted   bool            `json:"isCompleted"`
	AuditFields
}
