package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/utils/forecast"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	TargetDate   time.Time       `json:"targetDate" binding:"required"`
	Description  string          `json:"description"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
type UpdateGoalRequest struct {
	Name          *string          `json:"name"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	TargetDate    *time.Time       `json:"targetDate"`
	Description   *string          `json:"description"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
}

// AddToGoalRequest defines the payload for adding saved money to a goal.
type AddToGoalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse defines the data returned for a goal, embedding pacing.
type GoalResponse struct {
	GoalID        string          `json:"goalID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    time.Time       `json:"targetDate"`
	Description   string          `json:"description"`
	IsCompleted   bool            `json:"isCompleted"`
	CreatedAt     time.Time       `json:"createdAt"`
	forecast.GoalPacing
}

// ToGoalResponse converts a domain.Goal plus its pacing to a DTO.
func ToGoalResponse(goal *domain.Goal, pacing forecast.GoalPacing) GoalResponse {
	return GoalResponse{
		GoalID:        goal.GoalID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate,
		Description:   goal.Description,
		IsCompleted:   goal.IsCompleted,
		CreatedAt:     goal.CreatedAt,
		GoalPacing:    pacing,
	}
}
