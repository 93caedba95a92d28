package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
// Period defaults to MONTHLY, StartDate to now.
type CreateBudgetRequest struct {
	Category  string              `json:"category" binding:"required"`
	Amount    decimal.Decimal     `json:"amount" binding:"required"`
	Period    domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY CUSTOM"`
	StartDate *time.Time          `json:"startDate"`
	EndDate   *time.Time          `json:"endDate"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Category  *string              `json:"category"`
	Amount    *decimal.Decimal     `json:"amount"`
	Period    *domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY CUSTOM"`
	StartDate *time.Time           `json:"startDate"`
	EndDate   *time.Time           `json:"endDate"`
	IsActive  *bool                `json:"isActive"`
}

// BudgetResponse defines the data returned for a budget, including the
// derived current-period progress.
type BudgetResponse struct {
	BudgetID   string              `json:"budgetID"`
	Category   string              `json:"category"`
	Amount     decimal.Decimal     `json:"amount"`
	Period     domain.BudgetPeriod `json:"period"`
	StartDate  time.Time           `json:"startDate"`
	EndDate    *time.Time          `json:"endDate,omitempty"`
	IsActive   bool                `json:"isActive"`
	Spent      decimal.Decimal     `json:"spent"`
	Remaining  decimal.Decimal     `json:"remaining"`
	Percentage float64             `json:"percentage"`
	Status     domain.BudgetStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// ToBudgetResponse converts a derived domain.BudgetProgress to its DTO.
func ToBudgetResponse(p *domain.BudgetProgress) BudgetResponse {
	return BudgetResponse{
		BudgetID:   p.BudgetID,
		Category:   p.Category,
		Amount:     p.Amount,
		Period:     p.Period,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		IsActive:   p.IsActive,
		Spent:      p.Spent,
		Remaining:  p.Remaining,
		Percentage: p.Percentage,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}

// ToBudgetResponses converts a slice of budget progress values to DTOs.
func ToBudgetResponses(progress []domain.BudgetProgress) []BudgetResponse {
	responses := make([]BudgetResponse, len(progress))
	for i, p := range progress {
		responses[i] = ToBudgetResponse(&p)
	}
	return responses
}
