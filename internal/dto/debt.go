package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines the data needed to record a debt.
type CreateDebtRequest struct {
	Type        domain.DebtType `json:"type" binding:"required,oneof=OWED OWING"`
	PersonName  string          `json:"personName" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
}

// UpdateDebtRequest defines the data allowed for updating a debt. Setting
// IsPaid to true stamps the paid date.
type UpdateDebtRequest struct {
	Type        *domain.DebtType `json:"type" binding:"omitempty,oneof=OWED OWING"`
	PersonName  *string          `json:"personName"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	DueDate     *time.Time       `json:"dueDate"`
	IsPaid      *bool            `json:"isPaid"`
}

// ListDebtsParams defines query parameters for listing debts.
type ListDebtsParams struct {
	Type   string `form:"type"`
	IsPaid *bool  `form:"isPaid"`
}

// UpcomingDebtsParams defines query parameters for the upcoming-debts view.
type UpcomingDebtsParams struct {
	Days int `form:"days,default=7"`
}

// DebtResponse defines the data returned for a debt with derived overdue state.
type DebtResponse struct {
	DebtID      string          `json:"debtID"`
	Type        domain.DebtType `json:"type"`
	PersonName  string          `json:"personName"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	IsPaid      bool            `json:"isPaid"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	IsOverdue   bool            `json:"isOverdue"`
	DaysOverdue int             `json:"daysOverdue,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToDebtResponse converts a decorated domain.DebtWithStatus to its DTO.
func ToDebtResponse(d *domain.DebtWithStatus) DebtResponse {
	return DebtResponse{
		DebtID:      d.DebtID,
		Type:        d.Type,
		PersonName:  d.PersonName,
		Amount:      d.Amount,
		Description: d.Description,
		DueDate:     d.DueDate,
		IsPaid:      d.IsPaid,
		PaidDate:    d.PaidDate,
		IsOverdue:   d.IsOverdue,
		DaysOverdue: d.DaysOverdue,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDebtResponses converts a slice of decorated debts to DTOs.
func ToDebtResponses(debts []domain.DebtWithStatus) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i, d := range debts {
		responses[i] = ToDebtResponse(&d)
	}
	return responses
}
