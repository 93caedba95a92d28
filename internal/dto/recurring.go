package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines the data needed to create a recurring
// definition. Frequency defaults to MONTHLY, NextDueDate to now.
type CreateRecurringRequest struct {
	WalletID    string                 `json:"walletId" binding:"required"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category    string                 `json:"category" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Description string                 `json:"description"`
	Frequency   domain.Frequency       `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	DayOfMonth  *int                   `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
	NextDueDate *time.Time             `json:"nextDueDate"`
}

// UpdateRecurringRequest defines the data allowed for updating a definition.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateRecurringRequest struct {
	WalletID    *string                 `json:"walletId"`
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category    *string                 `json:"category"`
	Amount      *decimal.Decimal        `json:"amount"`
	Description *string                 `json:"description"`
	Frequency   *domain.Frequency       `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	DayOfMonth  *int                    `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
	NextDueDate *time.Time              `json:"nextDueDate"`
	IsActive    *bool                   `json:"isActive"`
}

// RecurringResponse defines the data returned for a recurring definition.
type RecurringResponse struct {
	RecurringID string                 `json:"recurringID"`
	WalletID    string                 `json:"walletID"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Frequency   domain.Frequency       `json:"frequency"`
	DayOfMonth  *int                   `json:"dayOfMonth,omitempty"`
	NextDueDate time.Time              `json:"nextDueDate"`
	IsActive    bool                   `json:"isActive"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ToRecurringResponse converts a domain.RecurringDefinition to its DTO.
func ToRecurringResponse(def *domain.RecurringDefinition) RecurringResponse {
	return RecurringResponse{
		RecurringID: def.RecurringID,
		WalletID:    def.WalletID,
		Type:        def.Type,
		Category:    def.Category,
		Amount:      def.Amount,
		Description: def.Description,
		Frequency:   def.Frequency,
		DayOfMonth:  def.DayOfMonth,
		NextDueDate: def.NextDueDate,
		IsActive:    def.IsActive,
		CreatedAt:   def.CreatedAt,
	}
}

// ToRecurringResponses converts a slice of definitions to DTOs.
func ToRecurringResponses(defs []domain.RecurringDefinition) []RecurringResponse {
	responses := make([]RecurringResponse, len(defs))
	for i, def := range defs {
		responses[i] = ToRecurringResponse(&def)
	}
	return responses
}

// ProcessRecurringResponse reports the outcome of one scheduler tick.
type ProcessRecurringResponse struct {
	Processed int `json:"processed"`
}
