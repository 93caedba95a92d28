package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// maskedAmount replaces amounts in responses when the user has privacy mode on.
const maskedAmount = "***"

// CreateWalletRequest defines the data needed to create a new wallet.
type CreateWalletRequest struct {
	Name     string            `json:"name" binding:"required"`
	Type     domain.WalletType `json:"type" binding:"omitempty,oneof=CASH BANK EWALLET CREDIT OTHER"`
	Balance  *decimal.Decimal  `json:"balance"`                               // Optional opening balance, defaults to 0
	Currency string            `json:"currency" binding:"omitempty,currency"` // Optional, defaults to IDR
}

// UpdateWalletRequest defines the data allowed for updating a wallet.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Balance is an absolute overwrite of the running balance.
type UpdateWalletRequest struct {
	Name     *string            `json:"name"`
	Type     *domain.WalletType `json:"type" binding:"omitempty,oneof=CASH BANK EWALLET CREDIT OTHER"`
	Balance  *decimal.Decimal   `json:"balance"`
	Currency *string            `json:"currency" binding:"omitempty,currency"`
	IsActive *bool              `json:"isActive"`
}

// WalletResponse defines the data returned for a wallet. Balance is a string
// so privacy mode can mask it.
type WalletResponse struct {
	WalletID  string            `json:"walletID"`
	Name      string            `json:"name"`
	Type      domain.WalletType `json:"type"`
	Balance   string            `json:"balance"`
	Currency  string            `json:"currency"`
	IsActive  bool              `json:"isActive"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO, masking
// the balance when privacy mode is enabled.
func ToWalletResponse(w *domain.Wallet, privacyMode bool) WalletResponse {
	balance := w.Balance.String()
	if privacyMode {
		balance = maskedAmount
	}
	return WalletResponse{
		WalletID:  w.WalletID,
		Name:      w.Name,
		Type:      w.Type,
		Balance:   balance,
		Currency:  w.Currency,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}

// ToListWalletResponse converts a slice of domain.Wallet to WalletResponse DTOs.
func ToListWalletResponse(wallets []domain.Wallet, privacyMode bool) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i, w := range wallets {
		res[i] = ToWalletResponse(&w, privacyMode)
	}
	return res
}

// WalletBalanceResponse defines the data returned for a balance query.
type WalletBalanceResponse struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}
