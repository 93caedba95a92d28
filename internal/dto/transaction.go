package dto

import (
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/utils/anomaly"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Category is optional; when empty the classifier derives it from the
// description. TransferToWalletID is required for transfers only.
type CreateTransactionRequest struct {
	WalletID           string                 `json:"walletId" binding:"required"`
	Type               domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category           string                 `json:"category"`
	Amount             decimal.Decimal        `json:"amount" binding:"required"`
	Description        string                 `json:"description"`
	Date               *time.Time             `json:"date"`
	TransferToWalletID *string                `json:"transferToWalletId"`
	ReceiptImage       *string                `json:"-"` // Set by the handler from the uploaded file
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	WalletID           *string                 `json:"walletId"`
	Type               *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Category           *string                 `json:"category"`
	Amount             *decimal.Decimal        `json:"amount"`
	Description        *string                 `json:"description"`
	Date               *time.Time              `json:"date"`
	TransferToWalletID *string                 `json:"transferToWalletId"`
	ReceiptImage       *string                 `json:"-"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	WalletID  string     `form:"walletId"`
	Type      string     `form:"type"`
	Category  string     `form:"category"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	Offset    int        `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                 `json:"transactionID"`
	WalletID           string                 `json:"walletID"`
	Type               domain.TransactionType `json:"type"`
	Category           string                 `json:"category"`
	Amount             decimal.Decimal        `json:"amount"`
	Description        string                 `json:"description"`
	Date               time.Time              `json:"date"`
	TransferToWalletID *string                `json:"transferToWalletID,omitempty"`
	ReceiptImage       *string                `json:"receiptImage,omitempty"`
	IsRecurring        bool                   `json:"isRecurring"`
	RecurringID        *string                `json:"recurringID,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
}

// CreateTransactionResponse pairs the created transaction with an optional
// anomaly alert. AnomalyAlert is nil unless the expense was flagged.
type CreateTransactionResponse struct {
	Transaction  TransactionResponse `json:"transaction"`
	AnomalyAlert *anomaly.Result     `json:"anomalyAlert,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		WalletID:           txn.WalletID,
		Type:               txn.Type,
		Category:           txn.Category,
		Amount:             txn.Amount,
		Description:        txn.Description,
		Date:               txn.Date,
		TransferToWalletID: txn.TransferToWalletID,
		ReceiptImage:       txn.ReceiptImage,
		IsRecurring:        txn.IsRecurring,
		RecurringID:        txn.RecurringID,
		CreatedAt:          txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
