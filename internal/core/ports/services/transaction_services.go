package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/utils/anomaly"
)

// TransactionSvcFacade is the ledger engine: it applies and reverses the
// balance effect of a transaction on its wallet(s) atomically with the
// transaction record mutation.
type TransactionSvcFacade interface {
	// CreateTransaction records a transaction and applies its balance effect.
	// For expenses it additionally runs the anomaly check; the returned alert
	// is nil unless the expense was flagged.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, *anomaly.Result, error)

	// UpdateTransaction reverses the old effect on the old wallet, then
	// applies the new effect on the (possibly different) new wallet, all in
	// one atomic mutation.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses the transaction's effect and removes it.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}
