package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/utils/anomaly"
	"github.com/dompetku/dompetku_backend/internal/utils/classify"
	"github.com/dompetku/dompetku_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositive     = errors.New("transaction amount must be positive")
	ErrTransferNoDestination = errors.New("transfer requires a destination wallet")
	ErrTransferSameWallet    = errors.New("transfer source and destination wallets must differ")
)

// transferCategory is the fixed category assigned to transfer transactions.
const transferCategory = "Transfer"

// anomalyLookbackMonths bounds the expense history the anomaly detector sees.
const anomalyLookbackMonths = 3

// transactionService is the ledger engine: every mutation pairs a transaction
// row change with the signed balance effect on the wallet(s) it touches, and
// the repository applies both in a single database transaction.
type transactionService struct {
	txnRepo    portsrepo.TransactionRepositoryFacade
	walletRepo portsrepo.WalletReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, walletRepo portsrepo.WalletReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:    txnRepo,
		walletRepo: walletRepo,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolveOwnedWallet fetches a wallet and verifies the caller owns it.
// Foreign wallets surface as ErrNotFound to obscure their existence.
func (s *transactionService) resolveOwnedWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet %s: %w", walletID, err)
	}
	if wallet.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return wallet, nil
}

// CreateTransaction records a transaction and applies its balance effect.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, *anomaly.Result, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	wallet, err := s.resolveOwnedWallet(ctx, userID, req.WalletID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	category := req.Category
	description := req.Description

	var transferTo *string
	if req.Type == domain.Transfer {
		if req.TransferToWalletID == nil || *req.TransferToWalletID == "" {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferNoDestination)
		}
		if *req.TransferToWalletID == req.WalletID {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferSameWallet)
		}
		destination, err := s.resolveOwnedWallet(ctx, userID, *req.TransferToWalletID)
		if err != nil {
			return nil, nil, err
		}
		transferTo = req.TransferToWalletID
		category = transferCategory
		if description == "" {
			description = fmt.Sprintf("Transfer to %s", destination.Name)
		}
	} else if category == "" {
		category = classify.Categorize(description)
	}

	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             userID,
		WalletID:           wallet.WalletID,
		Type:               req.Type,
		Category:           category,
		Amount:             req.Amount,
		Description:        description,
		Date:               date,
		TransferToWalletID: transferTo,
		ReceiptImage:       req.ReceiptImage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Run the anomaly check before persisting so the new expense does not
	// inflate its own baseline.
	var alert *anomaly.Result
	if txn.Type == domain.Expense {
		since := date.AddDate(0, -anomalyLookbackMonths, 0)
		history, histErr := s.txnRepo.ListExpenseAmountsByCategory(ctx, userID, category, since)
		if histErr != nil {
			// An alert is advisory; never block the write on it.
			logger.Warn("Failed to load expense history for anomaly check", slog.String("error", histErr.Error()), slog.String("category", category))
		} else {
			amounts := make([]float64, len(history))
			for i, amount := range history {
				amounts[i] = amount.InexactFloat64()
			}
			result := anomaly.Detect(txn.Amount.InexactFloat64(), amounts)
			if result.IsAnomaly {
				alert = &result
			}
		}
	}

	balanceChanges, err := ledger.Effects(txn)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("wallet_id", txn.WalletID))
		return nil, nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)), slog.String("wallet_id", txn.WalletID))
	return &txn, alert, nil
}

// UpdateTransaction reverses the old balance effect and applies the new one
// in a single atomic mutation.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.WalletID != nil {
		updated.WalletID = *req.WalletID
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		updated.Amount = *req.Amount
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != nil {
		updated.Date = req.Date.UTC()
	}
	if req.TransferToWalletID != nil {
		updated.TransferToWalletID = req.TransferToWalletID
	}
	if req.ReceiptImage != nil {
		updated.ReceiptImage = req.ReceiptImage
	}

	if updated.Type == domain.Transfer {
		if updated.TransferToWalletID == nil || *updated.TransferToWalletID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferNoDestination)
		}
		if *updated.TransferToWalletID == updated.WalletID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferSameWallet)
		}
		if _, err := s.resolveOwnedWallet(ctx, userID, *updated.TransferToWalletID); err != nil {
			return nil, err
		}
		updated.Category = transferCategory
	} else {
		// A type change away from TRANSFER drops the dangling destination.
		updated.TransferToWalletID = nil
	}

	if updated.WalletID != existing.WalletID {
		if _, err := s.resolveOwnedWallet(ctx, userID, updated.WalletID); err != nil {
			return nil, err
		}
	}

	reversal, err := ledger.ReverseEffects(*existing)
	if err != nil {
		logger.Error("Failed to compute reversal for transaction update", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to compute balance reversal: %w", err)
	}
	s.pruneVanishedWallets(ctx, reversal, existing.WalletID)

	newEffects, err := ledger.Effects(updated)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	balanceChanges := ledger.MergeEffects(reversal, newEffects)
	if err := s.txnRepo.UpdateTransaction(ctx, updated, balanceChanges); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction reverses the transaction's balance effect and removes it.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	reversal, err := ledger.ReverseEffects(*existing)
	if err != nil {
		logger.Error("Failed to compute reversal for transaction delete", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to compute balance reversal: %w", err)
	}
	s.pruneVanishedWallets(ctx, reversal, existing.WalletID)

	now := time.Now().UTC()
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, reversal, userID, now); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// GetTransactionByID retrieves a specific transaction owned by the user.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.getOwnedTransaction(ctx, userID, transactionID)
}

// ListTransactions retrieves a filtered, date-descending list of the user's transactions.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		WalletID:  params.WalletID,
		Type:      domain.TransactionType(params.Type),
		Category:  params.Category,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	transactions, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (s *transactionService) getOwnedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// pruneVanishedWallets drops reversal legs whose wallet no longer exists.
// A deleted transfer destination must not fail the whole reversal; the
// surviving wallet is always kept regardless.
func (s *transactionService) pruneVanishedWallets(ctx context.Context, balanceChanges map[string]decimal.Decimal, keepWalletID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for walletID := range balanceChanges {
		if walletID == keepWalletID {
			continue
		}
		if _, err := s.walletRepo.FindWalletByID(ctx, walletID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Skipping balance reversal for vanished wallet", slog.String("wallet_id", walletID))
				delete(balanceChanges, walletID)
			}
		}
	}
}
