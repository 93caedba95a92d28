package services

import (
	"context"
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
	"github.com/shopspring/decimal"
)

// defaultCurrency is used when a wallet is created without one.
const defaultCurrency = "IDR"

// walletService provides wallet management operations.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
	}
}

// Ensure walletService implements the portssvc.WalletSvcFacade interface
var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// CreateWallet persists a new wallet for the user.
// Implements portssvc.WalletSvcFacade
func (s *walletService) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	walletType := req.Type
	if walletType == "" {
		walletType = domain.WalletCash
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   userID,
		Name:     req.Name,
		Type:     walletType,
		Balance:  balance,
		Currency: currency,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to save wallet", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("type", string(wallet.Type)))
	return &wallet, nil
}

// GetWalletByID retrieves a wallet owned by the user.
// Implements portssvc.WalletSvcFacade
func (s *walletService) GetWalletByID(ctx context.Context, userID string, walletID string) (*domain.Wallet, error) {
	return s.getOwnedWallet(ctx, userID, walletID)
}

// ListWallets retrieves the user's active wallets.
// Implements portssvc.WalletSvcFacade
func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

// UpdateWallet updates a wallet's details. A provided Balance overwrites the
// running balance rather than applying a delta.
// Implements portssvc.WalletSvcFacade
func (s *walletService) UpdateWallet(ctx context.Context, userID string, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.getOwnedWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Balance != nil {
		updated.Balance = *req.Balance
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.walletRepo.UpdateWallet(ctx, updated); err != nil {
		logger.Error("Failed to update wallet", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		return nil, fmt.Errorf("failed to update wallet %s: %w", walletID, err)
	}

	logger.Info("Wallet updated", slog.String("wallet_id", walletID))
	return &updated, nil
}

// DeactivateWallet marks a wallet inactive. Transactions referencing it are
// kept; it simply drops out of listings and dashboard totals.
// Implements portssvc.WalletSvcFacade
func (s *walletService) DeactivateWallet(ctx context.Context, userID string, walletID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getOwnedWallet(ctx, userID, walletID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.walletRepo.DeactivateWallet(ctx, walletID, userID, now); err != nil {
		logger.Error("Failed to deactivate wallet", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		return fmt.Errorf("failed to deactivate wallet %s: %w", walletID, err)
	}

	logger.Info("Wallet deactivated", slog.String("wallet_id", walletID))
	return nil
}

func (s *walletService) getOwnedWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet %s: %w", walletID, err)
	}
	if wallet.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return wallet, nil
}
