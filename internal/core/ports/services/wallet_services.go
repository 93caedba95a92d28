package services

import (
	"context"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/dompetku/dompetku_backend/internal/dto"
)

// WalletSvcFacade defines wallet management operations. All operations are
// scoped to the calling user; foreign wallets surface as ErrNotFound.
type WalletSvcFacade interface {
	CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error)
	GetWalletByID(ctx context.Context, userID string, walletID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
	UpdateWallet(ctx context.Context, userID string, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error)
	DeactivateWallet(ctx context.Context, userID string, walletID string) error
}
