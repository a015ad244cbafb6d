package services

import (
	"context"

	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/dto"
)

// WalletReaderSvc defines read operations for wallet data
type WalletReaderSvc interface {
	// GetWalletByID retrieves a wallet owned by userID.
	GetWalletByID(ctx context.Context, walletID string, userID string) (*domain.Wallet, error)

	// ListWallets retrieves every wallet owned by userID.
	ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
}

// WalletWriterSvc defines write operations for wallet data
type WalletWriterSvc interface {
	// CreateWallet persists a new wallet.
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error)

	// UpdateWallet updates a wallet's descriptive fields.
	UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest, userID string) (*domain.Wallet, error)

	// DeleteWallet removes a wallet and every transaction that references it.
	DeleteWallet(ctx context.Context, walletID string, userID string) (*dto.DeleteWalletResult, error)
}

// WalletReconcilerSvc defines balance consistency checks
type WalletReconcilerSvc interface {
	// ReconcileWallet recomputes the balance from history and optionally repairs drift.
	ReconcileWallet(ctx context.Context, walletID string, userID string, repair bool) (*domain.Reconciliation, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	WalletReconcilerSvc
}
