package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a specific wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletsByIDs retrieves multiple wallets keyed by ID. Missing wallets are absent from the map.
	FindWalletsByIDs(ctx context.Context, walletIDs []string) (map[string]domain.Wallet, error)

	// ListWalletsByOwner retrieves every wallet of a user ordered by name.
	ListWalletsByOwner(ctx context.Context, ownerID string) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet and returns it with its store-assigned version.
	SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error)

	// UpdateWallet updates descriptive fields, conditional on wallet.Version.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error)

	// UpdateWalletBalance sets the balance, conditional on expectedVersion.
	// A stale version fails with apperrors.ErrConflict.
	UpdateWalletBalance(ctx context.Context, walletID string, balance decimal.Decimal, expectedVersion int64, userID string, now time.Time) (*domain.Wallet, error)

	// DeleteWallet removes a wallet record.
	DeleteWallet(ctx context.Context, walletID string) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
