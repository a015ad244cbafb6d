package repositories

import (
	"context"

	"github.com/SscSPs/monetra/internal/core/domain"
)

// WalletCache is a best-effort read cache for wallets. A nil WalletCache disables caching.
type WalletCache interface {
	// GetWallet returns the cached wallet, or nil on a miss.
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	// SetWallet fills a miss. It leaves an existing or recently invalidated entry alone.
	SetWallet(ctx context.Context, wallet domain.Wallet) error
	// InvalidateWallets drops the entries and blocks fills for a short while.
	InvalidateWallets(ctx context.Context, walletIDs ...string) error
}
