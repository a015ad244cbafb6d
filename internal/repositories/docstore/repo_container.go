package docstore

import (
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository onto a single document store.
// cache may be nil.
func NewRepositoryProvider(store portsrepo.DocumentStore, cache portsrepo.WalletCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      newDocWalletRepository(store),
		TransactionRepo: newDocTransactionRepository(store),
		WalletCache:     cache,
	}
}
