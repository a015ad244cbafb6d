package services

import (
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	policy := LedgerPolicy{
		AllowNegativeReversal: cfg.LedgerAllowNegativeReversal,
		MaxRetries:            cfg.LedgerMaxRetries,
	}

	container := &portssvc.ServiceContainer{}

	container.Wallet = NewWalletService(
		repos.WalletRepo,
		repos.TransactionRepo,
		WithWalletCache(repos.WalletCache),
		WithDefaultCurrency(cfg.DefaultCurrency),
		WithWalletMaxRetries(policy.MaxRetries),
		WithRepairSettleWindow(cfg.LedgerRepairSettleWindow),
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.WalletRepo,
		WithLedgerPolicy(policy),
		WithTransactionWalletCache(repos.WalletCache),
	)

	container.Reporting = NewReportingService(repos.WalletRepo, repos.TransactionRepo)

	return container
}
