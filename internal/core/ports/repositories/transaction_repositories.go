package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
)

// TransactionQuery narrows a transaction listing. Zero values mean no restriction.
type TransactionQuery struct {
	OwnerID         string
	WalletID        string
	ToWalletID      string
	TransactionType domain.TransactionType
	Category        domain.Category
	From            *time.Time // inclusive
	To              *time.Time // inclusive
	Limit           int
	NextToken       *string
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions newest first using token-based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, query TransactionQuery) ([]domain.Transaction, *string, error)

	// ListTransactionsByWallet retrieves every transaction of ownerID that touches walletID,
	// as source or transfer destination.
	ListTransactionsByWallet(ctx context.Context, ownerID string, walletID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and returns it with its store-assigned version.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction replaces a transaction, conditional on txn.Version.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction record, conditional on expectedVersion unless it is zero.
	DeleteTransaction(ctx context.Context, transactionID string, expectedVersion int64) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
