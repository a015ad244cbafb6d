package services

import (
	"context"

	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction owned by userID.
	GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of userID's transactions, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines the balance-affecting operations. Each one either applies
// every wallet change together with the transaction write or leaves balances untouched.
type TransactionWriterSvc interface {
	// CreateTransaction validates and records a transaction, applying its effect to the wallets.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.LedgerResult, error)

	// UpdateTransaction replaces a transaction, applying the net change of old and new effects.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.LedgerResult, error)

	// DeleteTransaction reverses a transaction's effect and removes it.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) (*domain.LedgerResult, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
