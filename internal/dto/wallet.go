package dto

import (
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
type CreateWalletRequest struct {
	Name           string            `json:"name" binding:"required,max=50"`
	WalletType     domain.WalletType `json:"walletType" binding:"required,oneof=CASH BANK_ACCOUNT CREDIT_CARD SAVINGS INVESTMENT OTHER"`
	InitialBalance decimal.Decimal   `json:"initialBalance"`
	CreditLimit    *decimal.Decimal  `json:"creditLimit"`                           // CREDIT_CARD only
	CurrencyCode   string            `json:"currencyCode" binding:"omitempty,len=3"` // Defaults to the configured currency
}

// UpdateWalletRequest defines the data allowed for updating a wallet.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The balance is never edited directly.
type UpdateWalletRequest struct {
	Name             *string            `json:"name" binding:"omitempty,max=50"`
	WalletType       *domain.WalletType `json:"walletType" binding:"omitempty,oneof=CASH BANK_ACCOUNT CREDIT_CARD SAVINGS INVESTMENT OTHER"`
	CreditLimit      *decimal.Decimal   `json:"creditLimit"`
	ClearCreditLimit bool               `json:"clearCreditLimit"`
	CurrencyCode     *string            `json:"currencyCode" binding:"omitempty,len=3"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID        string            `json:"walletID"`
	Name            string            `json:"name"`
	WalletType      domain.WalletType `json:"walletType"`
	Balance         decimal.Decimal   `json:"balance"`
	InitialBalance  decimal.Decimal   `json:"initialBalance"`
	CreditLimit     *decimal.Decimal  `json:"creditLimit,omitempty"`
	AvailableCredit *decimal.Decimal  `json:"availableCredit,omitempty"`
	CurrencyCode    string            `json:"currencyCode"`
	Version         int64             `json:"version"`
	CreatedAt       time.Time         `json:"createdAt"`
	CreatedBy       string            `json:"createdBy"`
	LastUpdatedAt   time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy   string            `json:"lastUpdatedBy"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:        w.WalletID,
		Name:            w.Name,
		WalletType:      w.WalletType,
		Balance:         w.Balance,
		InitialBalance:  w.InitialBalance,
		CreditLimit:     w.CreditLimit,
		AvailableCredit: w.AvailableCredit(),
		CurrencyCode:    w.CurrencyCode,
		Version:         w.Version,
		CreatedAt:       w.CreatedAt,
		CreatedBy:       w.CreatedBy,
		LastUpdatedAt:   w.LastUpdatedAt,
		LastUpdatedBy:   w.LastUpdatedBy,
	}
}

// ToListWalletResponse converts a slice of domain.Wallet to a slice of WalletResponse DTOs
func ToListWalletResponse(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i := range wallets {
		res[i] = ToWalletResponse(&wallets[i])
	}
	return res
}

// ListWalletsResponse wraps the list of wallets.
type ListWalletsResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}

// DeleteWalletResult reports what a cascading wallet delete removed.
type DeleteWalletResult struct {
	WalletID            string           `json:"walletID"`
	DeletedTransactions int              `json:"deletedTransactions"`
	AdjustedWallets     []WalletResponse `json:"adjustedWallets"` // other ends of removed transfers
}
