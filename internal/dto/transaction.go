package dto

import (
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	WalletID           string                 `json:"walletID" binding:"required"`
	ToWalletID         string                 `json:"toWalletID"` // TRANSFER only
	Amount             decimal.Decimal        `json:"amount"`
	TransactionType    domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Category           domain.Category        `json:"category" binding:"required,oneof=FOOD TRANSPORTATION HOUSING ENTERTAINMENT SHOPPING HEALTHCARE EDUCATION SALARY GIFT LOAN REPAYMENT OTHER"`
	Date               Date                   `json:"date"`
	Reason             string                 `json:"reason" binding:"max=255"`
	Notes              string                 `json:"notes" binding:"max=1000"`
	ExpectedReturnDate *Date                  `json:"expectedReturnDate"`
}

// UpdateTransactionRequest defines the data allowed for editing a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	WalletID                *string                 `json:"walletID"`
	ToWalletID              *string                 `json:"toWalletID"`
	Amount                  *decimal.Decimal        `json:"amount"`
	TransactionType         *domain.TransactionType `json:"transactionType" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Category                *domain.Category        `json:"category" binding:"omitempty,oneof=FOOD TRANSPORTATION HOUSING ENTERTAINMENT SHOPPING HEALTHCARE EDUCATION SALARY GIFT LOAN REPAYMENT OTHER"`
	Date                    *Date                   `json:"date"`
	Reason                  *string                 `json:"reason" binding:"omitempty,max=255"`
	Notes                   *string                 `json:"notes" binding:"omitempty,max=1000"`
	ExpectedReturnDate      *Date                   `json:"expectedReturnDate"`
	ClearExpectedReturnDate bool                    `json:"clearExpectedReturnDate"`
	Version                 *int64                  `json:"version"` // Optional: reject the edit if the record moved on
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                 `json:"transactionID"`
	WalletID           string                 `json:"walletID"`
	ToWalletID         string                 `json:"toWalletID,omitempty"`
	Amount             decimal.Decimal        `json:"amount"`
	TransactionType    domain.TransactionType `json:"transactionType"`
	Category           domain.Category        `json:"category"`
	Date               Date                   `json:"date"`
	Reason             string                 `json:"reason,omitempty"`
	Notes              string                 `json:"notes,omitempty"`
	ExpectedReturnDate *Date                  `json:"expectedReturnDate,omitempty"`
	Version            int64                  `json:"version"`
	CreatedAt          time.Time              `json:"createdAt"`
	CreatedBy          string                 `json:"createdBy"`
	LastUpdatedAt      time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy      string                 `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID:   txn.TransactionID,
		WalletID:        txn.WalletID,
		ToWalletID:      txn.ToWalletID,
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		Category:        txn.Category,
		Date:            NewDate(txn.Date),
		Reason:          txn.Reason,
		Notes:           txn.Notes,
		Version:         txn.Version,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
		LastUpdatedAt:   txn.LastUpdatedAt,
		LastUpdatedBy:   txn.LastUpdatedBy,
	}
	if txn.ExpectedReturnDate != nil {
		ret := NewDate(*txn.ExpectedReturnDate)
		res.ExpectedReturnDate = &ret
	}
	return res
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// LedgerResultResponse is returned by every create, update and delete of a transaction.
type LedgerResultResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Wallets     []WalletResponse    `json:"wallets"`
}

// ToLedgerResultResponse converts a domain.LedgerResult to its DTO.
func ToLedgerResultResponse(res *domain.LedgerResult) LedgerResultResponse {
	return LedgerResultResponse{
		Transaction: ToTransactionResponse(&res.Transaction),
		Wallets:     ToListWalletResponse(res.Wallets),
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	WalletID        string     `form:"walletId"`
	TransactionType string     `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	Category        string     `form:"category"`
	From            *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To              *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit           int        `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken       *string    `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
