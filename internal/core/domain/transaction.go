package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates how a transaction moves money.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER" // debits WalletID, credits ToWalletID
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Category is the closed set of spending/earning categories.
type Category string

const (
	CategoryFood           Category = "FOOD"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryHousing        Category = "HOUSING"
	CategoryEntertainment  Category = "ENTERTAINMENT"
	CategoryShopping       Category = "SHOPPING"
	CategoryHealthcare     Category = "HEALTHCARE"
	CategoryEducation      Category = "EDUCATION"
	CategorySalary         Category = "SALARY"
	CategoryGift           Category = "GIFT"
	CategoryLoan           Category = "LOAN"
	CategoryRepayment      Category = "REPAYMENT"
	CategoryOther          Category = "OTHER"
)

// AllCategories lists categories in display order.
var AllCategories = []Category{
	CategoryFood, CategoryTransportation, CategoryHousing, CategoryEntertainment,
	CategoryShopping, CategoryHealthcare, CategoryEducation, CategorySalary,
	CategoryGift, CategoryLoan, CategoryRepayment, CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction is a single money movement recorded against a wallet.
type Transaction struct {
	TransactionID      string          `json:"transactionID"`
	OwnerID            string          `json:"ownerID"`
	WalletID           string          `json:"walletID"`
	ToWalletID         string          `json:"toWalletID,omitempty"` // TRANSFER only
	Amount             decimal.Decimal `json:"amount"`               // Strictly positive
	TransactionType    TransactionType `json:"transactionType"`
	Category           Category        `json:"category"`
	Date               time.Time       `json:"date"`
	Reason             string          `json:"reason,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	ExpectedReturnDate *time.Time      `json:"expectedReturnDate,omitempty"`
	Version            int64           `json:"version"`
	AuditFields
}

// WalletIDs returns the wallets the transaction touches, source first.
func (t Transaction) WalletIDs() []string {
	if t.TransactionType == Transfer && t.ToWalletID != "" {
		return []string{t.WalletID, t.ToWalletID}
	}
	return []string{t.WalletID}
}

// Touches reports whether the transaction affects walletID.
func (t Transaction) Touches(walletID string) bool {
	for _, id := range t.WalletIDs() {
		if id == walletID {
			return true
		}
	}
	return false
}

// LedgerResult is returned by every balance-affecting mutation.
type LedgerResult struct {
	Transaction Transaction `json:"transaction"`
	Wallets     []Wallet    `json:"wallets"`
}
