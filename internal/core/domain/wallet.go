package domain

import (
	"github.com/shopspring/decimal"
)

// WalletType classifies a wallet. Only CreditCard wallets may carry a negative balance.
type WalletType string

const (
	Cash        WalletType = "CASH"
	BankAccount WalletType = "BANK_ACCOUNT"
	CreditCard  WalletType = "CREDIT_CARD"
	Savings     WalletType = "SAVINGS"
	Investment  WalletType = "INVESTMENT"
	OtherWallet WalletType = "OTHER"
)

// MaxWalletNameLength is the maximum number of characters in a wallet name.
const MaxWalletNameLength = 50

// IsValid reports whether t is one of the known wallet types.
func (t WalletType) IsValid() bool {
	switch t {
	case Cash, BankAccount, CreditCard, Savings, Investment, OtherWallet:
		return true
	}
	return false
}

// Wallet is a user-owned store of value. Balance is a cached aggregate kept in sync by
// every transaction mutation; it equals InitialBalance plus the signed effects of all live
// transactions that reference the wallet.
type Wallet struct {
	WalletID       string           `json:"walletID"`
	OwnerID        string           `json:"ownerID"`
	Name           string           `json:"name"`
	WalletType     WalletType       `json:"walletType"`
	Balance        decimal.Decimal  `json:"balance"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"` // CreditCard only
	CurrencyCode   string           `json:"currencyCode"`
	Version        int64            `json:"version"`
	AuditFields
}

// IsCreditCard reports whether the wallet may hold drawn credit.
func (w Wallet) IsCreditCard() bool {
	return w.WalletType == CreditCard
}

// HasCreditLimit reports whether a credit limit applies to the wallet.
func (w Wallet) HasCreditLimit() bool {
	return w.IsCreditCard() && w.CreditLimit != nil
}

// AvailableCredit returns how much more the card can be drawn, or nil when no limit applies.
func (w Wallet) AvailableCredit() *decimal.Decimal {
	if !w.HasCreditLimit() {
		return nil
	}
	available := w.CreditLimit.Add(w.Balance)
	return &available
}
