package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletBalance is a single wallet line on the dashboard.
type WalletBalance struct {
	WalletID   string          `json:"walletID"`
	Name       string          `json:"name"`
	WalletType WalletType      `json:"walletType"`
	Balance    decimal.Decimal `json:"balance"`
}

// Dashboard summarises a user's finances for a period.
type Dashboard struct {
	From               time.Time       `json:"from"`
	To                 time.Time       `json:"to"`
	TotalBalance       decimal.Decimal `json:"totalBalance"`
	Wallets            []WalletBalance `json:"wallets"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpense       decimal.Decimal `json:"totalExpense"`
	Net                decimal.Decimal `json:"net"`
	TransactionCount   int             `json:"transactionCount"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
}

// CategoryAmount is one row of a category breakdown.
type CategoryAmount struct {
	Category   Category        `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"` // share of the period total, 0-100
}

// CategoryBreakdown groups a period's income or expenses by category.
type CategoryBreakdown struct {
	TransactionType TransactionType  `json:"transactionType"`
	From            time.Time        `json:"from"`
	To              time.Time        `json:"to"`
	Total           decimal.Decimal  `json:"total"`
	Categories      []CategoryAmount `json:"categories"`
}

// DaySummary aggregates the transactions of one calendar day.
type DaySummary struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// Calendar holds a day-by-day view of one month. Days without activity are included.
type Calendar struct {
	Year  int          `json:"year"`
	Month time.Month   `json:"month"`
	Days  []DaySummary `json:"days"`
}

// Reconciliation compares a wallet's cached balance with its transaction history.
type Reconciliation struct {
	WalletID         string          `json:"walletID"`
	StoredBalance    decimal.Decimal `json:"storedBalance"`
	ComputedBalance  decimal.Decimal `json:"computedBalance"`
	Drift            decimal.Decimal `json:"drift"` // stored - computed
	TransactionCount int             `json:"transactionCount"`
	Repaired         bool            `json:"repaired"`
	Deferred         bool            `json:"deferred"` // repair skipped, the wallet was written too recently
}

// InSync reports whether the cached balance matches the history.
func (r Reconciliation) InSync() bool {
	return r.Drift.IsZero()
}
