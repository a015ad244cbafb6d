package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges maps a wallet ID to the signed amount its balance must move by.
type BalanceChanges map[string]decimal.Decimal

// WalletIDs returns the wallets in the change set in ascending order.
// Applying writes in this order keeps concurrent multi-wallet mutations from interleaving differently.
func (c BalanceChanges) WalletIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Negate returns the inverse change set.
func (c BalanceChanges) Negate() BalanceChanges {
	out := make(BalanceChanges, len(c))
	for id, delta := range c {
		out[id] = delta.Neg()
	}
	return out
}

// add accumulates delta for walletID, dropping the entry once it nets to zero.
func (c BalanceChanges) add(walletID string, delta decimal.Decimal) {
	sum := c[walletID].Add(delta)
	if sum.IsZero() {
		delete(c, walletID)
		return
	}
	c[walletID] = sum
}

// CalculateSignedAmount applies the sign a transaction has on walletID.
// Income credits its wallet, Expense debits it, Transfer debits the source and credits the destination.
func CalculateSignedAmount(txn domain.Transaction, walletID string) (decimal.Decimal, error) {
	switch txn.TransactionType {
	case domain.Income:
		if walletID == txn.WalletID {
			return txn.Amount, nil
		}
	case domain.Expense:
		if walletID == txn.WalletID {
			return txn.Amount.Neg(), nil
		}
	case domain.Transfer:
		switch walletID {
		case txn.WalletID:
			return txn.Amount.Neg(), nil
		case txn.ToWalletID:
			return txn.Amount, nil
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type '%s' for transaction %s", apperrors.ErrValidation, txn.TransactionType, txn.TransactionID)
	}
	return decimal.Zero, nil
}

// Effects returns the signed effect of txn on every wallet it touches.
func Effects(txn domain.Transaction) BalanceChanges {
	changes := make(BalanceChanges, 2)
	for _, walletID := range txn.WalletIDs() {
		signed, err := CalculateSignedAmount(txn, walletID)
		if err != nil {
			continue
		}
		changes.add(walletID, signed)
	}
	return changes
}

// Reversal returns the changes that undo txn.
func Reversal(txn domain.Transaction) BalanceChanges {
	return Effects(txn).Negate()
}

// NetChange composes the reversal of oldTxn with the forward effect of newTxn into a single
// delta per wallet. Wallets whose net change is zero are omitted.
func NetChange(oldTxn, newTxn domain.Transaction) BalanceChanges {
	changes := Reversal(oldTxn)
	for walletID, delta := range Effects(newTxn) {
		changes.add(walletID, delta)
	}
	return changes
}

// ValidateTransaction checks the fields of txn that do not depend on wallet state.
func ValidateTransaction(txn domain.Transaction, now time.Time) error {
	if !txn.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if txn.Date.IsZero() || domain.StartOfDay(txn.Date).After(domain.StartOfDay(now)) {
		return apperrors.ErrInvalidDate
	}
	if txn.ExpectedReturnDate != nil && domain.StartOfDay(*txn.ExpectedReturnDate).Before(domain.StartOfDay(txn.Date)) {
		return apperrors.ErrInvalidReturnDate
	}
	if !txn.TransactionType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, txn.TransactionType)
	}
	if !txn.Category.IsValid() {
		return fmt.Errorf("%w: unknown category '%s'", apperrors.ErrValidation, txn.Category)
	}
	if txn.WalletID == "" {
		return fmt.Errorf("%w: wallet is required", apperrors.ErrValidation)
	}
	if txn.TransactionType == domain.Transfer {
		if txn.ToWalletID == "" {
			return fmt.Errorf("%w: transfer requires a destination wallet", apperrors.ErrValidation)
		}
		if txn.ToWalletID == txn.WalletID {
			return fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
		}
	} else if txn.ToWalletID != "" {
		return fmt.Errorf("%w: destination wallet is only allowed on transfers", apperrors.ErrValidation)
	}
	return nil
}

// ValidateBalanceChange checks that moving wallet's balance by delta respects the wallet's type.
// Increases are always allowed.
func ValidateBalanceChange(wallet domain.Wallet, delta decimal.Decimal) error {
	if !delta.IsNegative() {
		return nil
	}
	result := wallet.Balance.Add(delta)
	if !wallet.IsCreditCard() {
		if result.IsNegative() {
			return fmt.Errorf("%w: wallet %s has %s, needs %s", apperrors.ErrInsufficientFunds, wallet.WalletID, wallet.Balance.String(), delta.Neg().String())
		}
		return nil
	}
	if wallet.CreditLimit != nil && result.IsNegative() && result.Abs().GreaterThan(*wallet.CreditLimit) {
		return fmt.Errorf("%w: wallet %s would reach %s with a limit of %s", apperrors.ErrCreditLimitExceeded, wallet.WalletID, result.String(), wallet.CreditLimit.String())
	}
	return nil
}

// ValidateBalanceChanges validates every wallet in changes independently.
func ValidateBalanceChanges(wallets map[string]domain.Wallet, changes BalanceChanges) error {
	for _, walletID := range changes.WalletIDs() {
		wallet, ok := wallets[walletID]
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrWalletNotFound, walletID)
		}
		if err := ValidateBalanceChange(wallet, changes[walletID]); err != nil {
			return err
		}
	}
	return nil
}

// ComputeBalance replays txns on top of initial for walletID.
func ComputeBalance(walletID string, initial decimal.Decimal, txns []domain.Transaction) decimal.Decimal {
	balance := initial
	for _, txn := range txns {
		balance = balance.Add(Effects(txn)[walletID])
	}
	return balance
}
