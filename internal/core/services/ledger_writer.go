package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// LedgerPolicy holds the tunable rules of the balance ledger.
type LedgerPolicy struct {
	// AllowNegativeReversal skips balance validation when a delete reverses a transaction.
	AllowNegativeReversal bool
	// MaxRetries bounds the optimistic-concurrency loop for each wallet write.
	MaxRetries int
}

// DefaultLedgerPolicy validates every reversal and retries conflicts DefaultMaxRetries times.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{MaxRetries: DefaultMaxRetries}
}

// appliedDelta is a wallet write that compensation may have to undo.
type appliedDelta struct {
	walletID string
	delta    decimal.Decimal
}

// ledgerWriter applies balance changes to stored wallets with conditional writes.
type ledgerWriter struct {
	BaseService
	walletRepo portsrepo.WalletRepositoryFacade
	cache      portsrepo.WalletCache
	maxRetries int
	now        func() time.Time
}

func newLedgerWriter(walletRepo portsrepo.WalletRepositoryFacade, cache portsrepo.WalletCache, maxRetries int, now func() time.Time) *ledgerWriter {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	return &ledgerWriter{
		walletRepo: walletRepo,
		cache:      cache,
		maxRetries: maxRetries,
		now:        now,
	}
}

// loadOwnedWallets loads walletIDs and checks each exists and belongs to userID.
func (l *ledgerWriter) loadOwnedWallets(ctx context.Context, userID string, walletIDs []string) (map[string]domain.Wallet, error) {
	wallets, err := l.walletRepo.FindWalletsByIDs(ctx, walletIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range walletIDs {
		wallet, ok := wallets[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrWalletNotFound, id)
		}
		if err := ensureWalletOwner(&wallet, userID); err != nil {
			return nil, err
		}
	}
	return wallets, nil
}

// apply writes every change in ascending wallet order. The returned slice lists the
// writes that succeeded, so the caller can compensate when a later step fails.
func (l *ledgerWriter) apply(ctx context.Context, changes accounting.BalanceChanges, validate bool, userID string) (map[string]domain.Wallet, []appliedDelta, error) {
	updated := make(map[string]domain.Wallet, len(changes))
	applied := make([]appliedDelta, 0, len(changes))
	for _, walletID := range changes.WalletIDs() {
		delta := changes[walletID]
		wallet, err := l.applyDelta(ctx, walletID, delta, validate, userID)
		if err != nil {
			return updated, applied, err
		}
		updated[walletID] = *wallet
		applied = append(applied, appliedDelta{walletID: walletID, delta: delta})
	}
	return updated, applied, nil
}

// applyDelta re-reads the wallet, optionally re-validates, and writes balance+delta
// conditional on the version it read.
func (l *ledgerWriter) applyDelta(ctx context.Context, walletID string, delta decimal.Decimal, validate bool, userID string) (*domain.Wallet, error) {
	var result *domain.Wallet
	err := l.retryOnConflict(ctx, l.maxRetries, "apply balance change to "+walletID, func() error {
		wallet, err := l.walletRepo.FindWalletByID(ctx, walletID)
		if err != nil {
			return err
		}
		if validate {
			if err := accounting.ValidateBalanceChange(*wallet, delta); err != nil {
				return err
			}
		}
		result, err = l.walletRepo.UpdateWalletBalance(ctx, walletID, wallet.Balance.Add(delta), wallet.Version, userID, l.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// compensate undoes applied in reverse order without validation and returns the error
// the caller should report for cause.
func (l *ledgerWriter) compensate(ctx context.Context, applied []appliedDelta, userID string, cause error) error {
	if len(applied) == 0 {
		return cause
	}
	// Undo even when the caller's context is done.
	ctx = context.WithoutCancel(ctx)
	defer l.invalidate(ctx, appliedWalletIDs(applied)...)

	for i := len(applied) - 1; i >= 0; i-- {
		a := applied[i]
		if _, err := l.applyDelta(ctx, a.walletID, a.delta.Neg(), false, userID); err != nil {
			l.LogError(ctx, err, "Compensation failed, wallet balance needs reconciliation",
				slog.String("wallet_id", a.walletID),
				slog.String("delta", a.delta.Neg().String()),
				slog.String("cause", cause.Error()))
			return errors.Join(apperrors.ErrPartialFailure, cause, err)
		}
	}
	l.LogInfo(ctx, "Compensated balance changes after failed write",
		slog.Int("wallets", len(applied)),
		slog.String("cause", cause.Error()))
	return cause
}

// invalidate drops cached copies of walletIDs. Cache failures are logged and ignored.
func (l *ledgerWriter) invalidate(ctx context.Context, walletIDs ...string) {
	if l.cache == nil || len(walletIDs) == 0 {
		return
	}
	if err := l.cache.InvalidateWallets(ctx, walletIDs...); err != nil {
		l.LogWarn(ctx, "Failed to invalidate wallet cache",
			slog.String("error", err.Error()),
			slog.Any("wallet_ids", walletIDs))
	}
}

func appliedWalletIDs(applied []appliedDelta) []string {
	ids := make([]string, len(applied))
	for i, a := range applied {
		ids[i] = a.walletID
	}
	return ids
}
