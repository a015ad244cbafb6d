package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/dto"
	"github.com/SscSPs/monetra/internal/utils/accounting"
	"github.com/google/uuid"
)

type walletService struct {
	BaseService
	walletRepo      portsrepo.WalletRepositoryFacade
	txnRepo         portsrepo.TransactionRepositoryFacade
	cache           portsrepo.WalletCache
	defaultCurrency string
	maxRetries      int
	settleWindow    time.Duration
	now             func() time.Time
	ledger          *ledgerWriter
}

// WalletServiceOption is a functional option for configuring the wallet service
type WalletServiceOption func(*walletService)

// WithWalletCache enables the read-through wallet cache.
func WithWalletCache(cache portsrepo.WalletCache) WalletServiceOption {
	return func(s *walletService) {
		s.cache = cache
	}
}

// WithDefaultCurrency sets the currency of wallets created without one.
func WithDefaultCurrency(code string) WalletServiceOption {
	return func(s *walletService) {
		if code != "" {
			s.defaultCurrency = strings.ToUpper(code)
		}
	}
}

// WithWalletMaxRetries bounds the retry loop on version conflicts.
func WithWalletMaxRetries(n int) WalletServiceOption {
	return func(s *walletService) {
		s.maxRetries = n
	}
}

// WithRepairSettleWindow sets how long after its last write a wallet is left alone by repair.
func WithRepairSettleWindow(d time.Duration) WalletServiceOption {
	return func(s *walletService) {
		if d >= 0 {
			s.settleWindow = d
		}
	}
}

// WithWalletClock overrides the time source used for audit fields.
func WithWalletClock(now func() time.Time) WalletServiceOption {
	return func(s *walletService) {
		s.now = now
	}
}

// NewWalletService creates a new wallet service with the provided options
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, options ...WalletServiceOption) portssvc.WalletSvcFacade {
	svc := &walletService{
		walletRepo:      walletRepo,
		txnRepo:         txnRepo,
		defaultCurrency: domain.DefaultCurrencyCode,
		maxRetries:      DefaultMaxRetries,
		settleWindow:    DefaultRepairSettleWindow,
		now:             func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	svc.ledger = newLedgerWriter(walletRepo, svc.cache, svc.maxRetries, svc.now)
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetWalletByID(ctx context.Context, walletID string, userID string) (*domain.Wallet, error) {
	if s.cache != nil {
		cached, err := s.cache.GetWallet(ctx, walletID)
		if err != nil {
			s.LogWarn(ctx, "Wallet cache read failed", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		}
		if cached != nil {
			if err := ensureWalletOwner(cached, userID); err != nil {
				return nil, err
			}
			return cached, nil
		}
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if err := ensureWalletOwner(wallet, userID); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetWallet(ctx, *wallet); err != nil {
			s.LogWarn(ctx, "Wallet cache write failed", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		}
	}
	return wallet, nil
}

func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets", slog.String("user_id", userID))
		return nil, err
	}
	return wallets, nil
}

func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error) {
	name, err := validateWalletName(req.Name)
	if err != nil {
		return nil, err
	}
	if !req.WalletType.IsValid() {
		return nil, fmt.Errorf("%w: unknown wallet type '%s'", apperrors.ErrValidation, req.WalletType)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := s.now()
	wallet := domain.Wallet{
		WalletID:       uuid.NewString(),
		OwnerID:        userID,
		Name:           name,
		WalletType:     req.WalletType,
		Balance:        req.InitialBalance,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		CurrencyCode:   currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := validateWalletBalanceRules(wallet); err != nil {
		return nil, err
	}

	saved, err := s.walletRepo.SaveWallet(ctx, wallet)
	if err != nil {
		s.LogError(ctx, err, "Failed to save wallet", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Wallet created",
		slog.String("wallet_id", saved.WalletID),
		slog.String("wallet_type", string(saved.WalletType)))
	return saved, nil
}

func (s *walletService) UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest, userID string) (*domain.Wallet, error) {
	var result *domain.Wallet
	err := s.retryOnConflict(ctx, s.maxRetries, "update wallet "+walletID, func() error {
		wallet, err := s.loadOwnedWallet(ctx, walletID, userID)
		if err != nil {
			return err
		}
		if err := applyWalletUpdate(wallet, req); err != nil {
			return err
		}
		wallet.LastUpdatedAt = s.now()
		wallet.LastUpdatedBy = userID
		result, err = s.walletRepo.UpdateWallet(ctx, *wallet)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.ledger.invalidate(ctx, walletID)
	s.LogInfo(ctx, "Wallet updated", slog.String("wallet_id", walletID))
	return result, nil
}

// DeleteWallet removes walletID and every transaction referencing it. Transfers between
// walletID and another wallet are reversed on the other wallet without validation.
func (s *walletService) DeleteWallet(ctx context.Context, walletID string, userID string) (*dto.DeleteWalletResult, error) {
	if _, err := s.loadOwnedWallet(ctx, walletID, userID); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByWallet(ctx, userID, walletID)
	if err != nil {
		return nil, err
	}

	adjusted := make(map[string]domain.Wallet)
	for _, txn := range txns {
		var applied []appliedDelta
		for otherID, delta := range accounting.Reversal(txn) {
			if otherID == walletID {
				continue
			}
			wallet, err := s.ledger.applyDelta(ctx, otherID, delta, false, userID)
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, s.ledger.compensate(ctx, applied, userID, err)
			}
			applied = append(applied, appliedDelta{walletID: otherID, delta: delta})
			adjusted[otherID] = *wallet
		}
		if err := s.txnRepo.DeleteTransaction(ctx, txn.TransactionID, txn.Version); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction during wallet cascade",
				slog.String("wallet_id", walletID),
				slog.String("transaction_id", txn.TransactionID))
			return nil, s.ledger.compensate(ctx, applied, userID, err)
		}
	}

	if err := s.walletRepo.DeleteWallet(ctx, walletID); err != nil {
		return nil, err
	}
	invalidated := []string{walletID}
	for id := range adjusted {
		invalidated = append(invalidated, id)
	}
	s.ledger.invalidate(ctx, invalidated...)

	result := &dto.DeleteWalletResult{
		WalletID:            walletID,
		DeletedTransactions: len(txns),
		AdjustedWallets:     make([]dto.WalletResponse, 0, len(adjusted)),
	}
	for _, id := range sortedWalletIDs(adjusted) {
		w := adjusted[id]
		result.AdjustedWallets = append(result.AdjustedWallets, dto.ToWalletResponse(&w))
	}
	s.LogInfo(ctx, "Wallet deleted",
		slog.String("wallet_id", walletID),
		slog.Int("deleted_transactions", len(txns)),
		slog.Int("adjusted_wallets", len(adjusted)))
	return result, nil
}

func (s *walletService) ReconcileWallet(ctx context.Context, walletID string, userID string, repair bool) (*domain.Reconciliation, error) {
	var rec *domain.Reconciliation
	err := s.retryOnConflict(ctx, s.maxRetries, "reconcile wallet "+walletID, func() error {
		wallet, err := s.loadOwnedWallet(ctx, walletID, userID)
		if err != nil {
			return err
		}
		txns, err := s.txnRepo.ListTransactionsByWallet(ctx, userID, walletID)
		if err != nil {
			return err
		}
		computed := accounting.ComputeBalance(walletID, wallet.InitialBalance, txns)
		rec = &domain.Reconciliation{
			WalletID:         walletID,
			StoredBalance:    wallet.Balance,
			ComputedBalance:  computed,
			Drift:            wallet.Balance.Sub(computed),
			TransactionCount: len(txns),
		}
		if !repair || rec.InSync() {
			return nil
		}
		// Wallets are written before their transaction document, so fresh drift may be a write in flight.
		if s.now().Sub(wallet.LastUpdatedAt) < s.settleWindow {
			rec.Deferred = true
			return nil
		}
		if _, err := s.walletRepo.UpdateWalletBalance(ctx, walletID, computed, wallet.Version, userID, s.now()); err != nil {
			return err
		}
		rec.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !rec.InSync() {
		s.LogWarn(ctx, "Wallet balance drift detected",
			slog.String("wallet_id", walletID),
			slog.String("drift", rec.Drift.String()),
			slog.Bool("repaired", rec.Repaired),
			slog.Bool("deferred", rec.Deferred))
	}
	if rec.Repaired {
		s.ledger.invalidate(ctx, walletID)
	}
	return rec, nil
}

// loadOwnedWallet reads from the store, never the cache, since callers write afterwards.
func (s *walletService) loadOwnedWallet(ctx context.Context, walletID, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if err := ensureWalletOwner(wallet, userID); err != nil {
		return nil, err
	}
	return wallet, nil
}

func validateWalletName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: wallet name is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > domain.MaxWalletNameLength {
		return "", fmt.Errorf("%w: wallet name exceeds %d characters", apperrors.ErrValidation, domain.MaxWalletNameLength)
	}
	return name, nil
}

// validateWalletBalanceRules checks the balance and limit of wallet against its type.
func validateWalletBalanceRules(wallet domain.Wallet) error {
	if wallet.CreditLimit != nil {
		if !wallet.IsCreditCard() {
			return fmt.Errorf("%w: credit limit is only allowed on credit cards", apperrors.ErrValidation)
		}
		if wallet.CreditLimit.IsNegative() {
			return fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
	}
	if !wallet.Balance.IsNegative() {
		return nil
	}
	if !wallet.IsCreditCard() {
		return fmt.Errorf("%w: %s wallets cannot hold a negative balance", apperrors.ErrValidation, wallet.WalletType)
	}
	if wallet.CreditLimit != nil && wallet.Balance.Abs().GreaterThan(*wallet.CreditLimit) {
		return fmt.Errorf("%w: balance %s is beyond the limit of %s", apperrors.ErrCreditLimitExceeded, wallet.Balance.String(), wallet.CreditLimit.String())
	}
	return nil
}

// applyWalletUpdate overlays req on wallet and re-checks the balance rules.
func applyWalletUpdate(wallet *domain.Wallet, req dto.UpdateWalletRequest) error {
	if req.Name != nil {
		name, err := validateWalletName(*req.Name)
		if err != nil {
			return err
		}
		wallet.Name = name
	}
	if req.WalletType != nil {
		if !req.WalletType.IsValid() {
			return fmt.Errorf("%w: unknown wallet type '%s'", apperrors.ErrValidation, *req.WalletType)
		}
		wallet.WalletType = *req.WalletType
		if !wallet.IsCreditCard() && req.CreditLimit == nil {
			wallet.CreditLimit = nil
		}
	}
	switch {
	case req.ClearCreditLimit:
		wallet.CreditLimit = nil
	case req.CreditLimit != nil:
		limit := *req.CreditLimit
		wallet.CreditLimit = &limit
	}
	if req.CurrencyCode != nil {
		wallet.CurrencyCode = strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
	}
	return validateWalletBalanceRules(*wallet)
}

func sortedWalletIDs(wallets map[string]domain.Wallet) []string {
	ids := make([]string, 0, len(wallets))
	for id := range wallets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
