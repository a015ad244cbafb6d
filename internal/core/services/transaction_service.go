package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/dto"
	"github.com/SscSPs/monetra/internal/utils/accounting"
	"github.com/google/uuid"
)

// transactionService records transactions and keeps wallet balances in step with them.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	walletRepo portsrepo.WalletRepositoryFacade
	cache      portsrepo.WalletCache
	policy     LedgerPolicy
	now        func() time.Time
	ledger     *ledgerWriter
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the time source used for validation and audit fields.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithLedgerPolicy sets the ledger rules.
func WithLedgerPolicy(policy LedgerPolicy) TransactionServiceOption {
	return func(s *transactionService) {
		s.policy = policy
	}
}

// WithTransactionWalletCache sets the cache invalidated after balance writes.
func WithTransactionWalletCache(cache portsrepo.WalletCache) TransactionServiceOption {
	return func(s *transactionService) {
		s.cache = cache
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:    txnRepo,
		walletRepo: walletRepo,
		policy:     DefaultLedgerPolicy(),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	svc.ledger = newLedgerWriter(walletRepo, svc.cache, svc.policy.MaxRetries, svc.now)
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransactionOwner(txn, userID); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	query := portsrepo.TransactionQuery{
		OwnerID:         userID,
		WalletID:        params.WalletID,
		TransactionType: domain.TransactionType(params.TransactionType),
		Category:        domain.Category(strings.ToUpper(params.Category)),
		Limit:           params.Limit,
		NextToken:       params.NextToken,
	}
	if query.TransactionType != "" && !query.TransactionType.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, params.TransactionType)
	}
	if query.Category != "" && !query.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category '%s'", apperrors.ErrValidation, params.Category)
	}
	if params.From != nil {
		from := domain.StartOfDay(*params.From)
		query.From = &from
	}
	if params.To != nil {
		to := endOfDay(*params.To)
		query.To = &to
	}
	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}

	txns, next, err := s.txnRepo.ListTransactions(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    next,
	}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.LedgerResult, error) {
	now := s.now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		OwnerID:            userID,
		WalletID:           req.WalletID,
		ToWalletID:         req.ToWalletID,
		Amount:             req.Amount,
		TransactionType:    req.TransactionType,
		Category:           req.Category,
		Reason:             strings.TrimSpace(req.Reason),
		Notes:              strings.TrimSpace(req.Notes),
		ExpectedReturnDate: dayPtr(req.ExpectedReturnDate.Ptr()),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if !req.Date.IsZero() {
		txn.Date = domain.StartOfDay(req.Date.Time)
	}

	if err := accounting.ValidateTransaction(txn, now); err != nil {
		return nil, err
	}
	wallets, err := s.ledger.loadOwnedWallets(ctx, userID, txn.WalletIDs())
	if err != nil {
		return nil, err
	}
	changes := accounting.Effects(txn)
	if err := accounting.ValidateBalanceChanges(wallets, changes); err != nil {
		return nil, err
	}

	updated, applied, err := s.ledger.apply(ctx, changes, true, userID)
	if err != nil {
		return nil, s.ledger.compensate(ctx, applied, userID, err)
	}
	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction, compensating", slog.String("transaction_id", txn.TransactionID))
		return nil, s.ledger.compensate(ctx, applied, userID, err)
	}
	s.ledger.invalidate(ctx, changes.WalletIDs()...)

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("type", string(saved.TransactionType)),
		slog.String("amount", saved.Amount.String()))
	return &domain.LedgerResult{
		Transaction: *saved,
		Wallets:     mergeWallets(saved.WalletIDs(), wallets, updated),
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.LedgerResult, error) {
	existing, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != existing.Version {
		return nil, fmt.Errorf("%w: transaction %s is at version %d", apperrors.ErrConflict, transactionID, existing.Version)
	}

	now := s.now()
	updatedTxn := applyTransactionUpdate(*existing, req)
	updatedTxn.LastUpdatedAt = now
	updatedTxn.LastUpdatedBy = userID

	if err := accounting.ValidateTransaction(updatedTxn, now); err != nil {
		return nil, err
	}
	touched := unionIDs(existing.WalletIDs(), updatedTxn.WalletIDs())
	wallets, err := s.ledger.loadOwnedWallets(ctx, userID, touched)
	if err != nil {
		return nil, err
	}
	changes := accounting.NetChange(*existing, updatedTxn)
	if err := accounting.ValidateBalanceChanges(wallets, changes); err != nil {
		return nil, err
	}

	updated, applied, err := s.ledger.apply(ctx, changes, true, userID)
	if err != nil {
		return nil, s.ledger.compensate(ctx, applied, userID, err)
	}
	saved, err := s.txnRepo.UpdateTransaction(ctx, updatedTxn)
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction, compensating", slog.String("transaction_id", transactionID))
		return nil, s.ledger.compensate(ctx, applied, userID, err)
	}
	s.ledger.invalidate(ctx, changes.WalletIDs()...)

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.Int("wallets_changed", len(changes)))
	return &domain.LedgerResult{
		Transaction: *saved,
		Wallets:     mergeWallets(touched, wallets, updated),
	}, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) (*domain.LedgerResult, error) {
	existing, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}
	wallets, err := s.ledger.loadOwnedWallets(ctx, userID, existing.WalletIDs())
	if err != nil {
		return nil, err
	}
	changes := accounting.Reversal(*existing)
	validate := !s.policy.AllowNegativeReversal
	if validate {
		if err := accounting.ValidateBalanceChanges(wallets, changes); err != nil {
			return nil, err
		}
	}

	updated, applied, err := s.ledger.apply(ctx, changes, validate, userID)
	if err != nil {
		return nil, s.ledger.compensate(ctx, applied, userID, err)
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, existing.Version); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction, compensating", slog.String("transaction_id", transactionID))
		return nil, s.ledger.compensate(ctx, applied, userID, err)
	}
	s.ledger.invalidate(ctx, changes.WalletIDs()...)

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return &domain.LedgerResult{
		Transaction: *existing,
		Wallets:     mergeWallets(existing.WalletIDs(), wallets, updated),
	}, nil
}

// applyTransactionUpdate overlays the provided fields of req on txn.
func applyTransactionUpdate(txn domain.Transaction, req dto.UpdateTransactionRequest) domain.Transaction {
	if req.WalletID != nil {
		txn.WalletID = *req.WalletID
	}
	if req.ToWalletID != nil {
		txn.ToWalletID = *req.ToWalletID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.TransactionType != nil {
		txn.TransactionType = *req.TransactionType
	}
	// A transaction that stops being a transfer loses its destination unless one was sent explicitly.
	if txn.TransactionType != domain.Transfer && req.ToWalletID == nil {
		txn.ToWalletID = ""
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Date != nil {
		txn.Date = time.Time{}
		if !req.Date.IsZero() {
			txn.Date = domain.StartOfDay(req.Date.Time)
		}
	}
	if req.Reason != nil {
		txn.Reason = strings.TrimSpace(*req.Reason)
	}
	if req.Notes != nil {
		txn.Notes = strings.TrimSpace(*req.Notes)
	}
	switch {
	case req.ClearExpectedReturnDate:
		txn.ExpectedReturnDate = nil
	case req.ExpectedReturnDate != nil:
		txn.ExpectedReturnDate = dayPtr(req.ExpectedReturnDate.Ptr())
	}
	return txn
}

// mergeWallets lists the wallets of ids, preferring the freshly written copy.
func mergeWallets(ids []string, loaded, written map[string]domain.Wallet) []domain.Wallet {
	out := make([]domain.Wallet, 0, len(ids))
	for _, id := range ids {
		if w, ok := written[id]; ok {
			out = append(out, w)
			continue
		}
		if w, ok := loaded[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// unionIDs returns the distinct ids of a and b in ascending order.
func unionIDs(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, id := range append(append([]string{}, a...), b...) {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	day := domain.StartOfDay(*t)
	return &day
}

// endOfDay returns the last instant of t's UTC day.
func endOfDay(t time.Time) time.Time {
	return domain.StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
