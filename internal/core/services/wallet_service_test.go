package services_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/core/services"
	"github.com/SscSPs/monetra/internal/dto"
)

func (s *LedgerTestSuite) TestCreateWalletRules() {
	negativeLimit := dec(-1)
	limit := dec(100)

	testCases := []struct {
		name    string
		req     dto.CreateWalletRequest
		wantErr error
	}{
		{"blank name", dto.CreateWalletRequest{Name: "   ", WalletType: domain.Cash}, apperrors.ErrValidation},
		{"long name", dto.CreateWalletRequest{Name: strings.Repeat("x", 51), WalletType: domain.Cash}, apperrors.ErrValidation},
		{"unknown type", dto.CreateWalletRequest{Name: "A", WalletType: "PIGGY"}, apperrors.ErrValidation},
		{"negative cash", dto.CreateWalletRequest{Name: "A", WalletType: domain.Cash, InitialBalance: dec(-1)}, apperrors.ErrValidation},
		{"limit on cash", dto.CreateWalletRequest{Name: "A", WalletType: domain.Cash, CreditLimit: &limit}, apperrors.ErrValidation},
		{"negative limit", dto.CreateWalletRequest{Name: "A", WalletType: domain.CreditCard, CreditLimit: &negativeLimit}, apperrors.ErrValidation},
		{"card beyond limit", dto.CreateWalletRequest{Name: "A", WalletType: domain.CreditCard, InitialBalance: dec(-101), CreditLimit: &limit}, apperrors.ErrCreditLimitExceeded},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.wallets.CreateWallet(s.ctx, tc.req, owner)
			s.ErrorIs(err, tc.wantErr)
		})
	}

	w, err := s.wallets.CreateWallet(s.ctx, dto.CreateWalletRequest{
		Name: "  Visa  ", WalletType: domain.CreditCard, InitialBalance: dec(-100), CreditLimit: &limit,
	}, owner)
	s.Require().NoError(err)
	s.Equal("Visa", w.Name)
	s.Equal(domain.DefaultCurrencyCode, w.CurrencyCode)
	s.True(dec(-100).Equal(w.InitialBalance))
	s.Require().NotNil(w.AvailableCredit())
	s.True(w.AvailableCredit().IsZero())
}

func (s *LedgerTestSuite) TestUpdateWalletRules() {
	limit := int64(300)
	card := s.createWallet("Visa", domain.CreditCard, 0, &limit)
	_, err := s.record(card.WalletID, domain.Expense, 200)
	s.Require().NoError(err)

	cash := domain.Cash
	_, err = s.wallets.UpdateWallet(s.ctx, card.WalletID, dto.UpdateWalletRequest{WalletType: &cash}, owner)
	s.ErrorIs(err, apperrors.ErrValidation, "a card in debt cannot become cash")

	lower := dec(150)
	_, err = s.wallets.UpdateWallet(s.ctx, card.WalletID, dto.UpdateWalletRequest{CreditLimit: &lower}, owner)
	s.ErrorIs(err, apperrors.ErrCreditLimitExceeded)

	name := "Gold"
	updated, err := s.wallets.UpdateWallet(s.ctx, card.WalletID, dto.UpdateWalletRequest{Name: &name, ClearCreditLimit: true}, owner)
	s.Require().NoError(err)
	s.Equal("Gold", updated.Name)
	s.Nil(updated.CreditLimit)
	s.True(dec(-200).Equal(updated.Balance), "descriptive edits never change the balance")

	_, err = s.wallets.UpdateWallet(s.ctx, card.WalletID, dto.UpdateWalletRequest{Name: &name}, other)
	s.ErrorIs(err, apperrors.ErrWalletOwnershipMismatch)
}

func (s *LedgerTestSuite) TestDeleteWalletCascades() {
	bank := s.createWallet("Bank", domain.BankAccount, 100, nil)
	savings := s.createWallet("Savings", domain.Savings, 0, nil)

	_, err := s.record(bank.WalletID, domain.Expense, 10)
	s.Require().NoError(err)
	_, err = s.txns.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		WalletID: bank.WalletID, ToWalletID: savings.WalletID, Amount: dec(60),
		TransactionType: domain.Transfer, Category: domain.CategoryOther, Date: dto.NewDate(s.now),
	}, owner)
	s.Require().NoError(err)
	_, err = s.record(savings.WalletID, domain.Income, 5)
	s.Require().NoError(err)
	s.assertBalance(savings.WalletID, 65)

	res, err := s.wallets.DeleteWallet(s.ctx, bank.WalletID, owner)
	s.Require().NoError(err)
	s.Equal(2, res.DeletedTransactions)
	s.Require().Len(res.AdjustedWallets, 1)
	s.Equal(savings.WalletID, res.AdjustedWallets[0].WalletID)
	s.assertBalance(savings.WalletID, 5)

	_, err = s.wallets.GetWalletByID(s.ctx, bank.WalletID, owner)
	s.ErrorIs(err, apperrors.ErrWalletNotFound)

	page, err := s.txns.ListTransactions(s.ctx, owner, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Len(page.Transactions, 1, "only the savings income survives")

	rec, err := s.wallets.ReconcileWallet(s.ctx, savings.WalletID, owner, false)
	s.Require().NoError(err)
	s.True(rec.InSync())
}

func (s *LedgerTestSuite) TestReconcileRepairsDrift() {
	cash := s.createWallet("Cash", domain.Cash, 100, nil)
	_, err := s.record(cash.WalletID, domain.Expense, 30)
	s.Require().NoError(err)

	stored, err := s.repos.WalletRepo.FindWalletByID(s.ctx, cash.WalletID)
	s.Require().NoError(err)
	_, err = s.repos.WalletRepo.UpdateWalletBalance(s.ctx, cash.WalletID, dec(90), stored.Version, owner, s.now)
	s.Require().NoError(err)

	rec, err := s.wallets.ReconcileWallet(s.ctx, cash.WalletID, owner, false)
	s.Require().NoError(err)
	s.False(rec.InSync())
	s.True(dec(20).Equal(rec.Drift))
	s.False(rec.Repaired)
	s.assertBalance(cash.WalletID, 90)

	rec, err = s.wallets.ReconcileWallet(s.ctx, cash.WalletID, owner, true)
	s.Require().NoError(err)
	s.True(rec.Deferred, "the wallet was written moments ago")
	s.False(rec.Repaired)
	s.assertBalance(cash.WalletID, 90)

	s.now = s.now.Add(services.DefaultRepairSettleWindow)
	rec, err = s.wallets.ReconcileWallet(s.ctx, cash.WalletID, owner, true)
	s.Require().NoError(err)
	s.True(rec.Repaired)
	s.False(rec.Deferred)
	s.assertBalance(cash.WalletID, 70)
}

func (s *LedgerTestSuite) TestRepairDuringCreateLeavesBalanceAlone() {
	cash := s.createWallet("Cash", domain.Cash, 100, nil)

	var mid *domain.Reconciliation
	hooked := &hookedTransactionRepo{TransactionRepositoryFacade: s.repos.TransactionRepo}
	hooked.beforeSave = func() {
		var err error
		mid, err = s.wallets.ReconcileWallet(s.ctx, cash.WalletID, owner, true)
		s.Require().NoError(err)
	}
	creator := services.NewTransactionService(hooked, s.repos.WalletRepo,
		services.WithTransactionClock(func() time.Time { return s.now }))

	_, err := creator.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		WalletID: cash.WalletID, Amount: dec(30), TransactionType: domain.Expense,
		Category: domain.CategoryFood, Date: dto.NewDate(s.now),
	}, owner)
	s.Require().NoError(err)

	s.Require().NotNil(mid)
	s.True(dec(-30).Equal(mid.Drift), "the balance moved before the transaction was stored")
	s.True(mid.Deferred)
	s.False(mid.Repaired)
	s.assertBalance(cash.WalletID, 70)
	s.assertInSync(cash.WalletID)
}

// mapCache is a WalletCache kept in a map. Its tombstones never expire.
type mapCache struct {
	mu          sync.Mutex
	wallets     map[string]domain.Wallet
	tombstones  map[string]bool
	hits        int
	invalidated []string
}

var _ portsrepo.WalletCache = (*mapCache)(nil)

func newMapCache() *mapCache {
	return &mapCache{wallets: map[string]domain.Wallet{}, tombstones: map[string]bool{}}
}

func (c *mapCache) GetWallet(_ context.Context, walletID string) (*domain.Wallet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.wallets[walletID]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &w, nil
}

func (c *mapCache) SetWallet(_ context.Context, wallet domain.Wallet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.wallets[wallet.WalletID]; ok || c.tombstones[wallet.WalletID] {
		return nil
	}
	c.wallets[wallet.WalletID] = wallet
	return nil
}

func (c *mapCache) InvalidateWallets(_ context.Context, walletIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range walletIDs {
		delete(c.wallets, id)
		c.tombstones[id] = true
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

func (s *LedgerTestSuite) TestWalletCacheIsInvalidatedByLedgerWrites() {
	cache := newMapCache()
	clock := func() time.Time { return s.now }
	s.wallets = services.NewWalletService(s.repos.WalletRepo, s.repos.TransactionRepo, services.WithWalletCache(cache), services.WithWalletClock(clock))
	s.txns = services.NewTransactionService(s.repos.TransactionRepo, s.repos.WalletRepo,
		services.WithTransactionClock(clock),
		services.WithTransactionWalletCache(cache))

	cash := s.createWallet("Cash", domain.Cash, 100, nil)
	_, err := s.wallets.GetWalletByID(s.ctx, cash.WalletID, owner)
	s.Require().NoError(err)
	got, err := s.wallets.GetWalletByID(s.ctx, cash.WalletID, owner)
	s.Require().NoError(err)
	s.Equal(1, cache.hits)
	s.True(dec(100).Equal(got.Balance))

	_, err = s.wallets.GetWalletByID(s.ctx, cash.WalletID, other)
	s.ErrorIs(err, apperrors.ErrWalletOwnershipMismatch, "cached wallets are still owner checked")

	_, err = s.record(cash.WalletID, domain.Expense, 40)
	s.Require().NoError(err)
	s.Contains(cache.invalidated, cash.WalletID)

	got, err = s.wallets.GetWalletByID(s.ctx, cash.WalletID, owner)
	s.Require().NoError(err)
	s.True(dec(60).Equal(got.Balance))
}

// hookedWalletRepo runs afterFind once, after the wrapped read returns.
type hookedWalletRepo struct {
	portsrepo.WalletRepositoryFacade
	afterFind func()
}

func (r *hookedWalletRepo) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := r.WalletRepositoryFacade.FindWalletByID(ctx, walletID)
	if hook := r.afterFind; hook != nil {
		r.afterFind = nil
		hook()
	}
	return wallet, err
}

func (s *LedgerTestSuite) TestCacheFillRacingLedgerWriteIsDropped() {
	cache := newMapCache()
	clock := func() time.Time { return s.now }
	s.txns = services.NewTransactionService(s.repos.TransactionRepo, s.repos.WalletRepo,
		services.WithTransactionClock(clock),
		services.WithTransactionWalletCache(cache))

	cash := s.createWallet("Cash", domain.Cash, 100, nil)
	hooked := &hookedWalletRepo{WalletRepositoryFacade: s.repos.WalletRepo}
	hooked.afterFind = func() {
		_, err := s.record(cash.WalletID, domain.Expense, 40)
		s.Require().NoError(err)
	}
	reader := services.NewWalletService(hooked, s.repos.TransactionRepo, services.WithWalletCache(cache), services.WithWalletClock(clock))

	stale, err := reader.GetWalletByID(s.ctx, cash.WalletID, owner)
	s.Require().NoError(err)
	s.True(dec(100).Equal(stale.Balance), "the read started before the expense")

	fresh, err := reader.GetWalletByID(s.ctx, cash.WalletID, owner)
	s.Require().NoError(err)
	s.Zero(cache.hits, "the stale read was not cached")
	s.True(dec(60).Equal(fresh.Balance))
}
