package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	now   time.Time
	seq   int
}

func (s *StoreTestSuite) SetupTest() {
	s.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.seq = 0
	s.ctx = context.Background()
	s.store = NewStore(
		WithClock(func() time.Time { return s.now }),
		WithIDGenerator(func() string {
			s.seq++
			return fmt.Sprintf("auto-%03d", s.seq)
		}),
	)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestCreateAndGet() {
	created, err := s.store.CreateDocument(s.ctx, "wallets", repositories.AutoID, repositories.Fields{"name": "Cash"})
	s.Require().NoError(err)
	s.Equal("auto-001", created.ID)
	s.Equal(int64(1), created.Version)
	s.Equal(s.now, created.CreatedAt)

	got, err := s.store.GetDocument(s.ctx, "wallets", created.ID)
	s.Require().NoError(err)
	s.Equal("Cash", got.Fields["name"])

	got.Fields["name"] = "mutated"
	again, err := s.store.GetDocument(s.ctx, "wallets", created.ID)
	s.Require().NoError(err)
	s.Equal("Cash", again.Fields["name"], "callers must not share state with the store")
}

func (s *StoreTestSuite) TestCreateDuplicate() {
	_, err := s.store.CreateDocument(s.ctx, "wallets", "w1", repositories.Fields{})
	s.Require().NoError(err)

	_, err = s.store.CreateDocument(s.ctx, "wallets", "w1", repositories.Fields{})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.store.CreateDocument(s.ctx, "transactions", "w1", repositories.Fields{})
	s.NoError(err, "ids are scoped per collection")
}

func (s *StoreTestSuite) TestGetMissing() {
	_, err := s.store.GetDocument(s.ctx, "wallets", "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestUpdateMergesAndBumpsVersion() {
	_, err := s.store.CreateDocument(s.ctx, "wallets", "w1", repositories.Fields{"name": "Cash", "balance": "10", "note": "x"})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Minute)
	updated, err := s.store.UpdateDocument(s.ctx, "wallets", "w1", repositories.Fields{"balance": "20"}, repositories.UpdateOptions{ExpectedVersion: 1, Remove: []string{"note"}})
	s.Require().NoError(err)
	s.Equal(int64(2), updated.Version)
	s.Equal("Cash", updated.Fields["name"])
	s.Equal("20", updated.Fields["balance"])
	s.NotContains(updated.Fields, "note")
	s.Equal(s.now, updated.UpdatedAt)
	s.NotEqual(updated.CreatedAt, updated.UpdatedAt)
}

func (s *StoreTestSuite) TestUpdateConflict() {
	_, err := s.store.CreateDocument(s.ctx, "wallets", "w1", repositories.Fields{"balance": "10"})
	s.Require().NoError(err)
	_, err = s.store.UpdateDocument(s.ctx, "wallets", "w1", repositories.Fields{"balance": "11"}, repositories.UpdateOptions{})
	s.Require().NoError(err)

	_, err = s.store.UpdateDocument(s.ctx, "wallets", "w1", repositories.Fields{"balance": "12"}, repositories.UpdateOptions{ExpectedVersion: 1})
	s.ErrorIs(err, apperrors.ErrConflict)

	got, err := s.store.GetDocument(s.ctx, "wallets", "w1")
	s.Require().NoError(err)
	s.Equal("11", got.Fields["balance"])
}

func (s *StoreTestSuite) TestUpdateAndDeleteMissing() {
	_, err := s.store.UpdateDocument(s.ctx, "wallets", "nope", repositories.Fields{}, repositories.UpdateOptions{})
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.store.DeleteDocument(s.ctx, "wallets", "nope", repositories.DeleteOptions{}), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestDelete() {
	_, err := s.store.CreateDocument(s.ctx, "wallets", "w1", repositories.Fields{})
	s.Require().NoError(err)
	s.Require().NoError(s.store.DeleteDocument(s.ctx, "wallets", "w1", repositories.DeleteOptions{}))

	_, err = s.store.GetDocument(s.ctx, "wallets", "w1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestConditionalDelete() {
	_, err := s.store.CreateDocument(s.ctx, "transactions", "t1", repositories.Fields{"amount": "30"})
	s.Require().NoError(err)
	_, err = s.store.UpdateDocument(s.ctx, "transactions", "t1", repositories.Fields{"amount": "45"}, repositories.UpdateOptions{ExpectedVersion: 1})
	s.Require().NoError(err)

	err = s.store.DeleteDocument(s.ctx, "transactions", "t1", repositories.DeleteOptions{ExpectedVersion: 1})
	s.ErrorIs(err, apperrors.ErrConflict)
	got, err := s.store.GetDocument(s.ctx, "transactions", "t1")
	s.Require().NoError(err)
	s.Equal("45", got.Fields["amount"])

	s.Require().NoError(s.store.DeleteDocument(s.ctx, "transactions", "t1", repositories.DeleteOptions{ExpectedVersion: 2}))
}

func (s *StoreTestSuite) seedTransactions() {
	rows := []struct{ id, owner, date string }{
		{"t1", "u1", "2026-01-01"},
		{"t2", "u1", "2026-01-03"},
		{"t3", "u1", "2026-01-03"},
		{"t4", "u2", "2026-01-02"},
		{"t5", "u1", "2026-01-05"},
	}
	for _, r := range rows {
		_, err := s.store.CreateDocument(s.ctx, "transactions", r.id, repositories.Fields{"ownerId": r.owner, "date": r.date})
		s.Require().NoError(err)
	}
}

func ids(docs []repositories.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func (s *StoreTestSuite) TestListFiltersAndOrder() {
	s.seedTransactions()

	docs, err := s.store.ListDocuments(s.ctx, "transactions", repositories.ListQuery{
		Filters: []repositories.Filter{repositories.Eq("ownerId", "u1")},
		OrderBy: repositories.OrderBy{Field: "date", Descending: true},
	})
	s.Require().NoError(err)
	s.Equal([]string{"t5", "t3", "t2", "t1"}, ids(docs))

	docs, err = s.store.ListDocuments(s.ctx, "transactions", repositories.ListQuery{
		Filters: []repositories.Filter{
			repositories.Eq("ownerId", "u1"),
			{Field: "date", Op: repositories.OpGte, Value: "2026-01-02"},
			{Field: "date", Op: repositories.OpLt, Value: "2026-01-05"},
		},
		OrderBy: repositories.OrderBy{Field: "date"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"t2", "t3"}, ids(docs))
}

func (s *StoreTestSuite) TestListPaginates() {
	s.seedTransactions()
	q := repositories.ListQuery{
		Filters: []repositories.Filter{repositories.Eq("ownerId", "u1")},
		OrderBy: repositories.OrderBy{Field: "date", Descending: true},
		Limit:   2,
	}

	var all []string
	for page := 0; page < 5; page++ {
		docs, err := s.store.ListDocuments(s.ctx, "transactions", q)
		s.Require().NoError(err)
		if len(docs) == 0 {
			break
		}
		all = append(all, ids(docs)...)
		last := docs[len(docs)-1]
		q.After = &repositories.Cursor{Value: last.Fields["date"], ID: last.ID}
	}
	s.Equal([]string{"t5", "t3", "t2", "t1"}, all)
}

func (s *StoreTestSuite) TestListMissingFieldNeverMatches() {
	_, err := s.store.CreateDocument(s.ctx, "transactions", "t1", repositories.Fields{"ownerId": "u1"})
	s.Require().NoError(err)

	docs, err := s.store.ListDocuments(s.ctx, "transactions", repositories.ListQuery{
		Filters: []repositories.Filter{{Field: "toWalletId", Op: repositories.OpLte, Value: "zzz"}},
	})
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *StoreTestSuite) TestListRejectsUnknownOperator() {
	_, err := s.store.ListDocuments(s.ctx, "transactions", repositories.ListQuery{
		Filters: []repositories.Filter{{Field: "date", Op: "like", Value: "%"}},
	})
	s.ErrorIs(err, apperrors.ErrStoreRejected)
}

func TestCancelledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetDocument(ctx, "wallets", "w1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}
