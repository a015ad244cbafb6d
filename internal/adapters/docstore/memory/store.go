// Package memory provides an in-process DocumentStore used by tests and the memory store driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// Store keeps documents in maps guarded by a single mutex. Every document handed in or out
// is copied, so callers never share state with the store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]repositories.Document
	now         func() time.Time
	newID       func() string
}

var _ repositories.DocumentStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides the generator used for AutoID documents.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]map[string]repositories.Document),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func clone(doc repositories.Document) repositories.Document {
	doc.Fields = doc.Fields.Clone()
	return doc
}

func (s *Store) collection(name string) map[string]repositories.Document {
	docs, ok := s.collections[name]
	if !ok {
		docs = make(map[string]repositories.Document)
		s.collections[name] = docs
	}
	return docs
}

func (s *Store) CreateDocument(ctx context.Context, collection string, id string, fields repositories.Fields) (repositories.Document, error) {
	if err := ctx.Err(); err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	if collection == "" {
		return repositories.Document{}, fmt.Errorf("%w: collection is required", apperrors.ErrStoreRejected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == repositories.AutoID {
		id = s.newID()
	}
	docs := s.collection(collection)
	if _, exists := docs[id]; exists {
		return repositories.Document{}, fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicate, collection, id)
	}

	now := s.now()
	doc := repositories.Document{
		ID:         id,
		Collection: collection,
		Fields:     fields.Clone(),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	docs[id] = doc
	return clone(doc), nil
}

func (s *Store) GetDocument(ctx context.Context, collection string, id string) (repositories.Document, error) {
	if err := ctx.Err(); err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return repositories.Document{}, fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	return clone(doc), nil
}

func (s *Store) UpdateDocument(ctx context.Context, collection string, id string, fields repositories.Fields, opts repositories.UpdateOptions) (repositories.Document, error) {
	if err := ctx.Err(); err != nil {
		return repositories.Document{}, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	doc, ok := docs[id]
	if !ok {
		return repositories.Document{}, fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	if opts.ExpectedVersion != 0 && doc.Version != opts.ExpectedVersion {
		return repositories.Document{}, fmt.Errorf("%w: %s/%s is at version %d, expected %d", apperrors.ErrConflict, collection, id, doc.Version, opts.ExpectedVersion)
	}

	merged := doc.Fields.Clone()
	for k, v := range fields {
		merged[k] = v
	}
	for _, k := range opts.Remove {
		delete(merged, k)
	}
	doc.Fields = merged
	doc.Version++
	doc.UpdatedAt = s.now()
	docs[id] = doc
	return clone(doc), nil
}

func (s *Store) DeleteDocument(ctx context.Context, collection string, id string, opts repositories.DeleteOptions) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	doc, ok := docs[id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	if opts.ExpectedVersion != 0 && doc.Version != opts.ExpectedVersion {
		return fmt.Errorf("%w: %s/%s is at version %d, expected %d", apperrors.ErrConflict, collection, id, doc.Version, opts.ExpectedVersion)
	}
	delete(docs, id)
	return nil
}

func (s *Store) ListDocuments(ctx context.Context, collection string, q repositories.ListQuery) ([]repositories.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	for _, f := range q.Filters {
		if !validOp(f.Op) {
			return nil, fmt.Errorf("%w: unsupported filter operator '%s'", apperrors.ErrStoreRejected, f.Op)
		}
	}

	s.mu.RLock()
	matched := make([]repositories.Document, 0)
	for _, doc := range s.collections[collection] {
		if matches(doc, q.Filters) {
			matched = append(matched, clone(doc))
		}
	}
	s.mu.RUnlock()

	key := func(doc repositories.Document) string {
		if q.OrderBy.Field == "" {
			return doc.ID
		}
		return doc.Fields[q.OrderBy.Field]
	}
	less := func(a, b repositories.Document) bool {
		ka, kb := key(a), key(b)
		if ka != kb {
			return ka < kb
		}
		return a.ID < b.ID
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.OrderBy.Descending {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	if q.After != nil {
		cursor := repositories.Document{ID: q.After.ID, Fields: repositories.Fields{}}
		if q.OrderBy.Field != "" {
			cursor.Fields[q.OrderBy.Field] = q.After.Value
		}
		start := sort.Search(len(matched), func(i int) bool {
			if q.OrderBy.Descending {
				return less(matched[i], cursor)
			}
			return less(cursor, matched[i])
		})
		matched = matched[start:]
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func validOp(op repositories.FilterOp) bool {
	switch op {
	case repositories.OpEq, repositories.OpLt, repositories.OpLte, repositories.OpGt, repositories.OpGte:
		return true
	}
	return false
}

func matches(doc repositories.Document, filters []repositories.Filter) bool {
	for _, f := range filters {
		v, ok := doc.Fields[f.Field]
		if !ok {
			return false
		}
		var keep bool
		switch f.Op {
		case repositories.OpEq:
			keep = v == f.Value
		case repositories.OpLt:
			keep = v < f.Value
		case repositories.OpLte:
			keep = v <= f.Value
		case repositories.OpGt:
			keep = v > f.Value
		case repositories.OpGte:
			keep = v >= f.Value
		}
		if !keep {
			return false
		}
	}
	return true
}
