package repositories

import (
	"context"
	"time"
)

// AutoID asks the store to assign a new document ID.
const AutoID = ""

// Fields holds a document's attributes. Values are string encoded so that every
// backend compares them the same way (lexically).
type Fields map[string]string

// Clone returns a copy of f.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Document is a stored record in a collection.
type Document struct {
	ID         string
	Collection string
	Fields     Fields
	Version    int64 // incremented by the store on every update, starts at 1
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FilterOp is a comparison applied to a single field.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
)

// Filter restricts a listing to documents whose field compares true against Value.
// Documents missing the field never match.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// Eq is shorthand for an equality filter.
func Eq(field, value string) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// OrderBy sorts a listing by one field, ties broken by document ID in the same direction.
// An empty Field orders by ID alone.
type OrderBy struct {
	Field      string
	Descending bool
}

// Cursor identifies the last document of the previous page.
type Cursor struct {
	Value string
	ID    string
}

// ListQuery describes a filtered, ordered, keyset-paginated listing.
type ListQuery struct {
	Filters []Filter
	OrderBy OrderBy
	After   *Cursor
	Limit   int // 0 means no limit
}

// UpdateOptions controls a partial update.
type UpdateOptions struct {
	// ExpectedVersion makes the update conditional; zero skips the check.
	ExpectedVersion int64
	// Remove lists fields to be deleted from the document.
	Remove []string
}

// DeleteOptions controls a delete.
type DeleteOptions struct {
	// ExpectedVersion makes the delete conditional; zero skips the check.
	ExpectedVersion int64
}

// DocumentStore is the persistence collaborator behind every repository.
type DocumentStore interface {
	// CreateDocument stores a new document. Fails with apperrors.ErrDuplicate on ID collision.
	CreateDocument(ctx context.Context, collection string, id string, fields Fields) (Document, error)

	// GetDocument fails with apperrors.ErrNotFound when the document does not exist.
	GetDocument(ctx context.Context, collection string, id string) (Document, error)

	// UpdateDocument merges fields into the document and bumps its version.
	// Fails with apperrors.ErrNotFound, or apperrors.ErrConflict when the expected version is stale.
	UpdateDocument(ctx context.Context, collection string, id string, fields Fields, opts UpdateOptions) (Document, error)

	// DeleteDocument fails with apperrors.ErrNotFound when the document does not exist,
	// or apperrors.ErrConflict when the expected version is stale.
	DeleteDocument(ctx context.Context, collection string, id string, opts DeleteOptions) error

	// ListDocuments returns the documents matching q.
	ListDocuments(ctx context.Context, collection string, q ListQuery) ([]Document, error)
}
