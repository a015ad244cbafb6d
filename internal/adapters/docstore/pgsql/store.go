// Package pgsql implements the DocumentStore on a single PostgreSQL JSONB table.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a DocumentStore backed by the documents table.
type Store struct {
	db    Querier
	now   func() time.Time
	newID func() string
}

var _ repositories.DocumentStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store on top of db, usually a *pgxpool.Pool.
func NewStore(db Querier, opts ...Option) *Store {
	s := &Store{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) CreateDocument(ctx context.Context, collection string, id string, fields repositories.Fields) (repositories.Document, error) {
	if id == repositories.AutoID {
		id = s.newID()
	}
	payload, err := encodeFields(fields)
	if err != nil {
		return repositories.Document{}, err
	}

	query := `
		INSERT INTO documents (collection, id, fields, version, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, 1, $4, $4)
		RETURNING version, created_at, updated_at;
	`
	doc := repositories.Document{ID: id, Collection: collection, Fields: fields.Clone()}
	err = s.db.QueryRow(ctx, query, collection, id, payload, s.now()).Scan(&doc.Version, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return repositories.Document{}, mapError(err, fmt.Sprintf("create %s/%s", collection, id))
	}
	return doc, nil
}

func (s *Store) GetDocument(ctx context.Context, collection string, id string) (repositories.Document, error) {
	query := `
		SELECT id, fields, version, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2;
	`
	doc, err := scanDocument(s.db.QueryRow(ctx, query, collection, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repositories.Document{}, fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
		}
		return repositories.Document{}, mapError(err, fmt.Sprintf("get %s/%s", collection, id))
	}
	doc.Collection = collection
	return doc, nil
}

func (s *Store) UpdateDocument(ctx context.Context, collection string, id string, fields repositories.Fields, opts repositories.UpdateOptions) (repositories.Document, error) {
	payload, err := encodeFields(fields)
	if err != nil {
		return repositories.Document{}, err
	}
	remove := opts.Remove
	if remove == nil {
		remove = []string{}
	}

	query := `
		UPDATE documents
		SET fields = (fields || $3::jsonb) - $4::text[],
			version = version + 1,
			updated_at = $5
		WHERE collection = $1 AND id = $2 AND ($6::bigint = 0 OR version = $6::bigint)
		RETURNING id, fields, version, created_at, updated_at;
	`
	doc, err := scanDocument(s.db.QueryRow(ctx, query, collection, id, payload, remove, s.now(), opts.ExpectedVersion))
	if err == nil {
		doc.Collection = collection
		return doc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return repositories.Document{}, mapError(err, fmt.Sprintf("update %s/%s", collection, id))
	}

	// No row matched: either the document is gone or the version moved on.
	var current int64
	err = s.db.QueryRow(ctx, `SELECT version FROM documents WHERE collection = $1 AND id = $2;`, collection, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.Document{}, fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	if err != nil {
		return repositories.Document{}, mapError(err, fmt.Sprintf("update %s/%s", collection, id))
	}
	return repositories.Document{}, fmt.Errorf("%w: %s/%s is at version %d, expected %d", apperrors.ErrConflict, collection, id, current, opts.ExpectedVersion)
}

func (s *Store) DeleteDocument(ctx context.Context, collection string, id string, opts repositories.DeleteOptions) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2 AND ($3::bigint = 0 OR version = $3::bigint);`
	tag, err := s.db.Exec(ctx, query, collection, id, opts.ExpectedVersion)
	if err != nil {
		return mapError(err, fmt.Sprintf("delete %s/%s", collection, id))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if opts.ExpectedVersion == 0 {
		return fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}

	var current int64
	err = s.db.QueryRow(ctx, `SELECT version FROM documents WHERE collection = $1 AND id = $2;`, collection, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	if err != nil {
		return mapError(err, fmt.Sprintf("delete %s/%s", collection, id))
	}
	return fmt.Errorf("%w: %s/%s is at version %d, expected %d", apperrors.ErrConflict, collection, id, current, opts.ExpectedVersion)
}

func (s *Store) ListDocuments(ctx context.Context, collection string, q repositories.ListQuery) ([]repositories.Document, error) {
	query, args, err := buildListQuery(collection, q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("list %s", collection))
	}
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repositories.Document, error) {
		return scanDocument(row)
	})
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("list %s", collection))
	}
	for i := range docs {
		docs[i].Collection = collection
	}
	return docs, nil
}

var sqlOps = map[repositories.FilterOp]string{
	repositories.OpEq:  "=",
	repositories.OpLt:  "<",
	repositories.OpLte: "<=",
	repositories.OpGt:  ">",
	repositories.OpGte: ">=",
}

// buildListQuery renders q as SQL. Field names are bound as parameters, never interpolated.
func buildListQuery(collection string, q repositories.ListQuery) (string, []any, error) {
	args := []any{collection}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var sb strings.Builder
	sb.WriteString("SELECT id, fields, version, created_at, updated_at FROM documents WHERE collection = $1")

	for _, f := range q.Filters {
		op, ok := sqlOps[f.Op]
		if !ok {
			return "", nil, fmt.Errorf("%w: unsupported filter operator '%s'", apperrors.ErrStoreRejected, f.Op)
		}
		if f.Field == "" {
			return "", nil, fmt.Errorf("%w: filter field is required", apperrors.ErrStoreRejected)
		}
		fmt.Fprintf(&sb, ` AND (fields->>%s) COLLATE "C" %s %s`, arg(f.Field), op, arg(f.Value))
	}

	orderKey := `id COLLATE "C"`
	if q.OrderBy.Field != "" {
		orderKey = fmt.Sprintf(`COALESCE(fields->>%s, '') COLLATE "C"`, arg(q.OrderBy.Field))
	}
	direction, cmp := "ASC", ">"
	if q.OrderBy.Descending {
		direction, cmp = "DESC", "<"
	}

	if q.After != nil {
		if q.OrderBy.Field == "" {
			fmt.Fprintf(&sb, ` AND id COLLATE "C" %s %s`, cmp, arg(q.After.ID))
		} else {
			value, id := arg(q.After.Value), arg(q.After.ID)
			fmt.Fprintf(&sb, ` AND (%s %s %s OR (%s = %s AND id COLLATE "C" %s %s))`, orderKey, cmp, value, orderKey, value, cmp, id)
		}
	}

	if q.OrderBy.Field == "" {
		fmt.Fprintf(&sb, " ORDER BY %s %s", orderKey, direction)
	} else {
		fmt.Fprintf(&sb, ` ORDER BY %s %s, id COLLATE "C" %s`, orderKey, direction, direction)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %s", arg(q.Limit))
	}
	return sb.String(), args, nil
}

func scanDocument(row pgx.Row) (repositories.Document, error) {
	var doc repositories.Document
	var raw []byte
	if err := row.Scan(&doc.ID, &raw, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return repositories.Document{}, err
	}
	fields := repositories.Fields{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return repositories.Document{}, fmt.Errorf("%w: decoding fields of %s: %v", apperrors.ErrStoreRejected, doc.ID, err)
	}
	doc.Fields = fields
	return doc, nil
}

func encodeFields(fields repositories.Fields) (string, error) {
	if fields == nil {
		return "{}", nil
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: encoding fields: %v", apperrors.ErrStoreRejected, err)
	}
	return string(payload), nil
}

// mapError classifies driver errors into store errors.
func mapError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, op)
		case strings.HasPrefix(pgErr.Code, "22"), strings.HasPrefix(pgErr.Code, "23"):
			return apperrors.NewAppError(http.StatusBadGateway, op, fmt.Errorf("%w: %s", apperrors.ErrStoreRejected, pgErr.Message))
		}
	}
	if errors.Is(err, apperrors.ErrStoreRejected) {
		return err
	}
	return apperrors.NewAppError(http.StatusServiceUnavailable, op, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err))
}
