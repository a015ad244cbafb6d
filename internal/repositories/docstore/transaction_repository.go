package docstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/models"
	"github.com/SscSPs/monetra/internal/utils/mapping"
	"github.com/SscSPs/monetra/internal/utils/pagination"
)

type DocTransactionRepository struct {
	BaseRepository
}

// newDocTransactionRepository creates a new repository for transaction data.
func newDocTransactionRepository(store portsrepo.DocumentStore) portsrepo.TransactionRepositoryFacade {
	return &DocTransactionRepository{BaseRepository: BaseRepository{Store: store}}
}

var _ portsrepo.TransactionRepositoryFacade = (*DocTransactionRepository)(nil)

func (r *DocTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	doc, err := r.Store.GetDocument(ctx, models.TransactionsCollection, transactionID)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrTransactionNotFound, transactionID)
	}
	txn, err := mapping.ToDomainTransaction(doc)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions fetches one extra row to know whether another page exists.
func (r *DocTransactionRepository) ListTransactions(ctx context.Context, query portsrepo.TransactionQuery) ([]domain.Transaction, *string, error) {
	limit := pagination.NormalizeLimit(query.Limit)

	filters := []portsrepo.Filter{portsrepo.Eq(models.FieldOwnerID, query.OwnerID)}
	if query.WalletID != "" {
		filters = append(filters, portsrepo.Eq(models.FieldWalletID, query.WalletID))
	}
	if query.ToWalletID != "" {
		filters = append(filters, portsrepo.Eq(models.FieldToWalletID, query.ToWalletID))
	}
	if query.TransactionType != "" {
		filters = append(filters, portsrepo.Eq(models.FieldTransactionType, string(query.TransactionType)))
	}
	if query.Category != "" {
		filters = append(filters, portsrepo.Eq(models.FieldCategory, string(query.Category)))
	}
	if query.From != nil {
		filters = append(filters, portsrepo.Filter{Field: models.FieldDate, Op: portsrepo.OpGte, Value: models.FormatTime(*query.From)})
	}
	if query.To != nil {
		filters = append(filters, portsrepo.Filter{Field: models.FieldDate, Op: portsrepo.OpLte, Value: models.FormatTime(*query.To)})
	}

	listQuery := portsrepo.ListQuery{
		Filters: filters,
		OrderBy: portsrepo.OrderBy{Field: models.FieldDate, Descending: true},
		Limit:   limit + 1,
	}
	if query.NextToken != nil && *query.NextToken != "" {
		date, id, err := pagination.DecodeToken(*query.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		listQuery.After = &portsrepo.Cursor{Value: models.FormatTime(date), ID: id}
	}

	docs, err := r.Store.ListDocuments(ctx, models.TransactionsCollection, listQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for owner %s: %w", query.OwnerID, err)
	}

	var nextToken *string
	if len(docs) > limit {
		docs = docs[:limit]
		last := docs[len(docs)-1]
		date, err := models.ParseTime(last.Fields[models.FieldDate])
		if err != nil {
			return nil, nil, err
		}
		token := pagination.EncodeToken(date, last.ID)
		nextToken = &token
	}

	txns, err := mapping.ToDomainTransactionSlice(docs)
	if err != nil {
		return nil, nil, err
	}
	return txns, nextToken, nil
}

func (r *DocTransactionRepository) ListTransactionsByWallet(ctx context.Context, ownerID string, walletID string) ([]domain.Transaction, error) {
	seen := make(map[string]bool)
	var docs []portsrepo.Document
	for _, field := range []string{models.FieldWalletID, models.FieldToWalletID} {
		page, err := r.Store.ListDocuments(ctx, models.TransactionsCollection, portsrepo.ListQuery{
			Filters: []portsrepo.Filter{
				portsrepo.Eq(models.FieldOwnerID, ownerID),
				portsrepo.Eq(field, walletID),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions for wallet %s: %w", walletID, err)
		}
		for _, doc := range page {
			if !seen[doc.ID] {
				seen[doc.ID] = true
				docs = append(docs, doc)
			}
		}
	}

	txns, err := mapping.ToDomainTransactionSlice(docs)
	if err != nil {
		return nil, err
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].TransactionID > txns[j].TransactionID
	})
	return txns, nil
}

func (r *DocTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	id := txn.TransactionID
	if id == "" {
		id = portsrepo.AutoID
	}
	doc, err := r.Store.CreateDocument(ctx, models.TransactionsCollection, id, mapping.ToTransactionFields(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	saved, err := mapping.ToDomainTransaction(doc)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *DocTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	doc, err := r.Store.UpdateDocument(ctx, models.TransactionsCollection, txn.TransactionID, mapping.ToTransactionFields(txn), portsrepo.UpdateOptions{
		ExpectedVersion: txn.Version,
		Remove:          mapping.TransactionRemovedFields(txn),
	})
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrTransactionNotFound, txn.TransactionID)
	}
	updated, err := mapping.ToDomainTransaction(doc)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DocTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, expectedVersion int64) error {
	opts := portsrepo.DeleteOptions{ExpectedVersion: expectedVersion}
	if err := r.Store.DeleteDocument(ctx, models.TransactionsCollection, transactionID, opts); err != nil {
		return notFoundAs(err, apperrors.ErrTransactionNotFound, transactionID)
	}
	return nil
}
