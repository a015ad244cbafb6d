package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	portsrepo "github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/models"
	"github.com/SscSPs/monetra/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type DocWalletRepository struct {
	BaseRepository
}

// newDocWalletRepository creates a new repository for wallet data.
func newDocWalletRepository(store portsrepo.DocumentStore) portsrepo.WalletRepositoryFacade {
	return &DocWalletRepository{BaseRepository: BaseRepository{Store: store}}
}

var _ portsrepo.WalletRepositoryFacade = (*DocWalletRepository)(nil)

func (r *DocWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	doc, err := r.Store.GetDocument(ctx, models.WalletsCollection, walletID)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrWalletNotFound, walletID)
	}
	wallet, err := mapping.ToDomainWallet(doc)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *DocWalletRepository) FindWalletsByIDs(ctx context.Context, walletIDs []string) (map[string]domain.Wallet, error) {
	wallets := make(map[string]domain.Wallet, len(walletIDs))
	for _, id := range walletIDs {
		if _, seen := wallets[id]; seen {
			continue
		}
		wallet, err := r.FindWalletByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		wallets[id] = *wallet
	}
	return wallets, nil
}

func (r *DocWalletRepository) ListWalletsByOwner(ctx context.Context, ownerID string) ([]domain.Wallet, error) {
	docs, err := r.Store.ListDocuments(ctx, models.WalletsCollection, portsrepo.ListQuery{
		Filters: []portsrepo.Filter{portsrepo.Eq(models.FieldOwnerID, ownerID)},
		OrderBy: portsrepo.OrderBy{Field: models.FieldName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets for owner %s: %w", ownerID, err)
	}
	return mapping.ToDomainWalletSlice(docs)
}

func (r *DocWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	id := wallet.WalletID
	if id == "" {
		id = portsrepo.AutoID
	}
	doc, err := r.Store.CreateDocument(ctx, models.WalletsCollection, id, mapping.ToWalletFields(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to save wallet %s: %w", wallet.Name, err)
	}
	saved, err := mapping.ToDomainWallet(doc)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *DocWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	fields := mapping.ToUpdateAuditFields(wallet.LastUpdatedBy, wallet.LastUpdatedAt)
	fields[models.FieldName] = wallet.Name
	fields[models.FieldWalletType] = string(wallet.WalletType)
	fields[models.FieldCurrency] = wallet.CurrencyCode

	opts := portsrepo.UpdateOptions{ExpectedVersion: wallet.Version}
	if wallet.CreditLimit != nil {
		fields[models.FieldCreditLimit] = models.FormatDecimal(*wallet.CreditLimit)
	} else {
		opts.Remove = []string{models.FieldCreditLimit}
	}

	return r.update(ctx, wallet.WalletID, fields, opts)
}

func (r *DocWalletRepository) UpdateWalletBalance(ctx context.Context, walletID string, balance decimal.Decimal, expectedVersion int64, userID string, now time.Time) (*domain.Wallet, error) {
	fields := mapping.ToUpdateAuditFields(userID, now)
	fields[models.FieldBalance] = models.FormatDecimal(balance)
	return r.update(ctx, walletID, fields, portsrepo.UpdateOptions{ExpectedVersion: expectedVersion})
}

func (r *DocWalletRepository) update(ctx context.Context, walletID string, fields portsrepo.Fields, opts portsrepo.UpdateOptions) (*domain.Wallet, error) {
	doc, err := r.Store.UpdateDocument(ctx, models.WalletsCollection, walletID, fields, opts)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrWalletNotFound, walletID)
	}
	updated, err := mapping.ToDomainWallet(doc)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DocWalletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	if err := r.Store.DeleteDocument(ctx, models.WalletsCollection, walletID, portsrepo.DeleteOptions{}); err != nil {
		return notFoundAs(err, apperrors.ErrWalletNotFound, walletID)
	}
	return nil
}
