package mapping

import (
	"fmt"

	"github.com/SscSPs/monetra/internal/apperrors"
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/models"
)

// ToWalletFields converts a domain Wallet to document fields
func ToWalletFields(d domain.Wallet) repositories.Fields {
	fields := repositories.Fields{
		models.FieldOwnerID:        d.OwnerID,
		models.FieldName:           d.Name,
		models.FieldWalletType:     string(d.WalletType),
		models.FieldBalance:        models.FormatDecimal(d.Balance),
		models.FieldInitialBalance: models.FormatDecimal(d.InitialBalance),
		models.FieldCurrency:       d.CurrencyCode,
	}
	if d.CreditLimit != nil {
		fields[models.FieldCreditLimit] = models.FormatDecimal(*d.CreditLimit)
	}
	putAuditFields(fields, d.AuditFields)
	return fields
}

// ToDomainWallet converts a wallet document to a domain Wallet
func ToDomainWallet(doc repositories.Document) (domain.Wallet, error) {
	w := domain.Wallet{
		WalletID:     doc.ID,
		OwnerID:      doc.Fields[models.FieldOwnerID],
		Name:         doc.Fields[models.FieldName],
		WalletType:   domain.WalletType(doc.Fields[models.FieldWalletType]),
		CurrencyCode: doc.Fields[models.FieldCurrency],
		Version:      doc.Version,
	}

	var err error
	if w.Balance, err = models.ParseDecimal(doc.Fields[models.FieldBalance]); err != nil {
		return domain.Wallet{}, corrupt(doc, err)
	}
	if w.InitialBalance, err = models.ParseDecimal(doc.Fields[models.FieldInitialBalance]); err != nil {
		return domain.Wallet{}, corrupt(doc, err)
	}
	if v, ok := doc.Fields[models.FieldCreditLimit]; ok {
		limit, err := models.ParseDecimal(v)
		if err != nil {
			return domain.Wallet{}, corrupt(doc, err)
		}
		w.CreditLimit = &limit
	}
	if w.AuditFields, err = ToDomainAuditFields(doc); err != nil {
		return domain.Wallet{}, corrupt(doc, err)
	}
	return w, nil
}

// ToDomainWalletSlice converts wallet documents to domain Wallets
func ToDomainWalletSlice(docs []repositories.Document) ([]domain.Wallet, error) {
	ws := make([]domain.Wallet, 0, len(docs))
	for _, doc := range docs {
		w, err := ToDomainWallet(doc)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	return ws, nil
}

func corrupt(doc repositories.Document, err error) error {
	return fmt.Errorf("%w: document %s/%s: %v", apperrors.ErrStoreRejected, doc.Collection, doc.ID, err)
}
