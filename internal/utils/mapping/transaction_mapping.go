package mapping

import (
	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/models"
	"github.com/shopspring/decimal"
)

// ToTransactionFields converts a domain Transaction to document fields.
// Optional values that are unset are left out; see TransactionRemovedFields.
func ToTransactionFields(d domain.Transaction) repositories.Fields {
	fields := repositories.Fields{
		models.FieldOwnerID:         d.OwnerID,
		models.FieldWalletID:        d.WalletID,
		models.FieldAmount:          models.FormatDecimal(d.Amount),
		models.FieldTransactionType: string(d.TransactionType),
		models.FieldCategory:        string(d.Category),
		models.FieldDate:            models.FormatTime(d.Date),
	}
	if d.ToWalletID != "" {
		fields[models.FieldToWalletID] = d.ToWalletID
	}
	if d.Reason != "" {
		fields[models.FieldReason] = d.Reason
	}
	if d.Notes != "" {
		fields[models.FieldNotes] = d.Notes
	}
	if d.ExpectedReturnDate != nil {
		fields[models.FieldExpectedReturnDate] = models.FormatTime(*d.ExpectedReturnDate)
	}
	putAuditFields(fields, d.AuditFields)
	return fields
}

// TransactionRemovedFields lists the optional fields d leaves unset, so a full
// replacement can clear values a previous version had.
func TransactionRemovedFields(d domain.Transaction) []string {
	var remove []string
	if d.ToWalletID == "" {
		remove = append(remove, models.FieldToWalletID)
	}
	if d.Reason == "" {
		remove = append(remove, models.FieldReason)
	}
	if d.Notes == "" {
		remove = append(remove, models.FieldNotes)
	}
	if d.ExpectedReturnDate == nil {
		remove = append(remove, models.FieldExpectedReturnDate)
	}
	return remove
}

// ToDomainTransaction converts a transaction document to a domain Transaction
func ToDomainTransaction(doc repositories.Document) (domain.Transaction, error) {
	t := domain.Transaction{
		TransactionID:   doc.ID,
		OwnerID:         doc.Fields[models.FieldOwnerID],
		WalletID:        doc.Fields[models.FieldWalletID],
		ToWalletID:      doc.Fields[models.FieldToWalletID],
		TransactionType: domain.TransactionType(doc.Fields[models.FieldTransactionType]),
		Category:        domain.Category(doc.Fields[models.FieldCategory]),
		Reason:          doc.Fields[models.FieldReason],
		Notes:           doc.Fields[models.FieldNotes],
		Version:         doc.Version,
	}

	var err error
	var amount decimal.Decimal
	if amount, err = models.ParseDecimal(doc.Fields[models.FieldAmount]); err != nil {
		return domain.Transaction{}, corrupt(doc, err)
	}
	t.Amount = amount
	if t.Date, err = models.ParseTime(doc.Fields[models.FieldDate]); err != nil {
		return domain.Transaction{}, corrupt(doc, err)
	}
	if v, ok := doc.Fields[models.FieldExpectedReturnDate]; ok {
		ret, err := models.ParseTime(v)
		if err != nil {
			return domain.Transaction{}, corrupt(doc, err)
		}
		t.ExpectedReturnDate = &ret
	}
	if t.AuditFields, err = ToDomainAuditFields(doc); err != nil {
		return domain.Transaction{}, corrupt(doc, err)
	}
	return t, nil
}

// ToDomainTransactionSlice converts transaction documents to domain Transactions
func ToDomainTransactionSlice(docs []repositories.Document) ([]domain.Transaction, error) {
	ts := make([]domain.Transaction, 0, len(docs))
	for _, doc := range docs {
		t, err := ToDomainTransaction(doc)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}
