package mapping

import (
	"time"

	"github.com/SscSPs/monetra/internal/core/domain"
	"github.com/SscSPs/monetra/internal/core/ports/repositories"
	"github.com/SscSPs/monetra/internal/models"
)

// putAuditFields writes d into fields.
func putAuditFields(fields repositories.Fields, d domain.AuditFields) {
	fields[models.FieldCreatedAt] = models.FormatTime(d.CreatedAt)
	fields[models.FieldCreatedBy] = d.CreatedBy
	fields[models.FieldLastUpdatedAt] = models.FormatTime(d.LastUpdatedAt)
	fields[models.FieldLastUpdatedBy] = d.LastUpdatedBy
}

// ToDomainAuditFields reads the audit fields of doc, falling back to the store timestamps.
func ToDomainAuditFields(doc repositories.Document) (domain.AuditFields, error) {
	audit := domain.AuditFields{
		CreatedAt:     doc.CreatedAt,
		CreatedBy:     doc.Fields[models.FieldCreatedBy],
		LastUpdatedAt: doc.UpdatedAt,
		LastUpdatedBy: doc.Fields[models.FieldLastUpdatedBy],
	}
	if v, ok := doc.Fields[models.FieldCreatedAt]; ok {
		t, err := models.ParseTime(v)
		if err != nil {
			return domain.AuditFields{}, err
		}
		audit.CreatedAt = t
	}
	if v, ok := doc.Fields[models.FieldLastUpdatedAt]; ok {
		t, err := models.ParseTime(v)
		if err != nil {
			return domain.AuditFields{}, err
		}
		audit.LastUpdatedAt = t
	}
	return audit, nil
}

// ToUpdateAuditFields returns the fields touched by every update.
func ToUpdateAuditFields(userID string, now time.Time) repositories.Fields {
	return repositories.Fields{
		models.FieldLastUpdatedAt: models.FormatTime(now),
		models.FieldLastUpdatedBy: userID,
	}
}
