package compliance

import (
	"context"
	"errors"

	"folkify/internal/apperr"
	"folkify/internal/domain/media"

	"gorm.io/gorm"
)

const (
	DocQualityCertificate = "qualityCertificate"
	DocExportLicense      = "exportLicense"
)

// GetOrDefault loads the artist's record, or an unsaved empty one when the
// artist has not started the checklist yet.
func GetOrDefault(ctx context.Context, db *gorm.DB, artistID string) (*Record, error) {
	var rec Record
	err := db.WithContext(ctx).First(&rec, "artist_id = ?", artistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := NewRecord(artistID)
		Recompute(fresh)
		return fresh, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save recomputes the derived fields and upserts the record.
func Save(ctx context.Context, db *gorm.DB, rec *Record) error {
	Recompute(rec)
	return db.WithContext(ctx).Save(rec).Error
}

// DocumentField reports whether field names one of the document slots.
func DocumentField(field string) bool {
	return field == DocQualityCertificate || field == DocExportLicense
}

// AttachDocument stores an uploaded file in one of the document fields.
func AttachDocument(rec *Record, field string, file media.FileMeta) error {
	switch field {
	case DocQualityCertificate:
		rec.QualityCertificate = &file
	case DocExportLicense:
		rec.ExportLicense = &file
	default:
		return apperr.New(apperr.CodeValidation, "unknown document field")
	}
	return nil
}
