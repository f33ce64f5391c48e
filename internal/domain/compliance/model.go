package compliance

import (
	"time"

	"folkify/internal/domain/media"
)

const (
	ReviewNone     = ""
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Record is an artist's export-readiness checklist. CompletionPercentage and
// IsExportReady are derived by Recompute and never set directly.
type Record struct {
	ArtistID string `gorm:"type:uuid;primaryKey" json:"artist_id"`

	GSTRegistered        bool            `gorm:"not null" json:"gst_registered"`
	GSTNumber            string          `json:"gst_number"`
	MaterialDisclosure   bool            `gorm:"not null" json:"material_disclosure"`
	MaterialsList        []string        `gorm:"serializer:json" json:"materials_list"`
	HSCode               string          `json:"hs_code"`
	ArtisanCertificate   bool            `gorm:"not null" json:"artisan_certificate"`
	EcoFriendlyPackaging bool            `gorm:"not null" json:"eco_friendly_packaging"`
	PackagingDetails     string          `json:"packaging_details"`
	QualityCertificate   *media.FileMeta `gorm:"serializer:json" json:"quality_certificate"`
	ExportLicense        *media.FileMeta `gorm:"serializer:json" json:"export_license"`
	TargetMarkets        []string        `gorm:"serializer:json" json:"target_markets"`
	AdditionalNotes      string          `json:"additional_notes"`

	CompletionPercentage int  `gorm:"not null;default:0" json:"completion_percentage"`
	IsExportReady        bool `gorm:"not null" json:"is_export_ready"`

	SubmittedForReview bool       `gorm:"not null" json:"submitted_for_review"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	ReviewStatus       string     `gorm:"type:varchar(16)" json:"review_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "compliance_records"
}

// NewRecord returns the empty checklist an artist starts from.
func NewRecord(artistID string) *Record {
	return &Record{
		ArtistID:      artistID,
		MaterialsList: []string{},
		TargetMarkets: []string{},
	}
}
