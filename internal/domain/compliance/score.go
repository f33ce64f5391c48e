package compliance

import (
	"math"
	"time"

	"folkify/internal/apperr"
)

const (
	RequiredPoints = 14
	OptionalPoints = 6

	// SubmissionThreshold is the lowest completion accepted for review.
	SubmissionThreshold = 25
	exportReadyAt       = 100
)

type Item struct {
	Key      string `json:"key"`
	Required bool   `json:"required"`
	Points   int    `json:"points"`
	Filled   bool   `json:"filled"`
}

type Result struct {
	CompletionPercentage int    `json:"completion_percentage"`
	IsExportReady        bool   `json:"is_export_ready"`
	Items                []Item `json:"items"`
}

type entry struct {
	key      string
	required bool
	field    Field
}

func entries(r Record) []entry {
	return []entry{
		{"gstRegistered", true, Bool(r.GSTRegistered)},
		{"materialDisclosure", true, Bool(r.MaterialDisclosure)},
		{"hsCode", true, Text(r.HSCode)},
		{"artisanCertificate", true, Bool(r.ArtisanCertificate)},
		{"ecoFriendlyPackaging", true, Bool(r.EcoFriendlyPackaging)},

		{"gstNumber", false, Text(r.GSTNumber)},
		{"materialsList", false, List(r.MaterialsList)},
		{"packagingDetails", false, Text(r.PackagingDetails)},
		{"qualityCertificate", false, DocumentRef{File: r.QualityCertificate}},
		{"exportLicense", false, DocumentRef{File: r.ExportLicense}},
	}
}

// Score derives the completion percentage and export readiness of r.
func Score(r Record) Result {
	earned := 0
	items := make([]Item, 0, 10)
	for _, e := range entries(r) {
		points := OptionalPoints
		if e.required {
			points = RequiredPoints
		}
		filled := e.field.Filled()
		if filled {
			earned += points
		}
		items = append(items, Item{Key: e.key, Required: e.required, Points: points, Filled: filled})
	}

	// weights sum to 100 so the percentage is the earned total
	pct := int(math.Round(100 * float64(earned) / 100))
	return Result{
		CompletionPercentage: pct,
		IsExportReady:        pct >= exportReadyAt,
		Items:                items,
	}
}

// Recompute refreshes the derived fields. Call it before every write.
func Recompute(r *Record) Result {
	res := Score(*r)
	r.CompletionPercentage = res.CompletionPercentage
	r.IsExportReady = res.IsExportReady
	return res
}

// SubmitForReview queues the checklist for review once it is at least a
// quarter complete.
func SubmitForReview(r *Record, now time.Time) error {
	res := Recompute(r)
	if res.CompletionPercentage < SubmissionThreshold {
		return apperr.New(apperr.CodeValidation, "please complete at least 25% of the checklist before submitting for review")
	}
	at := now
	r.SubmittedForReview = true
	r.SubmittedAt = &at
	r.ReviewStatus = ReviewPending
	return nil
}
