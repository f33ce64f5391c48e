package artworks

import (
	"strings"

	"folkify/internal/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxTags = 20

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.CodeInternal, err, "artwork has an invalid id")
	}
	return parsed, nil
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// Validate checks the fields an artist controls before any write.
func (a Artwork) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return apperr.New(apperr.CodeValidation, "title is required")
	}
	if strings.TrimSpace(a.ArtForm) == "" {
		return apperr.New(apperr.CodeValidation, "art form is required")
	}
	if a.Price.Valid && a.Price.Decimal.LessThan(decimal.Zero) {
		return apperr.New(apperr.CodeValidation, "price must not be negative")
	}
	if a.IsForSale && !a.Price.Valid {
		return apperr.New(apperr.CodeValidation, "a price is required for artworks that are for sale")
	}
	if a.Currency != "" && !validCurrency(a.Currency) {
		return apperr.New(apperr.CodeValidation, "currency must be a 3-letter ISO code")
	}
	if len(a.Tags) > maxTags {
		return apperr.New(apperr.CodeValidation, "too many tags")
	}
	if a.Image.Empty() {
		return apperr.New(apperr.CodeValidation, "an image is required")
	}
	return nil
}

// validCurrency accepts upper-case ISO 4217 style codes such as INR.
func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
