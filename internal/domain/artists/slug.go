package artists

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a display name.
// Example: "Bhuri Bai" -> "bhuri-bai"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "artist"
	}
	return base
}

// EnsureProfileSlug makes sure the artist has a persisted public slug.
// Must be called after the artist row exists.
func EnsureProfileSlug(db *gorm.DB, artist *Artist) (string, error) {
	if artist == nil {
		return "", fmt.Errorf("artist is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if artist.ProfileSlug != nil && strings.TrimSpace(*artist.ProfileSlug) != "" {
		return strings.TrimSpace(*artist.ProfileSlug), nil
	}
	if len(artist.ID) < 8 {
		return "", fmt.Errorf("artist ID missing (call EnsureProfileSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%s", MakeSlug(artist.DisplayName), artist.ID[:8])
	if err := db.
		Model(&Artist{}).
		Where("id = ?", artist.ID).
		Update("profile_slug", slug).Error; err != nil {
		return "", err
	}
	artist.ProfileSlug = &slug

	return slug, nil
}
