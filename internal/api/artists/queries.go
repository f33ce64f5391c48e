package artists

import (
	"net/url"
	"strings"

	"folkify/internal/domain/artists"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// findArtist resolves a public reference, either the artist id or the profile slug.
func findArtist(db *gorm.DB, ref string) (artists.Artist, error) {
	var a artists.Artist
	ref = strings.TrimSpace(ref)
	if _, err := uuid.Parse(ref); err == nil {
		err := db.First(&a, "id = ?", ref).Error
		return a, err
	}
	err := db.First(&a, "profile_slug = ?", strings.ToLower(ref)).Error
	return a, err
}

func applyProfileUpdate(a *artists.Artist, req UpdateProfileRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&a.DisplayName, req.DisplayName)
	set(&a.Bio, req.Bio)
	set(&a.ArtForm, req.ArtForm)
	set(&a.Region, req.Region)
	set(&a.Village, req.Village)
	set(&a.Specialization, req.Specialization)
	set(&a.Awards, req.Awards)
	set(&a.Website, req.Website)
	set(&a.Instagram, req.Instagram)
	set(&a.Facebook, req.Facebook)
	if req.YearsOfExperience != nil {
		a.YearsOfExperience = *req.YearsOfExperience
	}
}

// withArtist pins the listing to one artist and drops options that would
// widen it.
func withArtist(q url.Values, artistID string) string {
	q.Set("artistId", artistID)
	q.Del("isActive")
	return q.Encode()
}
