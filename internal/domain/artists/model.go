package artists

import "time"

// Artist is the seller profile of a user with the artist role. ID equals the user id.
type Artist struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	DisplayName       string `gorm:"not null" json:"display_name"`
	Bio               string `json:"bio"`
	ArtForm           string `gorm:"index" json:"art_form"`
	Region            string `gorm:"index" json:"region"`
	Village           string `json:"village"`
	YearsOfExperience int    `json:"years_of_experience"`
	Specialization    string `json:"specialization"`
	Awards            string `json:"awards"`

	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`

	ProfileSlug *string `gorm:"uniqueIndex:idx_artists_profile_slug" json:"profile_slug,omitempty"`

	IsVerified       bool       `gorm:"not null;default:false" json:"is_verified"`
	VerificationDate *time.Time `json:"verification_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SocialLinks returns the non-empty links keyed by network.
func (a Artist) SocialLinks() map[string]string {
	links := map[string]string{}
	if a.Website != "" {
		links["website"] = a.Website
	}
	if a.Instagram != "" {
		links["instagram"] = a.Instagram
	}
	if a.Facebook != "" {
		links["facebook"] = a.Facebook
	}
	return links
}
