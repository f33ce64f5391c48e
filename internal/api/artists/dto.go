package artists

import (
	"time"

	"folkify/internal/domain/artists"
)

type UpdateProfileRequest struct {
	DisplayName       *string `json:"display_name" binding:"omitempty,min=2,max=80"`
	Bio               *string `json:"bio" binding:"omitempty,max=2000"`
	ArtForm           *string `json:"art_form"`
	Region            *string `json:"region"`
	Village           *string `json:"village"`
	YearsOfExperience *int    `json:"years_of_experience" binding:"omitempty,min=0,max=100"`
	Specialization    *string `json:"specialization"`
	Awards            *string `json:"awards"`
	Website           *string `json:"website" binding:"omitempty,url"`
	Instagram         *string `json:"instagram"`
	Facebook          *string `json:"facebook"`
}

type ProgressDTO struct {
	ActiveArtworks int `json:"active_artworks"`
	Remaining      int `json:"remaining"`
}

type ProfileDTO struct {
	ID                string            `json:"id"`
	DisplayName       string            `json:"display_name"`
	Bio               string            `json:"bio"`
	ArtForm           string            `json:"art_form"`
	Region            string            `json:"region"`
	Village           string            `json:"village"`
	YearsOfExperience int               `json:"years_of_experience"`
	Specialization    string            `json:"specialization,omitempty"`
	Awards            string            `json:"awards,omitempty"`
	SocialLinks       map[string]string `json:"social_links"`
	ProfileSlug       string            `json:"profile_slug"`
	IsVerified        bool              `json:"is_verified"`
	VerificationDate  *time.Time        `json:"verification_date"`
	Verification      ProgressDTO       `json:"verification"`
	MemberSince       time.Time         `json:"member_since"`
}

func toProfileDTO(a artists.Artist, eval artists.Evaluation) ProfileDTO {
	slug := ""
	if a.ProfileSlug != nil {
		slug = *a.ProfileSlug
	}
	return ProfileDTO{
		ID:                a.ID,
		DisplayName:       a.DisplayName,
		Bio:               a.Bio,
		ArtForm:           a.ArtForm,
		Region:            a.Region,
		Village:           a.Village,
		YearsOfExperience: a.YearsOfExperience,
		Specialization:    a.Specialization,
		Awards:            a.Awards,
		SocialLinks:       a.SocialLinks(),
		ProfileSlug:       slug,
		IsVerified:        a.IsVerified,
		VerificationDate:  a.VerificationDate,
		Verification: ProgressDTO{
			ActiveArtworks: eval.Count,
			Remaining:      eval.Remaining,
		},
		MemberSince: a.CreatedAt,
	}
}
