package users

import "time"

type MeResponse struct {
	User   UserDTO    `json:"user"`
	Artist *ArtistDTO `json:"artist,omitempty"`
}

type UserDTO struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	DisplayName  string  `json:"display_name"`
	Phone        *string `json:"phone"`
	Role         string  `json:"role"`
	AuthProvider string  `json:"auth_provider"`
	HasPassword  bool    `json:"has_password"`
}

type ArtistDTO struct {
	ProfileSlug      *string       `json:"profile_slug"`
	IsVerified       bool          `json:"is_verified"`
	VerificationDate *time.Time    `json:"verification_date"`
	Verification     ProgressDTO   `json:"verification"`
	Compliance       ComplianceDTO `json:"compliance"`
}

type ProgressDTO struct {
	ActiveArtworks int `json:"active_artworks"`
	Remaining      int `json:"remaining"`
}

type ComplianceDTO struct {
	CompletionPercentage int    `json:"completion_percentage"`
	IsExportReady        bool   `json:"is_export_ready"`
	ReviewStatus         string `json:"review_status"`
}
