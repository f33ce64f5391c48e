package users

import (
	"folkify/internal/domain/artists"
	"folkify/internal/domain/compliance"
	"folkify/internal/domain/users"
)

func toUserDTO(u users.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Phone:        stringPtrIfNotEmpty(u.Phone),
		Role:         u.Role,
		AuthProvider: u.AuthProvider,
		HasPassword:  u.Password != nil && *u.Password != "",
	}
}

func toArtistDTO(a artists.Artist, eval artists.Evaluation, rec *compliance.Record) *ArtistDTO {
	out := &ArtistDTO{
		ProfileSlug:      a.ProfileSlug,
		IsVerified:       a.IsVerified,
		VerificationDate: a.VerificationDate,
		Verification: ProgressDTO{
			ActiveArtworks: eval.Count,
			Remaining:      eval.Remaining,
		},
	}
	if rec != nil {
		out.Compliance = ComplianceDTO{
			CompletionPercentage: rec.CompletionPercentage,
			IsExportReady:        rec.IsExportReady,
			ReviewStatus:         rec.ReviewStatus,
		}
	}
	return out
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
