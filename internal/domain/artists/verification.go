package artists

import (
	"time"

	"folkify/internal/domain/artworks"
)

// VerificationThreshold is the number of active artworks that earns the badge.
const VerificationThreshold = 3

type Evaluation struct {
	ShouldBeVerified bool `json:"should_be_verified"`
	Changed          bool `json:"changed"`
	Count            int  `json:"count"`
	Remaining        int  `json:"remaining"`
}

// Evaluate decides whether artist should carry the verified badge. Artworks
// belonging to other artists or soft-deleted ones do not count.
func Evaluate(artist Artist, list []artworks.Artwork) Evaluation {
	count := 0
	for _, a := range list {
		if a.ArtistID == artist.ID && a.IsActive {
			count++
		}
	}

	should := count >= VerificationThreshold
	return Evaluation{
		ShouldBeVerified: should,
		Changed:          should != artist.IsVerified,
		Count:            count,
		Remaining:        max(0, VerificationThreshold-count),
	}
}

// Apply writes the evaluation onto artist. VerificationDate is set when the
// artist becomes verified and cleared when the badge is lost.
func Apply(artist *Artist, eval Evaluation, now time.Time) {
	if !eval.Changed {
		return
	}
	artist.IsVerified = eval.ShouldBeVerified
	if eval.ShouldBeVerified {
		at := now
		artist.VerificationDate = &at
	} else {
		artist.VerificationDate = nil
	}
}
