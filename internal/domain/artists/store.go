package artists

import (
	"context"
	"time"

	"folkify/internal/domain/artworks"
	"folkify/internal/infra/metrics"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SyncVerification re-evaluates the artist's badge from the stored artworks
// and persists it when it changed. Pass the transaction that mutated the
// artworks so both writes commit together. It is safe to call repeatedly.
// Callers report the change with RecordChange once the write has committed.
func SyncVerification(ctx context.Context, db *gorm.DB, artistID string, now time.Time) (Evaluation, error) {
	var artist Artist
	if err := db.WithContext(ctx).First(&artist, "id = ?", artistID).Error; err != nil {
		return Evaluation{}, err
	}

	list, err := artworks.ByArtist(ctx, db, artistID)
	if err != nil {
		return Evaluation{}, err
	}

	eval := Evaluate(artist, list)
	if !eval.Changed {
		return eval, nil
	}

	Apply(&artist, eval, now)
	if err := db.WithContext(ctx).
		Model(&Artist{}).
		Where("id = ?", artist.ID).
		Updates(map[string]interface{}{
			"is_verified":       artist.IsVerified,
			"verification_date": artist.VerificationDate,
		}).Error; err != nil {
		return Evaluation{}, err
	}

	log.Info().
		Str("artist_id", artist.ID).
		Bool("verified", artist.IsVerified).
		Int("active_artworks", eval.Count).
		Msg("artist verification changed")
	return eval, nil
}

// RecordChange counts a committed badge change.
func RecordChange(eval Evaluation) {
	if eval.Changed {
		metrics.Default.IncVerificationChange(eval.ShouldBeVerified)
	}
}
