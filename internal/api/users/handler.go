package users

import (
	"net/http"
	"time"

	"folkify/database"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/apperr"
	"folkify/internal/domain/artists"
	"folkify/internal/domain/compliance"
	"folkify/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		respond.FailWith(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ?", s.UserID).Error; err != nil {
		respond.Fail(c, apperr.NotFound(err, "User not found"))
		return
	}

	resp := MeResponse{User: toUserDTO(user)}
	if user.IsArtist() {
		ctx := c.Request.Context()
		eval, err := artists.SyncVerification(ctx, database.DB, user.ID, time.Now())
		if err != nil {
			respond.Fail(c, err)
			return
		}
		artists.RecordChange(eval)

		var artist artists.Artist
		if err := database.DB.First(&artist, "id = ?", user.ID).Error; err != nil {
			respond.Fail(c, err)
			return
		}
		if _, err := artists.EnsureProfileSlug(database.DB, &artist); err != nil {
			log.Warn().Err(err).Str("artist_id", artist.ID).Msg("profile slug not assigned")
		}

		rec, err := compliance.GetOrDefault(ctx, database.DB, user.ID)
		if err != nil {
			respond.Fail(c, err)
			return
		}
		resp.Artist = toArtistDTO(artist, eval, rec)
	}

	respond.OK(c, http.StatusOK, gin.H{"me": resp})
}
