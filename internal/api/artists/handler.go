package artists

import (
	"net/http"
	"strings"
	"time"

	"folkify/database"
	"folkify/internal/api/artworks"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/apperr"
	"folkify/internal/domain/artists"
	artworkdomain "folkify/internal/domain/artworks"
	"folkify/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /artists/:id
func GetArtist(c *gin.Context) {
	artist, err := findArtist(database.DB, c.Param("id"))
	if err != nil {
		respond.Fail(c, apperr.NotFound(err, "Artist not found"))
		return
	}

	// the badge is re-evaluated on read so stale profiles heal themselves
	eval, err := artists.SyncVerification(c.Request.Context(), database.DB, artist.ID, time.Now())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	artists.RecordChange(eval)
	if eval.Changed {
		if err := database.DB.First(&artist, "id = ?", artist.ID).Error; err != nil {
			respond.Fail(c, err)
			return
		}
	}
	if _, err := artists.EnsureProfileSlug(database.DB, &artist); err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"artist": toProfileDTO(artist, eval)})
}

// GET /artists/:id/artworks
func ListArtistArtworks(c *gin.Context) {
	artist, err := findArtist(database.DB, c.Param("id"))
	if err != nil {
		status, message := apperr.PublicMessage(apperr.NotFound(err, "Artist not found"))
		c.AbortWithStatusJSON(status, gin.H{
			"success":  false,
			"error":    message,
			"artworks": []artworks.ArtworkDTO{},
		})
		return
	}
	c.Request.URL.RawQuery = withArtist(c.Request.URL.Query(), artist.ID)
	artworks.ListArtworks(c)
}

// PUT /artists/me
func UpdateMyProfile(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var artist artists.Artist
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artist, "id = ?", s.UserID).Error; err != nil {
			return err
		}
		before := artist
		applyProfileUpdate(&artist, req)
		if strings.TrimSpace(artist.DisplayName) == "" {
			artist.DisplayName = before.DisplayName
		}
		if err := tx.Save(&artist).Error; err != nil {
			return err
		}

		if artist.DisplayName != before.DisplayName {
			if err := tx.Model(&users.User{}).
				Where("id = ?", artist.ID).
				Update("display_name", artist.DisplayName).Error; err != nil {
				return err
			}
		}

		// listings carry a copy of the name and region
		if artist.DisplayName != before.DisplayName || artist.Region != before.Region {
			return tx.Model(&artworkdomain.Artwork{}).
				Where("artist_id = ?", artist.ID).
				Updates(map[string]interface{}{
					"artist_name": artist.DisplayName,
					"region":      artist.Region,
				}).Error
		}
		return nil
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}

	eval, err := artists.SyncVerification(c.Request.Context(), database.DB, artist.ID, time.Now())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	artists.RecordChange(eval)
	if _, err := artists.EnsureProfileSlug(database.DB, &artist); err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"artist": toProfileDTO(artist, eval)})
}
