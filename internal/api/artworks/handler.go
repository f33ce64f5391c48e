package artworks

import (
	"context"
	"net/http"
	"strings"
	"time"

	"folkify/database"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/apperr"
	"folkify/internal/domain/artists"
	"folkify/internal/domain/artworks"
	"folkify/internal/domain/media"
	"folkify/internal/infra/imagehost"
	"folkify/internal/infra/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GET /artworks
func ListArtworks(c *gin.Context) {
	params, err := listParamsFromQuery(c)
	if err != nil {
		listFailure(c, err)
		return
	}

	// inactive listings are only ever the caller's own
	if params.IsActive != nil && !*params.IsActive {
		s, ok := middleware.CurrentSession(c)
		if !ok || !s.IsArtist() {
			listFailure(c, apperr.New(apperr.CodeForbidden, "only artists can list inactive artworks"))
			return
		}
		params.ArtistID = s.UserID
	}

	page, err := artworks.List(c.Request.Context(), database.DB, params)
	if err != nil {
		listFailure(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{
		"artworks": toArtworkDTOs(page.Artworks),
		"hasMore":  page.HasMore,
		"cursor":   page.Cursor,
	})
}

func listFailure(c *gin.Context, err error) {
	status, message := apperr.PublicMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("artwork listing failed")
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success":  false,
		"error":    message,
		"artworks": []ArtworkDTO{},
	})
}

// GET /artworks/:id
func GetArtwork(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var a artworks.Artwork
	if err := database.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		respond.Fail(c, apperr.NotFound(err, "Artwork not found"))
		return
	}

	s, authed := middleware.CurrentSession(c)
	owner := authed && s.Owns(a.ArtistID)
	if !a.IsActive && !owner {
		respond.FailWith(c, http.StatusNotFound, "Artwork not found")
		return
	}

	if a.IsActive && !owner {
		if err := artworks.IncrementViews(ctx, database.DB, a.ID); err == nil {
			a.Views++
			metrics.Default.IncArtworkView()
		} else {
			log.Warn().Err(err).Str("artwork_id", a.ID).Msg("view increment failed")
		}
	}

	liked := false
	if authed {
		l, err := artworks.LikedBy(ctx, database.DB, a.ID, s.UserID)
		if err != nil {
			respond.Fail(c, err)
			return
		}
		liked = l
	}

	respond.OK(c, http.StatusOK, gin.H{
		"artwork": toArtworkDTO(a),
		"liked":   liked,
		"owner":   owner,
	})
}

// POST /artworks
func CreateArtwork(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	var artist artists.Artist
	if err := database.DB.First(&artist, "id = ?", s.UserID).Error; err != nil {
		respond.Fail(c, apperr.NotFound(err, "Artist profile not found"))
		return
	}

	a := artworks.Artwork{
		ArtistID:    artist.ID,
		ArtistName:  artist.DisplayName,
		Region:      artist.Region,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ArtForm:     strings.TrimSpace(req.ArtForm),
		Price:       price,
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		Dimensions:  req.Dimensions,
		Materials:   req.Materials,
		YearCreated: req.YearCreated,
		Tags:        artworks.NormalizeTags(req.Tags),
		Image: media.ImageRef{
			URL:          req.Image.URL,
			ThumbnailURL: req.Image.ThumbnailURL,
			ProviderID:   req.Image.ProviderID,
		},
		IsForSale: req.IsForSale,
		IsActive:  true,
	}
	if err := a.Validate(); err != nil {
		respond.Fail(c, err)
		return
	}

	var eval artists.Evaluation
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		var syncErr error
		eval, syncErr = artists.SyncVerification(c.Request.Context(), tx, artist.ID, time.Now())
		return syncErr
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}
	artists.RecordChange(eval)

	respond.OK(c, http.StatusCreated, gin.H{
		"artwork":      toArtworkDTO(a),
		"verification": toVerificationDTO(eval),
	})
}

// PUT /artworks/:id
func UpdateArtwork(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	a, err := ownedArtwork(database.DB, c.Param("id"), s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	if err := applyUpdate(a, req); err != nil {
		respond.Fail(c, err)
		return
	}
	if err := a.Validate(); err != nil {
		respond.Fail(c, err)
		return
	}

	if err := database.DB.Model(a).Select(editableColumns).Updates(a).Error; err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"artwork": toArtworkDTO(*a)})
}

func applyUpdate(a *artworks.Artwork, req UpdateArtworkRequest) error {
	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		a.Description = strings.TrimSpace(*req.Description)
	}
	if req.ArtForm != nil {
		a.ArtForm = strings.TrimSpace(*req.ArtForm)
	}
	if req.ClearPrice {
		a.Price.Valid = false
	} else if req.Price != nil {
		price, err := parsePrice(req.Price)
		if err != nil {
			return err
		}
		a.Price = price
	}
	if req.Currency != nil {
		a.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
		if a.Currency == "" {
			a.Currency = artworks.DefaultCurrency
		}
	}
	if req.Dimensions != nil {
		a.Dimensions = *req.Dimensions
	}
	if req.Materials != nil {
		a.Materials = *req.Materials
	}
	if req.YearCreated != nil {
		a.YearCreated = *req.YearCreated
	}
	if req.Tags != nil {
		a.Tags = artworks.NormalizeTags(req.Tags)
	}
	if req.Image != nil {
		a.Image = media.ImageRef{
			URL:          req.Image.URL,
			ThumbnailURL: req.Image.ThumbnailURL,
			ProviderID:   req.Image.ProviderID,
		}
	}
	if req.IsForSale != nil {
		a.IsForSale = *req.IsForSale
	}
	return nil
}

// DELETE /artworks/:id
func DeleteArtwork(c *gin.Context) {
	setActive(c, false)
}

// POST /artworks/:id/restore
func RestoreArtwork(c *gin.Context) {
	setActive(c, true)
}

// setActive flips the visibility flag and re-evaluates the artist's badge
// in the same transaction.
func setActive(c *gin.Context, active bool) {
	s, _ := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	var eval artists.Evaluation
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := ownedArtwork(tx, c.Param("id"), s.UserID)
		if err != nil {
			return err
		}
		if a.IsActive != active {
			if err := tx.Model(a).Update("is_active", active).Error; err != nil {
				return err
			}
		}
		eval, err = artists.SyncVerification(ctx, tx, s.UserID, time.Now())
		return err
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}
	artists.RecordChange(eval)

	respond.OK(c, http.StatusOK, gin.H{
		"id":           c.Param("id"),
		"is_active":    active,
		"verification": toVerificationDTO(eval),
	})
}

// DELETE /artworks/:id/permanent
func DeleteArtworkPermanently(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	var (
		eval  artists.Evaluation
		image media.ImageRef
	)
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := ownedArtwork(tx, c.Param("id"), s.UserID)
		if err != nil {
			return err
		}
		image = a.Image
		if err := tx.Where("artwork_id = ?", a.ID).Delete(&artworks.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(a).Error; err != nil {
			return err
		}
		eval, err = artists.SyncVerification(ctx, tx, s.UserID, time.Now())
		return err
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}
	artists.RecordChange(eval)

	removeImage(ctx, image)
	respond.OK(c, http.StatusOK, gin.H{
		"id":           c.Param("id"),
		"deleted":      true,
		"verification": toVerificationDTO(eval),
	})
}

// removeImage is best-effort: the row is already gone.
func removeImage(ctx context.Context, image media.ImageRef) {
	if imagehost.Default == nil || image.ProviderID == "" {
		return
	}
	if err := imagehost.Default.Delete(ctx, image.ProviderID); err != nil {
		log.Warn().Err(err).Str("provider_id", image.ProviderID).Msg("image delete failed")
	}
}

// POST /artworks/:id/like
func ToggleLike(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	liked, likes, err := artworks.ToggleLike(c.Request.Context(), database.DB, c.Param("id"), s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	metrics.Default.IncLikeToggle(liked)

	respond.OK(c, http.StatusOK, gin.H{"liked": liked, "likes": likes})
}
