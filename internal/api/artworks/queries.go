package artworks

import (
	"strconv"
	"strings"

	"folkify/internal/apperr"
	"folkify/internal/domain/artworks"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// listParamsFromQuery reads the listing options from the query string.
func listParamsFromQuery(c *gin.Context) (artworks.ListParams, error) {
	p := artworks.ListParams{
		ArtForm:        c.Query("artForm"),
		ArtistID:       c.Query("artistId"),
		OrderField:     c.Query("orderField"),
		OrderDirection: c.Query("orderDirection"),
		Cursor:         c.Query("cursor"),
		Search:         c.Query("search"),
		Region:         c.Query("region"),
		Sort:           c.Query("sort"),
	}

	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return p, apperr.New(apperr.CodeValidation, "isActive must be true or false")
		}
		p.IsActive = &active
	}

	raw := c.Query("limit")
	if raw == "" {
		raw = c.Query("limitCount")
	}
	if raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return p, apperr.New(apperr.CodeValidation, "limit must be a positive number")
		}
		p.Limit = limit
	}
	return p, nil
}

func parsePrice(raw *string) (decimal.NullDecimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return decimal.NullDecimal{}, apperr.New(apperr.CodeValidation, "price must be a number")
	}
	return decimal.NewNullDecimal(d.Round(2)), nil
}

// ownedArtwork loads an artwork the artist may manage, active or not.
func ownedArtwork(db *gorm.DB, id, artistID string) (*artworks.Artwork, error) {
	var a artworks.Artwork
	if err := db.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if a.ArtistID != artistID {
		return nil, apperr.New(apperr.CodeForbidden, "you can only manage your own artworks")
	}
	return &a, nil
}

// editableColumns are the columns an update may write; counters and
// activation have their own paths.
var editableColumns = []string{
	"title", "description", "art_form", "price", "currency", "dimensions",
	"materials", "year_created", "tags", "image_url", "image_thumbnail_url",
	"image_provider_id", "is_for_sale",
}
