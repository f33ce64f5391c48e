package artworks

import (
	"time"

	"folkify/internal/domain/artists"
	"folkify/internal/domain/artworks"
)

type ImageRefDTO struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ProviderID   string `json:"provider_id,omitempty"`
}

type ArtworkDTO struct {
	ID          string      `json:"id"`
	ArtistID    string      `json:"artist_id"`
	ArtistName  string      `json:"artist_name"`
	Region      string      `json:"region"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ArtForm     string      `json:"art_form"`
	Price       *string     `json:"price"`
	Currency    string      `json:"currency"`
	Dimensions  string      `json:"dimensions,omitempty"`
	Materials   string      `json:"materials,omitempty"`
	YearCreated int         `json:"year_created,omitempty"`
	Tags        []string    `json:"tags"`
	Image       ImageRefDTO `json:"image"`
	IsForSale   bool        `json:"is_for_sale"`
	Views       int64       `json:"views"`
	Likes       int64       `json:"likes"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toArtworkDTO(a artworks.Artwork) ArtworkDTO {
	var price *string
	if a.Price.Valid {
		p := a.Price.Decimal.StringFixed(2)
		price = &p
	}
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArtworkDTO{
		ID:          a.ID,
		ArtistID:    a.ArtistID,
		ArtistName:  a.ArtistName,
		Region:      a.Region,
		Title:       a.Title,
		Description: a.Description,
		ArtForm:     a.ArtForm,
		Price:       price,
		Currency:    a.Currency,
		Dimensions:  a.Dimensions,
		Materials:   a.Materials,
		YearCreated: a.YearCreated,
		Tags:        tags,
		Image: ImageRefDTO{
			URL:          a.Image.URL,
			ThumbnailURL: a.Image.ThumbnailURL,
			ProviderID:   a.Image.ProviderID,
		},
		IsForSale: a.IsForSale,
		Views:     a.Views,
		Likes:     a.Likes,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toArtworkDTOs(list []artworks.Artwork) []ArtworkDTO {
	out := make([]ArtworkDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toArtworkDTO(a))
	}
	return out
}

type VerificationDTO struct {
	IsVerified     bool `json:"is_verified"`
	ActiveArtworks int  `json:"active_artworks"`
	Remaining      int  `json:"remaining"`
	Changed        bool `json:"changed"`
}

func toVerificationDTO(e artists.Evaluation) VerificationDTO {
	return VerificationDTO{
		IsVerified:     e.ShouldBeVerified,
		ActiveArtworks: e.Count,
		Remaining:      e.Remaining,
		Changed:        e.Changed,
	}
}
