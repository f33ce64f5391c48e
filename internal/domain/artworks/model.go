package artworks

import (
	"time"

	"folkify/internal/domain/media"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultCurrency = "INR"

type Artwork struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtistID string `gorm:"type:uuid;not null;index:idx_artworks_artist_active,priority:1" json:"artist_id"`

	// Denormalized from the artist at creation so listings filter without a join.
	ArtistName string `json:"artist_name"`
	Region     string `json:"region"`

	Title       string              `gorm:"not null" json:"title"`
	Description string              `json:"description"`
	ArtForm     string              `gorm:"index" json:"art_form"`
	Price       decimal.NullDecimal `gorm:"type:numeric(12,2);index" json:"price"`
	Currency    string              `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
	Dimensions  string              `json:"dimensions,omitempty"`
	Materials   string              `json:"materials,omitempty"`
	YearCreated int                 `json:"year_created,omitempty"`
	Tags        []string            `gorm:"serializer:json" json:"tags"`
	Image       media.ImageRef      `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	IsForSale   bool                `gorm:"not null;default:false" json:"is_for_sale"`
	Views       int64               `gorm:"not null;default:0" json:"views"`
	Likes       int64               `gorm:"not null;default:0" json:"likes"`
	IsActive    bool                `gorm:"not null;index:idx_artworks_artist_active,priority:2" json:"is_active"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}
	return nil
}

// Purchasable reports whether a buyer can order the artwork.
func (a Artwork) Purchasable() bool {
	return a.IsActive && a.IsForSale && a.Price.Valid
}

// Like records that a user liked an artwork; it drives the like toggle.
type Like struct {
	ArtworkID string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (Like) TableName() string {
	return "artwork_likes"
}
