package artworks

type ImageInput struct {
	URL          string `json:"url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	ProviderID   string `json:"provider_id"`
}

type CreateArtworkRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ArtForm     string     `json:"art_form" binding:"required"`
	Price       *string    `json:"price"`
	Currency    string     `json:"currency"`
	Dimensions  string     `json:"dimensions"`
	Materials   string     `json:"materials"`
	YearCreated int        `json:"year_created"`
	Tags        []string   `json:"tags"`
	Image       ImageInput `json:"image" binding:"required"`
	IsForSale   bool       `json:"is_for_sale"`
}

type UpdateArtworkRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	ArtForm     *string     `json:"art_form"`
	Price       *string     `json:"price"`
	ClearPrice  bool        `json:"clear_price"`
	Currency    *string     `json:"currency"`
	Dimensions  *string     `json:"dimensions"`
	Materials   *string     `json:"materials"`
	YearCreated *int        `json:"year_created"`
	Tags        []string    `json:"tags"`
	Image       *ImageInput `json:"image"`
	IsForSale   *bool       `json:"is_for_sale"`
}
