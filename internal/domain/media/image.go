package media

import "time"

// ImageRef points at an uploaded image on the image host.
type ImageRef struct {
	URL          string `gorm:"column:url" json:"url"`
	ThumbnailURL string `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	ProviderID   string `gorm:"column:provider_id" json:"provider_id"`
}

func (r ImageRef) Empty() bool {
	return r.URL == "" && r.ProviderID == ""
}

// FileMeta describes an uploaded document such as a certificate.
type FileMeta struct {
	URL        string    `json:"url"`
	ProviderID string    `json:"provider_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}
