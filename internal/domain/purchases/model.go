package purchases

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Purchase is a buyer's order for one artwork. The artwork fields are a
// snapshot taken at creation so later edits do not rewrite history.
type Purchase struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`
	ArtistID  string `gorm:"type:uuid;not null;index" json:"artist_id"`
	BuyerID   string `gorm:"type:uuid;not null;index" json:"buyer_id"`

	ArtworkTitle string          `gorm:"not null" json:"artwork_title"`
	ArtForm      string          `json:"art_form"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Currency     string          `gorm:"type:varchar(3);not null" json:"currency"`

	BuyerName       string `gorm:"not null" json:"buyer_name"`
	BuyerEmail      string `gorm:"not null" json:"buyer_email"`
	BuyerPhone      string `json:"buyer_phone"`
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`
	Message         string `gorm:"type:text" json:"message,omitempty"`

	Status          Status        `gorm:"type:varchar(16);not null;index" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(16);not null" json:"payment_status"`
	StripeSessionID *string       `gorm:"uniqueIndex" json:"-"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentPending
	}
	return nil
}

// Terminal reports whether no further status change is possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
