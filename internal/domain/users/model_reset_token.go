package users

import "time"

type ResetToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t ResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
