package purchases

import (
	"context"
	"time"

	"folkify/internal/apperr"
	"folkify/internal/infra/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	AsBuyer  = "buyer"
	AsSeller = "seller"
)

// ListFor returns the purchases where userID is the buyer or the seller, newest first.
func ListFor(ctx context.Context, db *gorm.DB, userID, as string) ([]Purchase, error) {
	q := db.WithContext(ctx).Model(&Purchase{})
	switch as {
	case AsBuyer, "":
		q = q.Where("buyer_id = ?", userID)
	case AsSeller:
		q = q.Where("artist_id = ?", userID)
	default:
		return nil, apperr.New(apperr.CodeValidation, "as must be buyer or seller")
	}

	var rows []Purchase
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LockForUpdate loads a purchase inside tx with a row lock.
func LockForUpdate(tx *gorm.DB, id string) (*Purchase, error) {
	var p Purchase
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Visible reports whether userID is a party to the purchase.
func (p Purchase) Visible(userID string) bool {
	return p.BuyerID == userID || p.ArtistID == userID
}

// RecordPayment marks the purchase paid under a row lock and persists it.
// changed is false when it was already paid.
func RecordPayment(ctx context.Context, db *gorm.DB, id string, now time.Time) (*Purchase, bool, error) {
	var (
		p       *Purchase
		changed bool
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if p, err = LockForUpdate(tx, id); err != nil {
			return err
		}
		if changed, err = MarkPaid(p, now); err != nil || !changed {
			return err
		}
		return tx.Save(p).Error
	})
	if err != nil {
		return nil, false, err
	}
	if changed {
		metrics.Default.IncPurchaseTransition(string(PaymentPaid))
	}
	return p, changed, nil
}
