package artworks

import (
	"context"
	"fmt"

	"folkify/internal/apperr"
	"folkify/internal/infra/pagination"

	"gorm.io/gorm"
)

type Page struct {
	Artworks []Artwork
	HasMore  bool
	Cursor   string
}

// List runs the listing pipeline: an equality/order/limit query against the
// store, then search, region and sort over the fetched page.
func List(ctx context.Context, db *gorm.DB, params ListParams) (*Page, error) {
	params, err := params.Normalize()
	if err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, err, "invalid cursor")
	}
	column := params.column()
	if cursor != nil && cursor.Field != column {
		return nil, apperr.New(apperr.CodeValidation, "cursor does not match the requested order")
	}

	q := db.WithContext(ctx).Model(&Artwork{}).Where("is_active = ?", *params.IsActive)
	if params.ArtForm != "" {
		q = q.Where("art_form = ?", params.ArtForm)
	}
	if params.ArtistID != "" {
		q = q.Where("artist_id = ?", params.ArtistID)
	}
	if column == "price" {
		// price ordering only covers priced listings
		q = q.Where("price IS NOT NULL")
	}

	if cursor != nil {
		op := "<"
		if params.OrderDirection == DirectionAsc {
			op = ">"
		}
		var key any
		if column == "price" {
			key, err = cursor.Decimal()
		} else {
			key, err = cursor.Time()
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeValidation, err, "invalid cursor")
		}
		q = q.Where(
			fmt.Sprintf("((%s %s ?) OR (%s = ? AND id %s ?))", column, op, column, op),
			key, key, cursor.ID.String(),
		)
	}

	pageSize := pagination.NormalizeLimit(params.Limit)
	var rows []Artwork
	if err := q.
		Order(column + " " + params.OrderDirection).
		Order("id " + params.OrderDirection).
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.CodeDependency, err, "failed to load artworks")
	}

	page := &Page{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		page.HasMore = true
		next, err := cursorFor(rows[len(rows)-1], column)
		if err != nil {
			return nil, err
		}
		page.Cursor = pagination.EncodeCursor(next)
	}

	page.Artworks = FilterPage(rows, params)
	SortPage(page.Artworks, params.Sort)
	return page, nil
}

func cursorFor(last Artwork, column string) (pagination.Cursor, error) {
	id, err := parseID(last.ID)
	if err != nil {
		return pagination.Cursor{}, err
	}
	if column == "price" {
		return pagination.DecimalCursor(column, last.Price.Decimal, id), nil
	}
	return pagination.TimeCursor(column, last.CreatedAt, id), nil
}

// ByArtist returns every artwork of the artist, active or not.
func ByArtist(ctx context.Context, db *gorm.DB, artistID string) ([]Artwork, error) {
	var rows []Artwork
	if err := db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementViews bumps the view counter with a single atomic update.
func IncrementViews(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&Artwork{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleLike flips the user's like on an active artwork and returns the new
// state together with the updated counter.
func ToggleLike(ctx context.Context, db *gorm.DB, artworkID, userID string) (bool, int64, error) {
	var liked bool
	var likes int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a Artwork
		if err := tx.Select("id").First(&a, "id = ? AND is_active = ?", artworkID, true).Error; err != nil {
			return err
		}

		res := tx.Where("artwork_id = ? AND user_id = ?", artworkID, userID).Delete(&Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			if err := tx.Model(&Artwork{}).
				Where("id = ? AND likes > 0", artworkID).
				UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
				return err
			}
		} else {
			liked = true
			if err := tx.Create(&Like{ArtworkID: artworkID, UserID: userID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&Artwork{}).
				Where("id = ?", artworkID).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&Artwork{}).Select("likes").Where("id = ?", artworkID).Scan(&likes).Error
	})
	return liked, likes, err
}

// LikedBy reports whether userID has liked the artwork.
func LikedBy(ctx context.Context, db *gorm.DB, artworkID, userID string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&Like{}).
		Where("artwork_id = ? AND user_id = ?", artworkID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
