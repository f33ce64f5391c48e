package purchases

import (
	"net/http"
	"strings"
	"time"

	"folkify/database"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/apperr"
	"folkify/internal/domain/artworks"
	"folkify/internal/domain/purchases"
	"folkify/internal/domain/users"
	"folkify/internal/infra/metrics"
	"folkify/internal/infra/payments"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// POST /purchases
func CreatePurchase(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var artwork artworks.Artwork
	if err := database.DB.WithContext(ctx).First(&artwork, "id = ?", req.ArtworkID).Error; err != nil {
		respond.Fail(c, apperr.NotFound(err, "Artwork not found"))
		return
	}
	if !artwork.Purchasable() {
		respond.Fail(c, apperr.New(apperr.CodeStateConflict, "this artwork is not for sale"))
		return
	}
	if artwork.ArtistID == s.UserID {
		respond.Fail(c, apperr.New(apperr.CodeValidation, "you cannot buy your own artwork"))
		return
	}

	var buyer users.User
	if err := database.DB.WithContext(ctx).First(&buyer, "id = ?", s.UserID).Error; err != nil {
		respond.FailWith(c, http.StatusUnauthorized, "User not found")
		return
	}

	p := purchases.Purchase{
		ArtworkID:       artwork.ID,
		ArtistID:        artwork.ArtistID,
		BuyerID:         buyer.ID,
		ArtworkTitle:    artwork.Title,
		ArtForm:         artwork.ArtForm,
		ImageURL:        artwork.Image.URL,
		Price:           artwork.Price.Decimal,
		Currency:        artwork.Currency,
		BuyerName:       firstNonEmpty(req.BuyerName, buyer.DisplayName),
		BuyerEmail:      strings.ToLower(firstNonEmpty(req.BuyerEmail, buyer.Email)),
		BuyerPhone:      firstNonEmpty(req.BuyerPhone, buyer.Phone),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Message:         strings.TrimSpace(req.Message),
	}
	if err := database.DB.WithContext(ctx).Create(&p).Error; err != nil {
		respond.Fail(c, err)
		return
	}

	log.Info().
		Str("purchase_id", p.ID).
		Str("artwork_id", p.ArtworkID).
		Str("buyer_id", p.BuyerID).
		Msg("purchase created")
	respond.OK(c, http.StatusCreated, gin.H{"purchase": p})
}

// GET /purchases?as=buyer|seller
func ListPurchases(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	list, err := purchases.ListFor(c.Request.Context(), database.DB, s.UserID, c.Query("as"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"purchases": list})
}

// GET /purchases/:id
func GetPurchase(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	p, err := visiblePurchase(c, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"purchase": p})
}

// visiblePurchase loads the purchase for one of its parties. Others get
// not found rather than forbidden.
func visiblePurchase(c *gin.Context, userID string) (*purchases.Purchase, error) {
	var p purchases.Purchase
	if err := database.DB.WithContext(c.Request.Context()).First(&p, "id = ?", c.Param("id")).Error; err != nil {
		return nil, apperr.NotFound(err, "Purchase not found")
	}
	if !p.Visible(userID) {
		return nil, apperr.New(apperr.CodeNotFound, "Purchase not found")
	}
	return &p, nil
}

// POST /purchases/:id/status
func UpdateStatus(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	action, err := purchases.ParseAction(req.Action)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	var (
		p       *purchases.Purchase
		changed bool
	)
	err = database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		if p, err = purchases.LockForUpdate(tx, c.Param("id")); err != nil {
			return apperr.NotFound(err, "Purchase not found")
		}
		if p.ArtistID != s.UserID {
			return apperr.New(apperr.CodeForbidden, "only the seller can update this purchase")
		}
		if changed, err = purchases.Apply(p, action, time.Now().UTC()); err != nil || !changed {
			return err
		}
		return tx.Save(p).Error
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}

	if changed {
		metrics.Default.IncPurchaseTransition(string(p.Status))
		log.Info().Str("purchase_id", p.ID).Str("status", string(p.Status)).Msg("purchase status changed")
	}
	respond.OK(c, http.StatusOK, gin.H{"purchase": p, "changed": changed})
}

// POST /purchases/:id/payment
func MarkPaid(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	existing, err := visiblePurchase(c, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	if existing.ArtistID != s.UserID {
		respond.Fail(c, apperr.New(apperr.CodeForbidden, "only the seller can record a payment"))
		return
	}

	p, changed, err := purchases.RecordPayment(c.Request.Context(), database.DB, existing.ID, time.Now().UTC())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"purchase": p, "changed": changed})
}

// POST /purchases/:id/checkout
func StartCheckout(c *gin.Context) {
	s, _ := middleware.CurrentSession(c)

	if !payments.Default.Enabled() {
		respond.FailWith(c, http.StatusServiceUnavailable, "Online payment is not available")
		return
	}

	p, err := visiblePurchase(c, s.UserID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	if p.BuyerID != s.UserID {
		respond.Fail(c, apperr.New(apperr.CodeForbidden, "only the buyer can pay for this purchase"))
		return
	}
	if p.Status == purchases.StatusCancelled {
		respond.Fail(c, apperr.New(apperr.CodeStateConflict, "this purchase was cancelled"))
		return
	}
	if p.PaymentStatus == purchases.PaymentPaid {
		respond.Fail(c, apperr.New(apperr.CodeStateConflict, "this purchase is already paid"))
		return
	}

	checkout, err := payments.Default.CreateCheckout(*p)
	if err != nil {
		log.Error().Err(err).Str("purchase_id", p.ID).Msg("stripe checkout failed")
		respond.Fail(c, apperr.Wrap(apperr.CodeDependency, err, "could not start checkout"))
		return
	}

	if err := database.DB.Model(p).Update("stripe_session_id", checkout.SessionID).Error; err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"checkout": checkout})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
