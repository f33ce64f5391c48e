package purchases

import (
	"errors"
	"net/http"
	"testing"

	"folkify/internal/domain/artworks"
	"folkify/internal/domain/media"
	"folkify/internal/domain/purchases"
	"folkify/internal/domain/session"
	"folkify/internal/domain/users"
	"folkify/internal/infra/payments"
	"folkify/internal/testsupport"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	artist  session.Session
	buyer   session.Session
	artwork artworks.Artwork
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testsupport.OpenDB(t)

	artist := users.User{Email: "ganga@example.com", Role: users.RoleArtist, DisplayName: "Ganga Devi"}
	buyer := users.User{Email: "Nina@Example.com", Role: users.RoleBuyer, DisplayName: "Nina", Phone: "+91 98000 00000"}
	require.NoError(t, db.Create(&artist).Error)
	require.NoError(t, db.Create(&buyer).Error)

	a := artworks.Artwork{
		ArtistID:  artist.ID,
		Title:     "Kohbar",
		ArtForm:   "madhubani",
		Price:     decimal.NewNullDecimal(decimal.RequireFromString("8500")),
		IsForSale: true,
		IsActive:  true,
		Image:     media.ImageRef{URL: "https://img.test/kohbar.jpg"},
	}
	require.NoError(t, db.Create(&a).Error)

	return fixture{
		db:      db,
		artist:  session.Session{UserID: artist.ID, Email: artist.Email, Role: artist.Role},
		buyer:   session.Session{UserID: buyer.ID, Email: buyer.Email, Role: buyer.Role},
		artwork: a,
	}
}

func router(s session.Session) *gin.Engine {
	r := testsupport.Engine()
	g := r.Group("/purchases", testsupport.As(s))
	g.POST("", CreatePurchase)
	g.GET("", ListPurchases)
	g.GET("/:id", GetPurchase)
	g.POST("/:id/status", UpdateStatus)
	g.POST("/:id/payment", MarkPaid)
	g.POST("/:id/checkout", StartCheckout)
	return r
}

func (f fixture) purchase(t *testing.T) string {
	t.Helper()
	w, body := testsupport.JSON(t, router(f.buyer), http.MethodPost, "/purchases", map[string]any{
		"artwork_id":       f.artwork.ID,
		"shipping_address": "4 Lake View Road, Kolkata",
	})
	require.Equal(t, http.StatusCreated, w.Code, body)
	return body["purchase"].(map[string]any)["id"].(string)
}

func action(t *testing.T, s session.Session, id, name string) (int, map[string]any) {
	t.Helper()
	w, body := testsupport.JSON(t, router(s), http.MethodPost, "/purchases/"+id+"/status", map[string]any{"action": name})
	return w.Code, body
}

func TestCreatePurchaseSnapshot(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	var p purchases.Purchase
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	assert.Equal(t, "Kohbar", p.ArtworkTitle)
	assert.Equal(t, f.artist.UserID, p.ArtistID)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(8500)))
	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, "nina@example.com", p.BuyerEmail)
	assert.Equal(t, "Nina", p.BuyerName)
	assert.Equal(t, purchases.StatusPending, p.Status)
	assert.Equal(t, purchases.PaymentPending, p.PaymentStatus)

	// later edits to the artwork do not touch the snapshot
	require.NoError(t, f.db.Model(&f.artwork).Update("title", "Renamed").Error)
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	assert.Equal(t, "Kohbar", p.ArtworkTitle)
}

func TestCreatePurchaseRules(t *testing.T) {
	f := newFixture(t)
	body := map[string]any{"artwork_id": f.artwork.ID, "shipping_address": "4 Lake View Road, Kolkata"}

	w, out := testsupport.JSON(t, router(f.artist), http.MethodPost, "/purchases", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "you cannot buy your own artwork", out["error"])

	require.NoError(t, f.db.Model(&f.artwork).Update("is_for_sale", false).Error)
	w, out = testsupport.JSON(t, router(f.buyer), http.MethodPost, "/purchases", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "this artwork is not for sale", out["error"])

	w, _ = testsupport.JSON(t, router(f.buyer), http.MethodPost, "/purchases", map[string]any{"artwork_id": f.artwork.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAndVisibility(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	w, body := testsupport.JSON(t, router(f.buyer), http.MethodGet, "/purchases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["purchases"], 1)

	w, body = testsupport.JSON(t, router(f.artist), http.MethodGet, "/purchases?as=seller", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["purchases"], 1)

	w, body = testsupport.JSON(t, router(f.artist), http.MethodGet, "/purchases?as=buyer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["purchases"], 0)

	w, _ = testsupport.JSON(t, router(f.artist), http.MethodGet, "/purchases?as=admin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stranger := session.Session{UserID: "someone-else", Role: users.RoleBuyer}
	w, _ = testsupport.JSON(t, router(stranger), http.MethodGet, "/purchases/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = testsupport.JSON(t, router(f.artist), http.MethodGet, "/purchases/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusFlow(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	code, _ := action(t, f.buyer, id, "confirm")
	assert.Equal(t, http.StatusForbidden, code)

	code, body := action(t, f.artist, id, "ship")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "cannot ship a purchase that is pending", body["error"])

	code, body = action(t, f.artist, id, "confirm")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["changed"])
	assert.Equal(t, "confirmed", body["purchase"].(map[string]any)["status"])

	code, body = action(t, f.artist, id, "confirm")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["changed"])

	code, _ = action(t, f.artist, id, "cancel")
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	for _, step := range []string{"ship", "deliver"} {
		code, _ = action(t, f.artist, id, step)
		require.Equal(t, http.StatusOK, code, step)
	}

	var p purchases.Purchase
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	assert.Equal(t, purchases.StatusDelivered, p.Status)
	assert.NotNil(t, p.ConfirmedAt)
	assert.NotNil(t, p.ShippedAt)
	assert.NotNil(t, p.DeliveredAt)

	code, _ = action(t, f.artist, id, "refund")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMarkPaidBySeller(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	w, _ := testsupport.JSON(t, router(f.buyer), http.MethodPost, "/purchases/"+id+"/payment", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := testsupport.JSON(t, router(f.artist), http.MethodPost, "/purchases/"+id+"/payment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["changed"])
	assert.Equal(t, "paid", body["purchase"].(map[string]any)["payment_status"])

	w, body = testsupport.JSON(t, router(f.artist), http.MethodPost, "/purchases/"+id+"/payment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["changed"])
}

func TestMarkPaidRefusedWhenCancelled(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	code, _ := action(t, f.artist, id, "cancel")
	require.Equal(t, http.StatusOK, code)

	w, _ := testsupport.JSON(t, router(f.artist), http.MethodPost, "/purchases/"+id+"/payment", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestStartCheckout(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	prev := payments.Default
	t.Cleanup(func() { payments.Default = prev })

	payments.Default = nil
	w, _ := testsupport.JSON(t, router(f.buyer), http.MethodPost, "/purchases/"+id+"/checkout", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	client := payments.NewClient("sk_test_123", "https://folkify.test", "")
	var captured *stripe.CheckoutSessionParams
	client.SetCreator(func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		captured = p
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
	})
	payments.Default = client

	w, _ = testsupport.JSON(t, router(f.artist), http.MethodPost, "/purchases/"+id+"/checkout", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := testsupport.JSON(t, router(f.buyer), http.MethodPost, "/purchases/"+id+"/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code, body)
	checkout := body["checkout"].(map[string]any)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_1", checkout["url"])

	require.NotNil(t, captured)
	assert.Equal(t, int64(850000), *captured.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "inr", *captured.LineItems[0].PriceData.Currency)

	var p purchases.Purchase
	require.NoError(t, f.db.First(&p, "id = ?", id).Error)
	require.NotNil(t, p.StripeSessionID)
	assert.Equal(t, "cs_test_1", *p.StripeSessionID)
}

func TestUpdateStatusSeparatesMissingFromFailed(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t)

	code, body := action(t, f.artist, "00000000-0000-0000-0000-000000000000", "confirm")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Purchase not found", body["error"])

	testsupport.FailQueries(t, f.db, "purchases", errors.New("connection reset"))
	code, body = action(t, f.artist, id, "confirm")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotEqual(t, "Purchase not found", body["error"])
}
