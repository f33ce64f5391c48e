package admin

import (
	"net/http"
	"time"

	"folkify/database"
	"folkify/internal/app/http/respond"
	"folkify/internal/apperr"
	"folkify/internal/domain/artists"
	"folkify/internal/domain/artworks"
	"folkify/internal/domain/compliance"
	"folkify/internal/domain/purchases"
	"folkify/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	Provider    string    `json:"auth_provider"`
	IsVerified  *bool     `json:"is_verified,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AdminPurchase struct {
	ID            string `json:"id"`
	ArtworkTitle  string `json:"artwork_title"`
	BuyerEmail    string `json:"buyer_email"`
	ArtistID      string `json:"artist_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

type AdminStats struct {
	TotalUsers        int64             `json:"total_users"`
	UsersPerRole      map[string]int64  `json:"users_per_role"`
	VerifiedArtists   int64             `json:"verified_artists"`
	ActiveArtworks    int64             `json:"active_artworks"`
	PendingReviews    int64             `json:"pending_reviews"`
	PurchasesByStatus map[string]int64  `json:"purchases_by_status"`
	Revenue           map[string]string `json:"revenue"`
	RecentRevenue     map[string]string `json:"recent_revenue"`
}

// GET /admin/dashboard
func AdminDashboard(c *gin.Context) {
	db := database.DB
	stats := AdminStats{
		UsersPerRole:      map[string]int64{},
		PurchasesByStatus: map[string]int64{},
	}

	type groupCount struct {
		Name  string
		Count int64
	}

	var roles []groupCount
	if err := db.Model(&users.User{}).
		Select("role AS name, COUNT(*) AS count").
		Group("role").
		Scan(&roles).Error; err != nil {
		respond.Fail(c, err)
		return
	}
	for _, r := range roles {
		stats.UsersPerRole[r.Name] = r.Count
		stats.TotalUsers += r.Count
	}

	var statuses []groupCount
	if err := db.Model(&purchases.Purchase{}).
		Select("status AS name, COUNT(*) AS count").
		Group("status").
		Scan(&statuses).Error; err != nil {
		respond.Fail(c, err)
		return
	}
	for _, s := range statuses {
		stats.PurchasesByStatus[s.Name] = s.Count
	}

	db.Model(&artists.Artist{}).Where("is_verified = ?", true).Count(&stats.VerifiedArtists)
	db.Model(&artworks.Artwork{}).Where("is_active = ?", true).Count(&stats.ActiveArtworks)
	db.Model(&compliance.Record{}).Where("review_status = ?", compliance.ReviewPending).Count(&stats.PendingReviews)

	var err error
	if stats.Revenue, err = paidRevenue(time.Time{}); err != nil {
		respond.Fail(c, err)
		return
	}
	if stats.RecentRevenue, err = paidRevenue(time.Now().UTC().AddDate(0, 0, -30)); err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"stats": stats})
}

// paidRevenue sums paid purchases per currency, optionally since a point in time.
func paidRevenue(since time.Time) (map[string]string, error) {
	type total struct {
		Currency string
		Total    decimal.Decimal
	}

	q := database.DB.Model(&purchases.Purchase{}).
		Select("currency, COALESCE(SUM(price), 0) AS total").
		Where("payment_status = ?", purchases.PaymentPaid)
	if !since.IsZero() {
		q = q.Where("paid_at >= ?", since)
	}

	var totals []total
	if err := q.Group("currency").Scan(&totals).Error; err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, t := range totals {
		out[t.Currency] = t.Total.StringFixed(2)
	}
	return out, nil
}

// GET /admin/users?role=
func ListAllUsers(c *gin.Context) {
	q := database.DB.Order("created_at DESC")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var list []users.User
	if err := q.Find(&list).Error; err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to load users")
		return
	}

	verified := map[string]bool{}
	var rows []artists.Artist
	if err := database.DB.Select("id", "is_verified").Find(&rows).Error; err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to load users")
		return
	}
	for _, a := range rows {
		verified[a.ID] = a.IsVerified
	}

	adminUsers := make([]AdminUser, 0, len(list))
	for _, u := range list {
		au := AdminUser{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Phone:       u.Phone,
			Role:        u.Role,
			Provider:    u.AuthProvider,
			CreatedAt:   u.CreatedAt,
		}
		if u.IsArtist() {
			v := verified[u.ID]
			au.IsVerified = &v
		}
		adminUsers = append(adminUsers, au)
	}

	respond.OK(c, http.StatusOK, gin.H{"users": adminUsers})
}

// GET /admin/purchases?status=
func ListAllPurchases(c *gin.Context) {
	q := database.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var list []purchases.Purchase
	if err := q.Find(&list).Error; err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to load purchases")
		return
	}

	result := make([]AdminPurchase, 0, len(list))
	for _, p := range list {
		result = append(result, AdminPurchase{
			ID:            p.ID,
			ArtworkTitle:  p.ArtworkTitle,
			BuyerEmail:    p.BuyerEmail,
			ArtistID:      p.ArtistID,
			Amount:        p.Price.StringFixed(2),
			Currency:      p.Currency,
			Status:        string(p.Status),
			PaymentStatus: string(p.PaymentStatus),
			CreatedAt:     p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	respond.OK(c, http.StatusOK, gin.H{"purchases": result})
}

// GET /admin/user/:id
func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		respond.Fail(c, apperr.NotFound(err, "User not found"))
		return
	}

	var bought, sold []purchases.Purchase
	if err := database.DB.Where("buyer_id = ?", userID).Order("created_at DESC").Find(&bought).Error; err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}
	if err := database.DB.Where("artist_id = ?", userID).Order("created_at DESC").Find(&sold).Error; err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}

	body := gin.H{
		"user":      user,
		"purchases": bought,
		"sales":     sold,
	}
	if user.IsArtist() {
		var artist artists.Artist
		if err := database.DB.First(&artist, "id = ?", userID).Error; err == nil {
			body["artist"] = artist
		}
		rec, err := compliance.GetOrDefault(c.Request.Context(), database.DB, userID)
		if err != nil {
			respond.Fail(c, err)
			return
		}
		body["compliance"] = rec
	}

	respond.OK(c, http.StatusOK, body)
}
