package routes

import (
	"net/http"

	"folkify/config"
	adminapi "folkify/internal/api/admin"
	artistsapi "folkify/internal/api/artists"
	artworksapi "folkify/internal/api/artworks"
	authapi "folkify/internal/api/auth"
	complianceapi "folkify/internal/api/compliance"
	purchasesapi "folkify/internal/api/purchases"
	stripewebhooks "folkify/internal/api/stripewebhook"
	"folkify/internal/api/uploads"
	"folkify/internal/api/users"
	"folkify/internal/app/http/middleware"
	domainusers "folkify/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine) {
	// the webhook verifies the raw body, so it skips sanitizing
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if config.GCS_BUCKET == "" && config.UPLOAD_DIR != "" {
		r.Static("/uploads", config.UPLOAD_DIR)
	}

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware(), middleware.OptionalAuth())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/logout", authapi.Logout)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/artworks", artworksapi.ListArtworks)
	public.GET("/artworks/:id", artworksapi.GetArtwork)
	public.GET("/artists/:id", artistsapi.GetArtist)
	public.GET("/artists/:id/artworks", artistsapi.ListArtistArtworks)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.POST("/artworks/:id/like", artworksapi.ToggleLike)

	auth.POST("/purchases", purchasesapi.CreatePurchase)
	auth.GET("/purchases", purchasesapi.ListPurchases)
	auth.GET("/purchases/:id", purchasesapi.GetPurchase)
	auth.POST("/purchases/:id/checkout", purchasesapi.StartCheckout)

	// Artists
	artist := auth.Group("/")
	artist.Use(middleware.RequireRole(domainusers.RoleArtist))
	artist.PUT("/artists/me", artistsapi.UpdateMyProfile)
	artist.POST("/uploads/images", uploads.UploadImage)

	artist.POST("/artworks", artworksapi.CreateArtwork)
	artist.PUT("/artworks/:id", artworksapi.UpdateArtwork)
	artist.DELETE("/artworks/:id", artworksapi.DeleteArtwork)
	artist.POST("/artworks/:id/restore", artworksapi.RestoreArtwork)
	artist.DELETE("/artworks/:id/permanent", artworksapi.DeleteArtworkPermanently)

	artist.GET("/compliance", complianceapi.GetCompliance)
	artist.PUT("/compliance", complianceapi.UpdateCompliance)
	artist.POST("/compliance/documents/:field", complianceapi.UploadDocument)
	artist.POST("/compliance/submit", complianceapi.SubmitForReview)

	artist.POST("/purchases/:id/status", purchasesapi.UpdateStatus)
	artist.POST("/purchases/:id/payment", purchasesapi.MarkPaid)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(domainusers.RoleAdmin))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/purchases", adminapi.ListAllPurchases)
	admin.GET("/user/:id", adminapi.GetUserDetails)
}
