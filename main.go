package main

import (
	"context"
	"os"
	"time"

	"folkify/config"
	"folkify/database"
	routes "folkify/internal/app/http"
	"folkify/internal/infra/imagehost"
	"folkify/internal/infra/logger"
	"folkify/internal/infra/metrics"
	"folkify/internal/infra/payments"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	logger.Init(config.LOG_LEVEL, config.LOG_FORMAT, os.Stdout)
	database.InitDB(config.DB_URL)
	metrics.Register()

	host, err := newImageHost(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("image host init failed")
	}
	imagehost.Default = host
	payments.Default = payments.NewClient(config.STRIPE_SECRET_KEY, config.APP_URL, config.STRIPE_CURRENCY)

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	// CORS goes in before the routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	log.Info().Str("port", config.PORT).Msg("folkify api listening")
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newImageHost picks the bucket when one is configured and local disk otherwise.
func newImageHost(ctx context.Context) (imagehost.Host, error) {
	if config.GCS_BUCKET != "" {
		return imagehost.NewGCS(ctx, config.GCS_BUCKET, config.GCS_CREDENTIALS_FILE, config.IMAGE_CDN_URL)
	}
	base := config.IMAGE_CDN_URL
	if base == "" {
		base = "http://localhost:" + config.PORT + "/uploads"
	}
	return imagehost.NewDisk(config.UPLOAD_DIR, base)
}
