package database

import (
	"folkify/internal/domain/artists"
	"folkify/internal/domain/artworks"
	"folkify/internal/domain/compliance"
	"folkify/internal/domain/purchases"
	"folkify/internal/domain/users"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB connects to Postgres, migrates the schema and stores the handle in DB.
func InitDB(dsn string) {
	if dsn == "" {
		log.Fatal().Msg("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	DB = db
	log.Info().Msg("connected and migrated")
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// accounts
		&users.User{},
		&users.ResetToken{},
		&artists.Artist{},

		// catalogue
		&artworks.Artwork{},
		&artworks.Like{},

		// export readiness
		&compliance.Record{},

		// orders
		&purchases.Purchase{},
	)
}
