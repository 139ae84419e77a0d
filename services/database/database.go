package database

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"obstacle-detection/config"
)

var DB *gorm.DB
var DBerr error

func DBConnect(cfg config.DatabaseConfig) *gorm.DB {
	// Try several times before giving up
	for i := 0; i < max(cfg.Retries, 1); i++ {
		DB, DBerr = gorm.Open(postgres.Open(cfg.Dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if DBerr == nil {
			log.Info().Msg("Connected to database successfully.")
			return DB
		}
		log.Warn().Err(DBerr).Int("attempt", i+1).Msg("DB connection failed; retrying...")
		time.Sleep(time.Duration(cfg.RetryDelay * float32(time.Second)))
	}

	// Still no success → just warn, do not crash
	sentry.CaptureException(DBerr)
	log.Warn().Msg("Proceeding without DB connection, boundaries will not be persisted.")
	DB = nil
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// Init connects and migrates the schema. It returns nil when the database is unreachable.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db := DBConnect(cfg)
	if db == nil {
		return nil, nil
	}
	if err := db.AutoMigrate(&BoundaryRecord{}); err != nil {
		return nil, fmt.Errorf("migrating boundaries: %w", err)
	}
	return db, nil
}
