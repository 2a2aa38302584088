package database

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" database/sql driver the gorm sqlite
	// config below refers to by name.
	_ "modernc.org/sqlite"

	"peerconnect/internal/domain"
)

// Connect opens Postgres when the DSN looks like one, otherwise a local
// SQLite file for development and tests.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Info("using SQLite for local development", zap.String("dsn", dsn))
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates/updates the schema for every persisted entity, plus the
// local cache table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Course{},
		&domain.HelpRequest{},
		&domain.Booking{},
		&domain.Message{},
		&domain.Notification{},
		&domain.AvailabilitySlot{},
		&domain.Review{},
		&domain.Report{},
	)
}
