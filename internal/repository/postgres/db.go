package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nkripta/nkripta/internal/config"
	"github.com/nkripta/nkripta/internal/domain/organization"
	"github.com/nkripta/nkripta/internal/domain/profile"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
)

// NewDB opens the Postgres connection and optionally runs schema
// auto-migration. TranslateError is enabled so driver-specific failures
// surface as gorm sentinel errors.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	if cfg.Postgres.AutoMigrate {
		log.Infow("running schema auto-migration")
		if err := db.AutoMigrate(
			&organization.Organization{},
			&profile.Profile{},
		); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Schema migration failed").
				Mark(ierr.ErrDatabase)
		}
	}

	return db, nil
}
