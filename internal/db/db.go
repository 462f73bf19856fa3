// Package db opens the gorm connection for the configured engine.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/dsn"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/hook"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
)

// Dialector returns the gorm dialector of the configured engine.
func Dialector(cfg config.DB) (gorm.Dialector, error) {
	switch cfg.GormEngine {
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.SQLite(cfg)), nil
	case config.EngineMySQL:
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	default:
		return nil, errors.Wrapf(config.ErrUnknownGormEngine, "%q", cfg.GormEngine)
	}
}

// Open connects to the database and registers the short uuid plugin.
func Open(cfg config.DB) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", dialector.Name())
	}

	if err = conn.Use(hook.New()); err != nil {
		return nil, errors.Wrap(err, "failed to register short uuid plugin")
	}

	log.Debug().Str("engine", dialector.Name()).Msg("database connected")

	return conn, nil
}

// Migrate creates or updates the tables of every model.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
