// Package daemon wires database, field state sync and web service together.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/migration"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/web"
)

// ErrConfigNil is returned by New without config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start runs the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	errC := make(chan error, 1)

	go func() {
		errC <- d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	}()

	d.webService.WaitShutdown()

	return <-errC
}

// DB returns the database connection of the daemon.
func (d *Daemon) DB() *gorm.DB {
	return d.db
}

// New opens the database, migrates it, records the field states and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	conn, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}

	seed(cfg, conn)

	webService, err := web.New(cfg, conn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         conn,
		webService: webService,
	}, nil
}

// Prepare opens and migrates the database and applies pending field state changes.
func Prepare(cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = db.Migrate(conn); err != nil {
		return nil, err //nolint:wrapcheck
	}

	changes, err := migration.Plan(conn, conn.NamingStrategy, models.WithShortUUIDFields()...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to plan field state migration")
	}

	if err = migration.Apply(conn, changes); err != nil {
		return nil, errors.Wrap(err, "failed to apply field state migration")
	}

	log.Info().Int("changes", len(changes)).Msg("field states up to date")

	return conn, nil
}
