// Package field serves the short uuid field descriptors of all models.
package field

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/hook"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/metrics"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/migration"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/web/handler"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/web/middleware/apikey"
)

const (
	// Path is the path of the field collection.
	Path = handler.APIPath + "fields"

	// DefaultMaxGenerate bounds count if the config leaves it unset.
	DefaultMaxGenerate = 100
)

// GenerateResponse is the body of a generate request.
type GenerateResponse struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

// Service implements the field api handler.
type Service struct {
	cfg           *config.Config
	db            *gorm.DB
	fields        map[string]*field.ShortUUIDField
	deconstructed map[string]field.Deconstruction
	names         []string
	maxGenerate   int
}

var _ handler.Service = (*Service)(nil)

// New returns an uninitialised field api handler.
func New() *Service {
	return &Service{}
}

// Init registers the field routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		log.Error().Msg(handler.ErrNilACDFatalLogMsg)

		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.maxGenerate = cfg.Webserver.MaxGenerate

	if s.maxGenerate <= 0 {
		s.maxGenerate = DefaultMaxGenerate
	}

	if err := s.load(models.WithShortUUIDFields()...); err != nil {
		return err
	}

	app.Get(Path, s.List)
	app.Get(Path+"/:name", s.Get)

	if cfg.Webserver.RequireAPIKey {
		app.Post(Path+"/:name/generate", apikey.New(db), s.Generate)
	} else {
		app.Post(Path+"/:name/generate", s.Generate)
	}

	return nil
}

// load collects the descriptors of models.
func (s *Service) load(models ...any) error {
	s.fields = make(map[string]*field.ShortUUIDField)
	s.names = s.names[:0]

	for _, m := range models {
		fields, err := hook.Fields(m, s.db.NamingStrategy)
		if err != nil {
			return errors.Wrap(err, "failed to load short uuid fields")
		}

		for _, f := range fields {
			s.fields[f.Name()] = f
			s.names = append(s.names, f.Name())
		}
	}

	sort.Strings(s.names)

	deconstructed, err := migration.Deconstructions(s.db.NamingStrategy, models...)
	if err != nil {
		return errors.Wrap(err, "failed to deconstruct short uuid fields")
	}

	s.deconstructed = deconstructed

	return nil
}

// List returns the deconstructions of all fields ordered by name.
func (s *Service) List(c fiber.Ctx) error {
	out := make([]field.Deconstruction, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.deconstructed[name])
	}

	return c.JSON(out) //nolint:wrapcheck
}

// Get returns the deconstruction of one field.
func (s *Service) Get(c fiber.Ctx) error {
	d, ok := s.deconstructed[c.Params("name")]
	if !ok {
		return handler.SendError(c, fiber.StatusNotFound, "unknown field")
	}

	return c.JSON(d) //nolint:wrapcheck
}

// Generate returns count fresh default values of one field.
func (s *Service) Generate(c fiber.Ctx) error {
	name := c.Params("name")

	f, ok := s.fields[name]
	if !ok {
		return handler.SendError(c, fiber.StatusNotFound, "unknown field")
	}

	count := 1

	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > s.maxGenerate {
			return handler.SendError(c, fiber.StatusBadRequest,
				"count must be between 1 and "+strconv.Itoa(s.maxGenerate))
		}

		count = n
	}

	values := make([]string, count)
	for i := range values {
		values[i] = f.Default()
	}

	metrics.DefaultsGenerated.WithLabelValues(name).Add(float64(count))

	return c.JSON(GenerateResponse{Field: name, Values: values}) //nolint:wrapcheck
}
