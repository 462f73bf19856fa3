// Package apikey provides a fiber middleware authenticating api keys.
package apikey

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	apikeyctrl "github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/controller/apikey"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/web/handler"
)

const (
	// Header carries the credential as "<key id>:<secret>".
	Header = "X-API-Key"

	// LocalsKey is the fiber.Locals key of the authenticated *models.APIKey.
	LocalsKey = "APIKey"
)

// New returns a middleware rejecting requests without a valid api key.
func New(db *gorm.DB) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, secret, ok := strings.Cut(c.Get(Header), ":")
		if !ok || id == "" || secret == "" {
			return handler.SendError(c, fiber.StatusUnauthorized, "missing api key")
		}

		key, err := apikeyctrl.Verify(db, id, secret)

		switch {
		case errors.Is(err, apikeyctrl.ErrAPIKeyNotFound), errors.Is(err, apikeyctrl.ErrAPIKeyInvalid):
			log.Debug().Str("key", id).Msg("rejected api key")

			return handler.SendError(c, fiber.StatusUnauthorized, "invalid api key")
		case err != nil:
			log.Error().Err(err).Str("key", id).Msg("failed to verify api key")

			return handler.SendError(c, fiber.StatusInternalServerError, "internal error")
		}

		c.Locals(LocalsKey, key)

		return c.Next()
	}
}
