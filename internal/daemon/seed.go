package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
)

const (
	adminUsername = "admin"
	adminPassword = "changeme"
)

// seed creates the admin user if the user table is empty.
// Its id is assigned by the short uuid plugin.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return
	}

	if count > 0 {
		return
	}

	admin := &models.User{
		Username: adminUsername,
		Email:    adminUsername + "@localhost",
		Password: models.HashPassword(adminPassword),
		Active:   true,
	}

	if err := db.Create(admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")

		return
	}

	log.Warn().Str("id", admin.ID).Msgf("created user %q with default password, change it", adminUsername)
}
