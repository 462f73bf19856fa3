// Package apikey issues and verifies user API keys.
package apikey

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/shortuuid"
)

var (
	// ErrAPIKeyNotFound is returned when a key does not exist.
	ErrAPIKeyNotFound = errors.New("api key not found")
	// ErrAPIKeyInvalid is returned when a secret does not match its key.
	ErrAPIKeyInvalid = errors.New("api key secret is invalid")
	// ErrAPIKeyNameEmpty is returned when issuing a key without a name.
	ErrAPIKeyNameEmpty = errors.New("api key name cannot be empty")
	// ErrUserNotFound is returned when issuing a key for an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Issue creates a key for userID and returns it with its plaintext secret.
// The secret is not stored and can not be recovered later.
func Issue(db *gorm.DB, userID, name string) (*models.APIKey, string, error) {
	if db == nil {
		return nil, "", ErrDBNil
	}

	if name == "" {
		return nil, "", ErrAPIKeyNameEmpty
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, "", err
	}

	if count == 0 {
		return nil, "", ErrUserNotFound
	}

	gen, err := shortuuid.New()
	if err != nil {
		return nil, "", err
	}

	secret := gen.Random(models.APIKeySecretLength)

	key := &models.APIKey{
		UserID:     userID,
		Name:       name,
		SecretHash: models.HashPassword(secret),
	}

	// the ID is assigned by the shortuuid plugin
	if err = db.Create(key).Error; err != nil {
		return nil, "", err
	}

	return key, secret, nil
}

// Verify checks secret against the key id and records its use.
func Verify(db *gorm.DB, id, secret string) (*models.APIKey, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var key models.APIKey

	result := db.First(&key, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAPIKeyNotFound
		}

		return nil, result.Error
	}

	if !key.VerifySecret(secret) {
		return nil, ErrAPIKeyInvalid
	}

	now := time.Now()
	if err := db.Model(&key).Update("last_used_at", now).Error; err != nil {
		return nil, err
	}

	return &key, nil
}

// ListByUser returns the keys of a user, newest first.
func ListByUser(db *gorm.DB, userID string) ([]models.APIKey, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var keys []models.APIKey

	result := db.Where("user_id = ?", userID).Order("created_at desc").Find(&keys)
	if result.Error != nil {
		return nil, result.Error
	}

	return keys, nil
}
