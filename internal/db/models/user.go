package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents a user account in the system.
// Its public identifier is a prefixed short uuid assigned on create.
type User struct {
	// ID is the public identifier for the user, e.g. "usr_7bKq2xWm9P".
	ID string `gorm:"primaryKey;size:14" shortuuid:"length:10;prefix:usr_"`
	// Active indicates whether the user account is active.
	Active bool
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// APIKeys are the keys issued to this user.
	APIKeys []APIKey `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext secret using the Argon2id algorithm.
// It is used for user passwords and API key secrets alike.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	return verifyHash(password, u.Password)
}

// verifyHash compares plaintext against an Argon2id hash in constant time.
func verifyHash(plaintext, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(plaintext, hash)
	if err != nil {
		log.Error().Msgf("failed to verify hash: %v", err)
		return false
	}

	return match
}
