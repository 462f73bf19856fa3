package models

import "time"

// APIKeySecretLength is the number of symbols of a generated API key secret.
const APIKeySecretLength = 32

// APIKey is a credential issued to a user.
// The ID is public, only the Argon2id hash of the secret is stored.
type APIKey struct {
	// ID is the public key identifier, e.g. "key_Fq8ZtV2mKc4xR7wN".
	ID string `gorm:"primaryKey;size:20" shortuuid:"length:16;prefix:key_"`
	// UserID references the owning user.
	UserID string `gorm:"size:14;not null;index"`
	// Name is a label chosen by the user.
	Name string `gorm:"size:100;not null"`
	// SecretHash is the Argon2id hash of the key secret.
	SecretHash string `gorm:"size:255;not null"`
	// LastUsedAt is set on every successful verification.
	LastUsedAt *time.Time
	// CreatedAt is the timestamp when the key was issued (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the APIKey model.
func (APIKey) TableName() string {
	return "api_keys"
}

// VerifySecret reports whether secret matches the stored hash.
func (k *APIKey) VerifySecret(secret string) bool {
	return verifyHash(secret, k.SecretHash)
}
