package apikey

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/hook"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database with the shortuuid plugin.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Use(hook.New()))
	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{Username: "alice", Email: "alice@example.com", Active: true}
	require.NoError(t, db.Create(user).Error)

	return user
}

func TestIssue(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		userID        string
		keyName       string
		expectedError error
	}{
		{
			name:          "nil database",
			userID:        user.ID,
			keyName:       "ci",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			userID:        user.ID,
			expectedError: ErrAPIKeyNameEmpty,
		},
		{
			name:          "unknown user",
			dbParam:       db,
			userID:        "usr_0000000000",
			keyName:       "ci",
			expectedError: ErrUserNotFound,
		},
		{
			name:    "successful issue",
			dbParam: db,
			userID:  user.ID,
			keyName: "ci",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, secret, err := Issue(tc.dbParam, tc.userID, tc.keyName)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, key)
				assert.Empty(t, secret)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key.ID, "key_"))
			assert.Len(t, key.ID, 20)
			assert.Len(t, secret, models.APIKeySecretLength)
			assert.NotContains(t, key.SecretHash, secret)
		})
	}
}

func TestVerify(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	key, secret, err := Issue(db, user.ID, "deploy")
	require.NoError(t, err)

	_, err = Verify(nil, key.ID, secret)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Verify(db, "key_unknown", secret)
	require.ErrorIs(t, err, ErrAPIKeyNotFound)

	_, err = Verify(db, key.ID, "wrong")
	require.ErrorIs(t, err, ErrAPIKeyInvalid)

	verified, err := Verify(db, key.ID, secret)
	require.NoError(t, err)
	assert.Equal(t, key.ID, verified.ID)

	var stored models.APIKey
	require.NoError(t, db.First(&stored, "id = ?", key.ID).Error)
	assert.NotNil(t, stored.LastUsedAt)
}

func TestListByUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	_, err := ListByUser(nil, user.ID)
	require.ErrorIs(t, err, ErrDBNil)

	for _, name := range []string{"a", "b", "c"} {
		_, _, err = Issue(db, user.ID, name)
		require.NoError(t, err)
	}

	keys, err := ListByUser(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	ids := make(map[string]struct{})
	for _, k := range keys {
		ids[k.ID] = struct{}{}
	}

	assert.Len(t, ids, 3)
}
