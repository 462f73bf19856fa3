package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/config"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/controller/fieldstate"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Title: "test",
		DB: config.DB{
			GormEngine: config.EngineSQLite,
			Name:       filepath.Join(t.TempDir(), "daemon.db"),
		},
		Webserver: config.Webserver{Port: 8080, URL: "http://localhost:8080"},
	}
}

func TestNewNilConfig(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(cfg)
	require.NoError(t, err)

	states, err := fieldstate.GetAll(d.DB())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "api_keys.id", states[0].Name)
	assert.Equal(t, "users.id", states[1].Name)

	var admin models.User
	require.NoError(t, d.DB().Where("username = ?", adminUsername).First(&admin).Error)
	assert.Regexp(t, `^usr_.{10}$`, admin.ID)
	assert.True(t, admin.VerifyPassword(adminPassword))
}

func TestSeedRunsOnce(t *testing.T) {
	cfg := testConfig(t)

	conn, err := Prepare(cfg)
	require.NoError(t, err)

	seed(cfg, conn)
	seed(cfg, conn)

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPrepareIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	_, err := Prepare(cfg)
	require.NoError(t, err)

	conn, err := Prepare(cfg)
	require.NoError(t, err)

	states, err := fieldstate.GetAll(conn)
	require.NoError(t, err)
	assert.Len(t, states, 2)
}
