package hook_test

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/hook"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
)

type order struct {
	ID        string `gorm:"primaryKey;size:14" shortuuid:"length:10;prefix:ord_"`
	Reference string `gorm:"size:8" shortuuid:"length:8;alphabet:01"`
	Note      string
}

type narrowColumn struct {
	ID   uint64 `gorm:"primaryKey"`
	Code string `gorm:"size:4" shortuuid:"length:10"`
}

type numericTag struct {
	ID   uint64 `gorm:"primaryKey"`
	Code int    `shortuuid:"length:10"`
}

type unknownKey struct {
	ID   uint64 `gorm:"primaryKey"`
	Code string `shortuuid:"length:10;colour:red"`
}

type unsortedAlphabet struct {
	ID   uint64 `gorm:"primaryKey"`
	Code string `gorm:"size:12;comment:sorted last" shortuuid:"length:12;alphabet:zyx;dont_sort_alphabet"`
}

// setupTestDB creates an in-memory SQLite database with the shortuuid plugin.
func setupTestDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	zerolog.SetGlobalLevel(zerolog.Disabled)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Use(hook.New()))
	require.NoError(t, db.AutoMigrate(models...), "failed to migrate test database")

	return db
}

func TestPluginAssignsDefaults(t *testing.T) {
	db := setupTestDB(t, &order{})

	o := order{Note: "first"}
	require.NoError(t, db.Create(&o).Error)

	assert.True(t, strings.HasPrefix(o.ID, "ord_"))
	assert.Len(t, o.ID, 14)
	assert.Len(t, o.Reference, 8)
	assert.Empty(t, strings.Trim(o.Reference, "01"))

	var stored order
	require.NoError(t, db.First(&stored, "id = ?", o.ID).Error)
	assert.Equal(t, o, stored)
}

func TestPluginKeepsExplicitValues(t *testing.T) {
	db := setupTestDB(t, &order{})

	o := order{ID: "ord_explicit01", Note: "kept"}
	require.NoError(t, db.Create(&o).Error)

	assert.Equal(t, "ord_explicit01", o.ID)
	assert.Len(t, o.Reference, 8)
}

func TestPluginBatchCreate(t *testing.T) {
	db := setupTestDB(t, &order{})

	orders := []order{{Note: "a"}, {Note: "b"}, {ID: "ord_given00000", Note: "c"}}
	require.NoError(t, db.Create(&orders).Error)

	seen := make(map[string]struct{})
	for _, o := range orders {
		assert.True(t, strings.HasPrefix(o.ID, "ord_"))
		seen[o.ID] = struct{}{}
	}

	assert.Len(t, seen, 3)
	assert.Equal(t, "ord_given00000", orders[2].ID)

	pointers := []*order{{Note: "d"}, {Note: "e"}}
	require.NoError(t, db.Create(&pointers).Error)
	assert.NotEqual(t, pointers[0].ID, pointers[1].ID)

	var count int64
	db.Model(&order{}).Count(&count)
	assert.Equal(t, int64(5), count)
}

func TestPluginMapCreate(t *testing.T) {
	db := setupTestDB(t, &order{})

	require.NoError(t, db.Model(&order{}).Create(map[string]any{"note": "single"}).Error)

	var stored order
	require.NoError(t, db.First(&stored, "note = ?", "single").Error)
	assert.True(t, strings.HasPrefix(stored.ID, "ord_"))
	assert.Len(t, stored.ID, 14)
	assert.Len(t, stored.Reference, 8)

	// field name keys count as present
	require.NoError(t, db.Model(&order{}).Create(map[string]any{"ID": "ord_byname0000", "note": "named"}).Error)
	require.NoError(t, db.First(&stored, "note = ?", "named").Error)
	assert.Equal(t, "ord_byname0000", stored.ID)

	rows := []map[string]any{{"note": "a"}, {"note": "b"}, {"id": "ord_given00000", "note": "c"}}
	require.NoError(t, db.Model(&order{}).Create(rows).Error)

	var all []order
	require.NoError(t, db.Where("note IN ?", []string{"a", "b", "c"}).Order("note").Find(&all).Error)
	require.Len(t, all, 3)
	assert.True(t, strings.HasPrefix(all[0].ID, "ord_"))
	assert.True(t, strings.HasPrefix(all[1].ID, "ord_"))
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.Equal(t, "ord_given00000", all[2].ID)
	assert.Equal(t, all[0].ID, rows[0]["id"])
}

func TestPluginMapCreateRejectsValueType(t *testing.T) {
	db := setupTestDB(t, &unsortedAlphabet{})

	err := db.Model(&unsortedAlphabet{}).Create(map[string]int{"id": 1}).Error
	require.ErrorIs(t, err, hook.ErrMapValueType)

	var count int64
	db.Model(&unsortedAlphabet{}).Count(&count)
	assert.Zero(t, count)
}

func TestPluginRejectsNarrowColumn(t *testing.T) {
	db := setupTestDB(t, &narrowColumn{})

	err := db.Create(&narrowColumn{}).Error
	require.ErrorIs(t, err, field.ErrMaxLengthTooSmall)

	var count int64
	db.Model(&narrowColumn{}).Count(&count)
	assert.Zero(t, count)
}

func TestPluginRejectsNonStringField(t *testing.T) {
	db := setupTestDB(t, &numericTag{})

	err := db.Create(&numericTag{}).Error
	require.ErrorIs(t, err, hook.ErrNotString)
}

func TestPluginRejectsUnknownTagKey(t *testing.T) {
	db := setupTestDB(t, &unknownKey{})

	err := db.Create(&unknownKey{}).Error
	require.ErrorIs(t, err, field.ErrUnknownOption)
}

func TestFields(t *testing.T) {
	fields, err := hook.Fields(&order{}, schema.NamingStrategy{})
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, "orders.id", fields[0].Name())
	assert.Equal(t, 10, fields[0].Length())
	assert.Equal(t, "ord_", fields[0].Prefix())
	assert.Equal(t, 14, fields[0].MaxLength())
	assert.Equal(t, true, fields[0].Deconstruct().Kwargs[field.KeyPrimaryKey])

	assert.Equal(t, "orders.reference", fields[1].Name())
	alphabet, ok := fields[1].Alphabet()
	assert.True(t, ok)
	assert.Equal(t, "01", alphabet)

	fields, err = hook.Fields(&unsortedAlphabet{}, schema.NamingStrategy{})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.True(t, fields[0].DontSortAlphabet())
	assert.Equal(t, "sorted last", fields[0].Deconstruct().Kwargs[field.KeyComment])
	assert.Empty(t, strings.Trim(fields[0].Default(), "xyz"))

	_, err = hook.Fields(&numericTag{}, schema.NamingStrategy{})
	require.ErrorIs(t, err, hook.ErrNotString)
}
