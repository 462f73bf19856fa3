package field_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
)

func TestNewCharField(t *testing.T) {
	f, err := field.NewCharField("name", field.CharConfig{MaxLength: 5})
	require.NoError(t, err)
	assert.Equal(t, "name", f.Name())
	assert.Equal(t, 5, f.MaxLength())
	assert.False(t, f.HasDefault())
	assert.Empty(t, f.Default())

	_, err = field.NewCharField("name", field.CharConfig{})
	require.ErrorIs(t, err, field.ErrInvalidMaxLength)

	_, err = field.NewCharField("", field.CharConfig{MaxLength: 5})
	require.ErrorIs(t, err, field.ErrNameEmpty)
}

func TestCharFieldValidate(t *testing.T) {
	f, err := field.NewCharField("code", field.CharConfig{MaxLength: 4})
	require.NoError(t, err)

	require.NoError(t, f.Validate(""))
	require.NoError(t, f.Validate("abcd"))
	require.NoError(t, f.Validate("äöüß"))

	err = f.Validate("abcde")
	require.ErrorIs(t, err, field.ErrValueTooLong)

	var verr *field.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "code", verr.Field)
	assert.Equal(t, "abcde", verr.Value)
	assert.True(t, strings.Contains(err.Error(), `"code"`))
}

func TestCharFieldDeconstruct(t *testing.T) {
	f, err := field.NewCharField("code", field.CharConfig{MaxLength: 4})
	require.NoError(t, err)

	d := f.Deconstruct()
	assert.Equal(t, "code", d.Name)
	assert.True(t, strings.HasSuffix(d.Path, "/internal/field.CharField"))
	assert.Equal(t, map[string]any{field.KeyMaxLength: 4}, d.Kwargs)

	f, err = field.NewCharField("code", field.CharConfig{
		MaxLength:  4,
		Default:    func() string { return "x" },
		Null:       true,
		Unique:     true,
		PrimaryKey: true,
		Index:      true,
		Comment:    "c",
	})
	require.NoError(t, err)

	d = f.Deconstruct()
	assert.Equal(t, []string{"db_comment", "db_index", "default", "max_length", "null", "primary_key", "unique"}, d.Keys())
	assert.Equal(t, "x", f.Default())
}
