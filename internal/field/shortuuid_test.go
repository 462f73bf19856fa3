package field_test

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/shortuuid"
)

func TestShortUUID(t *testing.T) {
	testCases := []struct {
		name              string
		opts              []field.Option
		expectedLength    int
		expectedPrefix    string
		expectedMaxLength int
		expectedError     error
	}{
		{
			name:              "defaults",
			expectedLength:    22,
			expectedMaxLength: 22,
		},
		{
			name:              "length and prefix",
			opts:              []field.Option{field.WithLength(10), field.WithPrefix("usr_")},
			expectedLength:    10,
			expectedPrefix:    "usr_",
			expectedMaxLength: 14,
		},
		{
			name:              "prefix counted in characters",
			opts:              []field.Option{field.WithLength(6), field.WithPrefix("ü_")},
			expectedLength:    6,
			expectedPrefix:    "ü_",
			expectedMaxLength: 8,
		},
		{
			name:              "zero length with prefix",
			opts:              []field.Option{field.WithLength(0), field.WithPrefix("fixed")},
			expectedLength:    0,
			expectedPrefix:    "fixed",
			expectedMaxLength: 5,
		},
		{
			name:              "explicit max length wider than needed",
			opts:              []field.Option{field.WithLength(8), field.WithMaxLength(64)},
			expectedLength:    8,
			expectedMaxLength: 64,
		},
		{
			name:          "explicit max length too small",
			opts:          []field.Option{field.WithLength(10), field.WithPrefix("usr_"), field.WithMaxLength(10)},
			expectedError: field.ErrMaxLengthTooSmall,
		},
		{
			name:          "negative length",
			opts:          []field.Option{field.WithLength(-1)},
			expectedError: field.ErrInvalidLength,
		},
		{
			name:          "zero length without prefix has no storage",
			opts:          []field.Option{field.WithLength(0)},
			expectedError: field.ErrInvalidMaxLength,
		},
		{
			name:          "negative max length",
			opts:          []field.Option{field.WithMaxLength(-3)},
			expectedError: field.ErrInvalidMaxLength,
		},
		{
			name:          "single symbol alphabet",
			opts:          []field.Option{field.WithAlphabet("aaa")},
			expectedError: shortuuid.ErrAlphabetTooShort,
		},
		{
			name:          "empty alphabet",
			opts:          []field.Option{field.WithAlphabet("")},
			expectedError: shortuuid.ErrAlphabetTooShort,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := field.ShortUUID("id", tc.opts...)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, f)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "id", f.Name())
			assert.Equal(t, tc.expectedLength, f.Length())
			assert.Equal(t, tc.expectedPrefix, f.Prefix())
			assert.Equal(t, tc.expectedMaxLength, f.MaxLength())
			assert.True(t, f.HasDefault())
		})
	}
}

func TestShortUUIDEmptyName(t *testing.T) {
	_, err := field.ShortUUID("")
	require.ErrorIs(t, err, field.ErrNameEmpty)
}

func TestShortUUIDGenerate(t *testing.T) {
	for _, tc := range []struct {
		length int
		prefix string
	}{
		{0, "p"},
		{1, ""},
		{8, "key_"},
		{22, ""},
		{40, "äöü-"},
	} {
		f, err := field.ShortUUID("id", field.WithLength(tc.length), field.WithPrefix(tc.prefix))
		require.NoError(t, err)

		for range 20 {
			value := f.Default()
			assert.True(t, strings.HasPrefix(value, tc.prefix))
			assert.Equal(t, utf8.RuneCountInString(tc.prefix)+tc.length, utf8.RuneCountInString(value))
			assert.NoError(t, f.Validate(value))
		}
	}
}

func TestShortUUIDUserPrefix(t *testing.T) {
	f, err := field.ShortUUID("id", field.WithLength(10), field.WithPrefix("usr_"))
	require.NoError(t, err)
	assert.Equal(t, 14, f.MaxLength())

	value := f.Default()
	require.Len(t, value, 14)
	assert.Equal(t, "usr_", value[:4])

	for _, r := range value[4:] {
		assert.True(t, strings.ContainsRune(shortuuid.DefaultAlphabet, r), "unexpected symbol %q", r)
	}
}

func TestShortUUIDBinaryAlphabet(t *testing.T) {
	f, err := field.ShortUUID("bits", field.WithAlphabet("01"), field.WithLength(8))
	require.NoError(t, err)

	for range 100 {
		value := f.Default()
		assert.Len(t, value, 8)
		assert.Empty(t, strings.Trim(value, "01"), value)
	}
}

func TestShortUUIDDefaultsDiffer(t *testing.T) {
	f, err := field.ShortUUID("id", field.WithLength(8), field.WithAlphabet("0123456789abcdef"))
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for range 100 {
		seen[f.Default()] = struct{}{}
	}

	assert.Len(t, seen, 100)
}

func TestShortUUIDCustomDefault(t *testing.T) {
	f, err := field.ShortUUID("id", field.WithDefault(func() string { return "fixed" }))
	require.NoError(t, err)

	assert.Equal(t, "fixed", f.Default())
	assert.Len(t, f.Generate(), 22)

	d := f.Deconstruct()
	assert.Contains(t, d.Kwargs, field.KeyDefault)
}

func TestShortUUIDDeconstruct(t *testing.T) {
	f, err := field.ShortUUID("public_id",
		field.WithLength(10),
		field.WithPrefix("usr_"),
		field.WithAlphabet("abcdef0123456789"),
		field.WithDontSortAlphabet(true),
		field.WithUnique(),
		field.WithComment("public id"),
	)
	require.NoError(t, err)

	d := f.Deconstruct()
	assert.Equal(t, "public_id", d.Name)
	assert.Equal(t, field.ShortUUIDFieldPath, d.Path)
	assert.True(t, strings.HasSuffix(d.Path, "/internal/field.ShortUUIDField"))
	assert.Empty(t, d.Args)
	assert.Equal(t, map[string]any{
		field.KeyMaxLength:        14,
		field.KeyUnique:           true,
		field.KeyComment:          "public id",
		field.KeyAlphabet:         "abcdef0123456789",
		field.KeyLength:           10,
		field.KeyPrefix:           "usr_",
		field.KeyDontSortAlphabet: true,
	}, d.Kwargs)
}

func TestShortUUIDDeconstructDefaults(t *testing.T) {
	f, err := field.ShortUUID("id")
	require.NoError(t, err)

	d := f.Deconstruct()
	assert.Equal(t, map[string]any{
		field.KeyMaxLength:        22,
		field.KeyAlphabet:         nil,
		field.KeyLength:           22,
		field.KeyPrefix:           "",
		field.KeyDontSortAlphabet: false,
	}, d.Kwargs)
}

func TestFromDeconstruction(t *testing.T) {
	testCases := []struct {
		name string
		opts []field.Option
	}{
		{name: "defaults"},
		{name: "length prefix alphabet", opts: []field.Option{
			field.WithLength(12), field.WithPrefix("ord_"), field.WithAlphabet("ABCDEFGH"),
		}},
		{name: "dont sort alphabet", opts: []field.Option{
			field.WithAlphabet("zyx"), field.WithDontSortAlphabet(true),
		}},
		{name: "base options", opts: []field.Option{
			field.WithPrimaryKey(), field.WithIndex(), field.WithNull(), field.WithMaxLength(40),
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			original, err := field.ShortUUID("id", tc.opts...)
			require.NoError(t, err)

			rebuilt, err := field.FromDeconstruction(original.Deconstruct())
			require.NoError(t, err)

			assert.Equal(t, original.Length(), rebuilt.Length())
			assert.Equal(t, original.Prefix(), rebuilt.Prefix())
			assert.Equal(t, original.MaxLength(), rebuilt.MaxLength())
			assert.Equal(t, original.DontSortAlphabet(), rebuilt.DontSortAlphabet())

			wantAlphabet, wantSet := original.Alphabet()
			gotAlphabet, gotSet := rebuilt.Alphabet()
			assert.Equal(t, wantSet, gotSet)
			assert.Equal(t, wantAlphabet, gotAlphabet)

			assert.Equal(t, original.Deconstruct(), rebuilt.Deconstruct())
		})
	}
}

func TestFromDeconstructionJSON(t *testing.T) {
	original, err := field.ShortUUID("id", field.WithLength(10), field.WithPrefix("usr_"), field.WithAlphabet("01"))
	require.NoError(t, err)

	raw, err := json.Marshal(original.Deconstruct())
	require.NoError(t, err)

	var d field.Deconstruction
	require.NoError(t, json.Unmarshal(raw, &d))

	// numbers come back as float64
	assert.IsType(t, float64(0), d.Kwargs[field.KeyLength])

	rebuilt, err := field.FromDeconstruction(d)
	require.NoError(t, err)
	assert.Equal(t, original.Deconstruct(), rebuilt.Deconstruct())
}

func TestFromDeconstructionErrors(t *testing.T) {
	testCases := []struct {
		name          string
		d             field.Deconstruction
		expectedError error
	}{
		{
			name:          "other field type",
			d:             field.Deconstruction{Name: "id", Path: "example.com/other.Field"},
			expectedError: field.ErrPathMismatch,
		},
		{
			name:          "unknown kwarg",
			d:             field.Deconstruction{Name: "id", Kwargs: map[string]any{"choices": []string{"a"}}},
			expectedError: field.ErrUnknownOption,
		},
		{
			name:          "max length too small",
			d:             field.Deconstruction{Name: "id", Kwargs: map[string]any{"length": 10, "max_length": 4}},
			expectedError: field.ErrMaxLengthTooSmall,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := field.FromDeconstruction(tc.d)
			require.ErrorIs(t, err, tc.expectedError)
			assert.Nil(t, f)
		})
	}

	_, err := field.FromDeconstruction(field.Deconstruction{Name: "id", Kwargs: map[string]any{"length": "ten"}})
	require.Error(t, err)
}

func TestFromDeconstructionDefault(t *testing.T) {
	f, err := field.FromDeconstruction(field.Deconstruction{
		Name:   "id",
		Kwargs: map[string]any{field.KeyDefault: field.CallableMarker},
	})
	require.NoError(t, err)
	assert.Len(t, f.Default(), 22)
	assert.NotContains(t, f.Deconstruct().Kwargs, field.KeyDefault)

	f, err = field.FromDeconstruction(field.Deconstruction{
		Name:   "id",
		Kwargs: map[string]any{field.KeyDefault: "static"},
	})
	require.NoError(t, err)
	assert.Equal(t, "static", f.Default())
}
