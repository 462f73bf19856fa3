package field

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Keyword names used in a Deconstruction.
const (
	KeyMaxLength        = "max_length"
	KeyDefault          = "default"
	KeyNull             = "null"
	KeyUnique           = "unique"
	KeyPrimaryKey       = "primary_key"
	KeyIndex            = "db_index"
	KeyComment          = "db_comment"
	KeyAlphabet         = "alphabet"
	KeyLength           = "length"
	KeyPrefix           = "prefix"
	KeyDontSortAlphabet = "dont_sort_alphabet"
)

// CallableMarker stands in for a default producer once a Deconstruction was serialized.
const CallableMarker = "<callable>"

// Deconstruction is the serialized form of a field: its name, the fully
// qualified type path and the arguments needed to construct it again.
type Deconstruction struct {
	Name   string         `json:"name"`
	Path   string         `json:"path"`
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
}

// Keys returns the kwargs keys in sorted order.
func (d Deconstruction) Keys() []string {
	keys := make([]string, 0, len(d.Kwargs))
	for k := range d.Kwargs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ShortUUIDFieldPath is the type path written by ShortUUIDField.Deconstruct.
var ShortUUIDFieldPath = typePath(&ShortUUIDField{}) //nolint:gochecknoglobals

// typePath returns the import path and type name of v.
func typePath(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.PkgPath() + "." + t.Name()
}

// FromDeconstruction builds a ShortUUIDField from d. Kwargs may carry loosely
// typed values, e.g. float64 lengths after a JSON round trip.
func FromDeconstruction(d Deconstruction) (*ShortUUIDField, error) {
	if d.Path != "" && d.Path != ShortUUIDFieldPath {
		return nil, errors.Wrapf(ErrPathMismatch, "got %q", d.Path)
	}

	opts := make([]Option, 0, len(d.Kwargs))

	for _, key := range d.Keys() {
		opt, err := kwargOption(key, d.Kwargs[key])
		if err != nil {
			return nil, errors.Wrapf(err, "field %q: kwarg %q", d.Name, key)
		}

		if opt != nil {
			opts = append(opts, opt)
		}
	}

	return ShortUUID(d.Name, opts...)
}

// kwargOption converts one kwarg into an Option. A nil Option means the kwarg keeps its default.
func kwargOption(key string, value any) (Option, error) { //nolint:cyclop
	switch key {
	case KeyLength:
		n, err := cast.ToIntE(value)
		return WithLength(n), err //nolint:wrapcheck
	case KeyMaxLength:
		n, err := cast.ToIntE(value)
		return WithMaxLength(n), err //nolint:wrapcheck
	case KeyPrefix:
		s, err := cast.ToStringE(value)
		return WithPrefix(s), err //nolint:wrapcheck
	case KeyAlphabet:
		if value == nil {
			return nil, nil
		}

		s, err := cast.ToStringE(value)

		return WithAlphabet(s), err //nolint:wrapcheck
	case KeyDontSortAlphabet:
		b, err := cast.ToBoolE(value)
		return WithDontSortAlphabet(b), err //nolint:wrapcheck
	case KeyComment:
		s, err := cast.ToStringE(value)
		return WithComment(s), err //nolint:wrapcheck
	case KeyNull, KeyUnique, KeyPrimaryKey, KeyIndex:
		b, err := cast.ToBoolE(value)
		if err != nil || !b {
			return nil, err //nolint:wrapcheck
		}

		return flagOption(key), nil
	case KeyDefault:
		return defaultOption(value)
	default:
		return nil, ErrUnknownOption
	}
}

func flagOption(key string) Option {
	switch key {
	case KeyNull:
		return WithNull()
	case KeyUnique:
		return WithUnique()
	case KeyPrimaryKey:
		return WithPrimaryKey()
	default:
		return WithIndex()
	}
}

// defaultOption restores a default producer. A serialized producer can not be
// restored, the field then falls back to its generated default.
func defaultOption(value any) (Option, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case func() string:
		return WithDefault(v), nil
	case string:
		if v == CallableMarker {
			return nil, nil
		}

		return WithDefault(func() string { return v }), nil
	default:
		return nil, errors.Errorf("unsupported default of type %T", value)
	}
}
