package hook

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"gorm.io/gorm/schema"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
)

// TagName is the struct tag holding short uuid options.
const TagName = "shortuuid"

// Tag setting keys, upper cased by schema.ParseTagSetting.
const (
	tagLength           = "LENGTH"
	tagPrefix           = "PREFIX"
	tagAlphabet         = "ALPHABET"
	tagDontSortAlphabet = "DONT_SORT_ALPHABET"
)

// FieldName returns the descriptor name of a schema field: table.column.
func FieldName(f *schema.Field) string {
	if f.Schema == nil {
		return f.DBName
	}

	return f.Schema.Table + "." + f.DBName
}

// Descriptor builds the ShortUUIDField of a tagged schema field.
// It returns nil, nil if the field carries no shortuuid tag.
func Descriptor(f *schema.Field) (*field.ShortUUIDField, error) {
	tag, ok := f.Tag.Lookup(TagName)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	name := FieldName(f)

	if f.IndirectFieldType == nil || f.IndirectFieldType.Kind() != reflect.String {
		return nil, errors.Wrapf(ErrNotString, "field %q", name)
	}

	kwargs := make(map[string]any)

	for key, value := range schema.ParseTagSetting(tag, ";") {
		switch key {
		case tagLength:
			kwargs[field.KeyLength] = value
		case tagPrefix:
			kwargs[field.KeyPrefix] = value
		case tagAlphabet:
			kwargs[field.KeyAlphabet] = value
		case tagDontSortAlphabet:
			kwargs[field.KeyDontSortAlphabet] = value == tagDontSortAlphabet || value == "true"
		default:
			return nil, errors.Wrapf(field.ErrUnknownOption, "field %q: tag key %q", name, key)
		}
	}

	if f.Size > 0 {
		kwargs[field.KeyMaxLength] = f.Size
	}

	if f.PrimaryKey {
		kwargs[field.KeyPrimaryKey] = true
	}

	if f.Unique {
		kwargs[field.KeyUnique] = true
	}

	if f.Comment != "" {
		kwargs[field.KeyComment] = f.Comment
	}

	return field.FromDeconstruction(field.Deconstruction{
		Name:   name,
		Kwargs: kwargs,
	})
}

// Fields returns the short uuid descriptors of model in declaration order.
func Fields(model any, namer schema.Namer) ([]*field.ShortUUIDField, error) {
	s, err := schema.Parse(model, &sync.Map{}, namer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse model schema")
	}

	if s == nil {
		return nil, ErrNoSchema
	}

	var out []*field.ShortUUIDField

	for _, f := range s.Fields {
		d, err := Descriptor(f)
		if err != nil {
			return nil, err
		}

		if d != nil {
			out = append(out, d)
		}
	}

	return out, nil
}
