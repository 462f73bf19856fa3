package field

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// optionErrors maps struct fields rejected by validate to their sentinel error.
var optionErrors = map[string]error{ //nolint:gochecknoglobals
	"MaxLength": ErrInvalidMaxLength,
	"Length":    ErrInvalidLength,
}

// CharConfig holds the options of a CharField.
type CharConfig struct {
	// MaxLength is the storage width in characters.
	MaxLength int `validate:"gt=0"`
	// Default produces the value of new records. Nil means no default.
	Default func() string
	// Null allows NULL in the database.
	Null bool
	// Unique adds a unique constraint.
	Unique bool
	// PrimaryKey marks the column as primary key.
	PrimaryKey bool
	// Index adds a database index.
	Index bool
	// Comment is stored as database column comment.
	Comment string
}

// CharField describes a bounded string column.
type CharField struct {
	name   string
	config CharConfig
}

// NewCharField returns a validated CharField.
func NewCharField(name string, cfg CharConfig) (*CharField, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrapf(err, "field %q", name)
	}

	return &CharField{name: name, config: cfg}, nil
}

// validateConfig runs the struct validation and returns the first failure as sentinel error.
func validateConfig(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err //nolint:wrapcheck
	}

	for _, fe := range verrs {
		if sentinel, ok := optionErrors[fe.Field()]; ok {
			return errors.Wrapf(sentinel, "got %v", fe.Value())
		}
	}

	return err //nolint:wrapcheck
}

// Name returns the field name.
func (f *CharField) Name() string { return f.name }

// MaxLength returns the storage width in characters.
func (f *CharField) MaxLength() int { return f.config.MaxLength }

// HasDefault reports whether a default producer is configured.
func (f *CharField) HasDefault() bool { return f.config.Default != nil }

// Default returns the value for a new record, or "" if the field has no default.
func (f *CharField) Default() string {
	if f.config.Default == nil {
		return ""
	}

	return f.config.Default()
}

// Validate checks value against the field constraints.
func (f *CharField) Validate(value string) error {
	if utf8.RuneCountInString(value) > f.config.MaxLength {
		return &ValidationError{Field: f.name, Value: value, Err: ErrValueTooLong}
	}

	return nil
}

// Deconstruct returns the options needed to rebuild the field.
// max_length is always present, other options only if they differ from their zero value.
func (f *CharField) Deconstruct() Deconstruction {
	kwargs := map[string]any{
		KeyMaxLength: f.config.MaxLength,
	}

	if f.config.Default != nil {
		kwargs[KeyDefault] = f.config.Default
	}

	if f.config.Null {
		kwargs[KeyNull] = true
	}

	if f.config.Unique {
		kwargs[KeyUnique] = true
	}

	if f.config.PrimaryKey {
		kwargs[KeyPrimaryKey] = true
	}

	if f.config.Index {
		kwargs[KeyIndex] = true
	}

	if f.config.Comment != "" {
		kwargs[KeyComment] = f.config.Comment
	}

	return Deconstruction{
		Name:   f.name,
		Path:   typePath(f),
		Args:   []any{},
		Kwargs: kwargs,
	}
}
