package field

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/shortuuid"
)

// DefaultLength is the number of generated symbols if no length is configured.
const DefaultLength = 22

// Config holds the options of a ShortUUIDField.
// Nil pointers mean "not set" and fall back to the documented default.
type Config struct {
	// Length is the number of generated symbols. Default DefaultLength.
	Length int `validate:"gte=0"`
	// Prefix is prepended to every generated value. Default "".
	Prefix string
	// Alphabet overrides the generator alphabet. Default shortuuid.DefaultAlphabet.
	Alphabet *string
	// DontSortAlphabet keeps the alphabet order as given.
	DontSortAlphabet bool
	// MaxLength overrides the storage width. Default Length + runes in Prefix.
	MaxLength *int
	// Default replaces the generated default value.
	Default func() string

	Null       bool
	Unique     bool
	PrimaryKey bool
	Index      bool
	Comment    string
}

// Option configures a ShortUUIDField.
type Option func(*Config)

// WithLength sets the number of generated symbols.
func WithLength(length int) Option {
	return func(c *Config) { c.Length = length }
}

// WithPrefix sets the literal prepended to generated values.
func WithPrefix(prefix string) Option {
	return func(c *Config) { c.Prefix = prefix }
}

// WithAlphabet sets the generator alphabet.
func WithAlphabet(alphabet string) Option {
	return func(c *Config) { c.Alphabet = &alphabet }
}

// WithDontSortAlphabet keeps the alphabet in the given order.
func WithDontSortAlphabet(dontSort bool) Option {
	return func(c *Config) { c.DontSortAlphabet = dontSort }
}

// WithMaxLength sets the storage width explicitly.
func WithMaxLength(maxLength int) Option {
	return func(c *Config) { c.MaxLength = &maxLength }
}

// WithDefault replaces the generated default with fn.
func WithDefault(fn func() string) Option {
	return func(c *Config) { c.Default = fn }
}

// WithNull allows NULL values.
func WithNull() Option {
	return func(c *Config) { c.Null = true }
}

// WithUnique adds a unique constraint.
func WithUnique() Option {
	return func(c *Config) { c.Unique = true }
}

// WithPrimaryKey marks the field as primary key.
func WithPrimaryKey() Option {
	return func(c *Config) { c.PrimaryKey = true }
}

// WithIndex adds a database index.
func WithIndex() Option {
	return func(c *Config) { c.Index = true }
}

// WithComment sets the column comment.
func WithComment(comment string) Option {
	return func(c *Config) { c.Comment = comment }
}

// ShortUUIDField is a CharField whose default is a prefixed random short UUID.
type ShortUUIDField struct {
	CharField

	length           int
	prefix           string
	alphabet         *string
	dontSortAlphabet bool
	customDefault    bool
}

// ShortUUID returns a ShortUUIDField configured by opts.
func ShortUUID(name string, opts ...Option) (*ShortUUIDField, error) {
	cfg := Config{Length: DefaultLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	return NewShortUUIDField(name, cfg)
}

// NewShortUUIDField returns a ShortUUIDField for cfg.
// A zero Length is taken literally; use ShortUUID to get DefaultLength.
func NewShortUUIDField(name string, cfg Config) (*ShortUUIDField, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrapf(err, "field %q", name)
	}

	if cfg.Alphabet != nil && *cfg.Alphabet == "" {
		return nil, errors.Wrapf(shortuuid.ErrAlphabetTooShort, "field %q", name)
	}

	f := &ShortUUIDField{
		length:           cfg.Length,
		prefix:           cfg.Prefix,
		alphabet:         cfg.Alphabet,
		dontSortAlphabet: cfg.DontSortAlphabet,
		customDefault:    cfg.Default != nil,
	}

	// fail on a bad alphabet now and not on the first insert
	if _, err := f.generator(); err != nil {
		return nil, errors.Wrapf(err, "field %q", name)
	}

	needed := cfg.Length + utf8.RuneCountInString(cfg.Prefix)

	maxLength := needed
	if cfg.MaxLength != nil {
		maxLength = *cfg.MaxLength
	}

	if maxLength > 0 && maxLength < needed {
		return nil, errors.Wrapf(ErrMaxLengthTooSmall, "field %q: max_length %d, need %d", name, maxLength, needed)
	}

	producer := cfg.Default
	if producer == nil {
		producer = f.Generate
	}

	base, err := NewCharField(name, CharConfig{
		MaxLength:  maxLength,
		Default:    producer,
		Null:       cfg.Null,
		Unique:     cfg.Unique,
		PrimaryKey: cfg.PrimaryKey,
		Index:      cfg.Index,
		Comment:    cfg.Comment,
	})
	if err != nil {
		return nil, err
	}

	f.CharField = *base

	return f, nil
}

func (f *ShortUUIDField) generator() (*shortuuid.ShortUUID, error) {
	var opts []shortuuid.Option

	if f.alphabet != nil {
		opts = append(opts, shortuuid.WithAlphabet(*f.alphabet))
	}

	if f.dontSortAlphabet {
		opts = append(opts, shortuuid.WithDontSortAlphabet(true))
	}

	return shortuuid.New(opts...) //nolint:wrapcheck
}

// Generate returns the prefix followed by length random symbols.
// Every call builds its own generator and draws fresh randomness.
func (f *ShortUUIDField) Generate() string {
	gen, err := f.generator()
	if err != nil {
		// alphabet was checked in NewShortUUIDField
		panic(err)
	}

	return f.prefix + gen.Random(f.length)
}

// Length returns the number of generated symbols.
func (f *ShortUUIDField) Length() int { return f.length }

// Prefix returns the literal prepended to generated values.
func (f *ShortUUIDField) Prefix() string { return f.prefix }

// Alphabet returns the configured alphabet and whether one was set.
func (f *ShortUUIDField) Alphabet() (string, bool) {
	if f.alphabet == nil {
		return "", false
	}

	return *f.alphabet, true
}

// DontSortAlphabet reports whether the alphabet order is kept.
func (f *ShortUUIDField) DontSortAlphabet() bool { return f.dontSortAlphabet }

// Deconstruct returns the CharField options overlaid with alphabet, length,
// prefix and dont_sort_alphabet. The generated default is not part of the result.
func (f *ShortUUIDField) Deconstruct() Deconstruction {
	d := f.CharField.Deconstruct()
	d.Path = typePath(f)

	if !f.customDefault {
		delete(d.Kwargs, KeyDefault)
	}

	if f.alphabet != nil {
		d.Kwargs[KeyAlphabet] = *f.alphabet
	} else {
		d.Kwargs[KeyAlphabet] = nil
	}

	d.Kwargs[KeyLength] = f.length
	d.Kwargs[KeyPrefix] = f.prefix
	d.Kwargs[KeyDontSortAlphabet] = f.dontSortAlphabet

	return d
}
