package app

import (
	"github.com/spf13/pflag"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
)

// fieldFlags holds the field options shared by generate and describe.
type fieldFlags struct {
	name             string
	length           int
	prefix           string
	alphabet         string
	dontSortAlphabet bool
	maxLength        int
}

func (f *fieldFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "cli.id", "Field name")
	fs.IntVarP(&f.length, "length", "l", field.DefaultLength, "Number of random symbols")
	fs.StringVarP(&f.prefix, "prefix", "p", "", "Prefix of every value")
	fs.StringVarP(&f.alphabet, "alphabet", "a", "", "Symbols to draw from (default generator alphabet)")
	fs.BoolVar(&f.dontSortAlphabet, "dont-sort-alphabet", false, "Keep the alphabet order as given")
	fs.IntVar(&f.maxLength, "max-length", 0, "Column width (default length + prefix)")
}

// build creates the field; flags not set on fs keep the field defaults.
func (f *fieldFlags) build(fs *pflag.FlagSet) (*field.ShortUUIDField, error) {
	opts := []field.Option{
		field.WithLength(f.length),
		field.WithPrefix(f.prefix),
		field.WithDontSortAlphabet(f.dontSortAlphabet),
	}

	if fs.Changed("alphabet") {
		opts = append(opts, field.WithAlphabet(f.alphabet))
	}

	if fs.Changed("max-length") {
		opts = append(opts, field.WithMaxLength(f.maxLength))
	}

	return field.ShortUUID(f.name, opts...) //nolint:wrapcheck
}
