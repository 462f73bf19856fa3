package shortuuid

import (
	"math/big"
	"slices"
	"strings"

	"github.com/google/uuid"
	lshortuuid "github.com/lithammer/shortuuid/v4"
)

// DefaultAlphabet omits visually similar symbols (0/O, 1/I/l).
const DefaultAlphabet = lshortuuid.DefaultAlphabet

// uuidBits is the width of a UUID.
const uuidBits = 128

// ShortUUID encodes UUIDs and draws random strings from a fixed alphabet.
// It holds no mutable state and is safe for concurrent use.
type ShortUUID struct {
	symbols []rune
	index   map[rune]int64
}

// Option configures a ShortUUID.
type Option func(*options)

type options struct {
	alphabet         string
	dontSortAlphabet bool
}

// WithAlphabet sets the symbols used for encoding. An empty string keeps DefaultAlphabet.
func WithAlphabet(alphabet string) Option {
	return func(o *options) {
		if alphabet != "" {
			o.alphabet = alphabet
		}
	}
}

// WithDontSortAlphabet keeps the alphabet in the given order. Duplicates are still removed.
func WithDontSortAlphabet(dontSort bool) Option {
	return func(o *options) {
		o.dontSortAlphabet = dontSort
	}
}

// New returns a ShortUUID for the configured alphabet.
func New(opts ...Option) (*ShortUUID, error) {
	o := options{alphabet: DefaultAlphabet}
	for _, opt := range opts {
		opt(&o)
	}

	symbols := normalizeAlphabet(o.alphabet, o.dontSortAlphabet)

	switch {
	case len(symbols) < 2: //nolint:mnd
		return nil, ErrAlphabetTooShort
	case len(symbols) > byteRange:
		return nil, ErrAlphabetTooLong
	}

	index := make(map[rune]int64, len(symbols))
	for i, r := range symbols {
		index[r] = int64(i)
	}

	return &ShortUUID{symbols: symbols, index: index}, nil
}

// normalizeAlphabet removes duplicate symbols and sorts the rest unless dontSort is set,
// in which case the first occurrence of every symbol keeps its position.
func normalizeAlphabet(alphabet string, dontSort bool) []rune {
	seen := make(map[rune]struct{}, len(alphabet))
	symbols := make([]rune, 0, len(alphabet))

	for _, r := range alphabet {
		if _, ok := seen[r]; ok {
			continue
		}

		seen[r] = struct{}{}
		symbols = append(symbols, r)
	}

	if !dontSort {
		slices.Sort(symbols)
	}

	return symbols
}

// Alphabet returns the normalized alphabet.
func (s *ShortUUID) Alphabet() string {
	return string(s.symbols)
}

// Length returns the number of symbols needed to encode any UUID.
func (s *ShortUUID) Length() int {
	return s.symbolsFor(uuidBits)
}

// EncodedLength returns the number of symbols needed to encode numBytes bytes.
func (s *ShortUUID) EncodedLength(numBytes int) int {
	return s.symbolsFor(numBytes * 8) //nolint:mnd
}

// symbolsFor returns the smallest n with len(alphabet)^n >= 2^bits.
func (s *ShortUUID) symbolsFor(bits int) int {
	if bits <= 0 {
		return 0
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	base := big.NewInt(int64(len(s.symbols)))
	acc := big.NewInt(1)

	n := 0
	for acc.Cmp(limit) < 0 {
		acc.Mul(acc, base)
		n++
	}

	return n
}

// Random returns a cryptographically secure random string of length symbols.
func (s *ShortUUID) Random(length int) string {
	return string(randomSymbols(length, s.symbols))
}

// UUID returns a new encoded UUID. An empty name yields a random (version 4) UUID;
// otherwise a name based (version 5) UUID is derived in the URL namespace for
// http(s) names and in the DNS namespace for everything else.
func (s *ShortUUID) UUID(name string) string {
	var u uuid.UUID

	lower := strings.ToLower(name)

	switch {
	case name == "":
		u = uuid.New()
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u = uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
	default:
		u = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name))
	}

	return s.Encode(u, 0)
}

// Encode returns u in the alphabet, most significant symbol first, left padded
// with the first symbol to padLength. A padLength <= 0 pads to Length.
func (s *ShortUUID) Encode(u uuid.UUID, padLength int) string {
	if padLength <= 0 {
		padLength = s.Length()
	}

	number := new(big.Int).SetBytes(u[:])
	base := big.NewInt(int64(len(s.symbols)))
	digit := new(big.Int)

	var out []rune
	for number.Sign() > 0 {
		number.DivMod(number, base, digit)
		out = append(out, s.symbols[digit.Int64()])
	}

	for len(out) < padLength {
		out = append(out, s.symbols[0])
	}

	slices.Reverse(out)

	return string(out)
}

// Decode converts an encoded string back into a UUID.
func (s *ShortUUID) Decode(encoded string) (uuid.UUID, error) {
	number := new(big.Int)
	base := big.NewInt(int64(len(s.symbols)))

	for _, r := range encoded {
		i, ok := s.index[r]
		if !ok {
			return uuid.Nil, ErrInvalidSymbol
		}

		number.Mul(number, base)
		number.Add(number, big.NewInt(i))
	}

	if number.BitLen() > uuidBits {
		return uuid.Nil, ErrOverflow
	}

	var u uuid.UUID

	number.FillBytes(u[:])

	return u, nil
}
