package shortuuid

import "errors"

var (
	// ErrAlphabetTooShort is returned if an alphabet has less than two unique symbols.
	ErrAlphabetTooShort = errors.New("alphabet with more than one unique symbol required")

	// ErrAlphabetTooLong is returned if an alphabet has more unique symbols than can be sampled.
	ErrAlphabetTooLong = errors.New("alphabet can not have more than 256 unique symbols")

	// ErrInvalidSymbol is returned by Decode if the input holds a symbol outside the alphabet.
	ErrInvalidSymbol = errors.New("symbol not in alphabet")

	// ErrOverflow is returned by Decode if the input does not fit into 128 bits.
	ErrOverflow = errors.New("decoded value does not fit into a uuid")
)
