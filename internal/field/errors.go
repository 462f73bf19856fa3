package field

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxLength is returned if a char field is configured with max_length <= 0.
	ErrInvalidMaxLength = errors.New("max_length must be a positive integer")

	// ErrInvalidLength is returned if a short uuid field is configured with a negative length.
	ErrInvalidLength = errors.New("length can not be negative")

	// ErrMaxLengthTooSmall is returned if max_length can not hold prefix and generated value.
	ErrMaxLengthTooSmall = errors.New("max_length is smaller than prefix plus length")

	// ErrValueTooLong is returned if a value exceeds the max_length of its field.
	ErrValueTooLong = errors.New("value is longer than max_length")

	// ErrUnknownOption is returned by FromDeconstruction for kwargs it can not apply.
	ErrUnknownOption = errors.New("unknown field option")

	// ErrPathMismatch is returned by FromDeconstruction for records of another field type.
	ErrPathMismatch = errors.New("deconstruction path does not match field type")

	// ErrNameEmpty is returned if a field is constructed without a name.
	ErrNameEmpty = errors.New("field name can not be empty")
)

// ValidationError reports a value rejected by a field.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
