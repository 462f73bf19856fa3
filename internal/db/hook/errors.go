package hook

import "errors"

var (
	// ErrNotString is returned if the shortuuid tag is put on a non string field.
	ErrNotString = errors.New("shortuuid tag requires a string field")

	// ErrNoSchema is returned if a model could not be parsed into a schema.
	ErrNoSchema = errors.New("model has no schema")

	// ErrMapValueType is returned if a map create can not hold a string default.
	ErrMapValueType = errors.New("map create requires string keys and values assignable from string")
)
