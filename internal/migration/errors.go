package migration

import "errors"

var (
	// ErrDuplicateField is returned if two models declare the same table.column.
	ErrDuplicateField = errors.New("field declared twice")

	// ErrCorruptState is returned if a stored state can not be turned back into a field.
	ErrCorruptState = errors.New("stored field state is corrupt")
)
