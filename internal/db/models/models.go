// Package models contains database model definitions.
package models

// All returns every model managed by the migration, in migration order.
func All() []any {
	return []any{
		&User{},
		&APIKey{},
		&FieldState{},
	}
}

// WithShortUUIDFields returns the models declaring short uuid fields.
func WithShortUUIDFields() []any {
	return []any{
		&User{},
		&APIKey{},
	}
}
