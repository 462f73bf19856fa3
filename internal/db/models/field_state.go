package models

import "time"

// FieldState is the last applied deconstruction of a short uuid model field.
type FieldState struct {
	ID uint64 `gorm:"primaryKey"`
	// Name is the field name as table.column.
	Name string `gorm:"unique;size:255;not null"`
	// Path is the type path of the descriptor.
	Path string `gorm:"size:255;not null"`
	// Kwargs are the JSON encoded descriptor options.
	Kwargs    []byte
	UpdatedAt time.Time
}
