// Package fieldstate stores the last applied deconstruction of every short uuid field.
package fieldstate

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrFieldStateNotFound is returned when a field state is not found.
	ErrFieldStateNotFound = errors.New("field state not found")
	// ErrFieldStateNameEmpty is returned when a field state is addressed with an empty name.
	ErrFieldStateNameEmpty = errors.New("field state name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a field state by its name.
func Get(db *gorm.DB, name string) (*models.FieldState, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrFieldStateNameEmpty
	}

	var state models.FieldState

	result := db.Where(nameQueryPattern, name).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFieldStateNotFound
		}

		return nil, result.Error
	}

	return &state, nil
}

// GetAll retrieves all field states ordered by name.
func GetAll(db *gorm.DB) ([]models.FieldState, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var states []models.FieldState

	result := db.Order("name").Find(&states)
	if result.Error != nil {
		return nil, result.Error
	}

	return states, nil
}

// Set creates or updates the state of a field (upsert operation).
func Set(db *gorm.DB, name, path string, kwargs []byte) (*models.FieldState, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrFieldStateNameEmpty
	}

	var state models.FieldState

	result := db.Where(nameQueryPattern, name).First(&state)

	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		state = models.FieldState{Name: name}
	case result.Error != nil:
		return nil, result.Error
	}

	state.Path = path
	state.Kwargs = kwargs

	result = db.Save(&state)
	if result.Error != nil {
		return nil, result.Error
	}

	return &state, nil
}

// DeleteByName deletes a field state by name.
func DeleteByName(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}

	if name == "" {
		return ErrFieldStateNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.FieldState{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrFieldStateNotFound
	}

	return nil
}
