package migration

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/controller/fieldstate"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/db/hook"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
)

// Kind classifies a Change.
type Kind string

const (
	// Added is a field without stored state.
	Added Kind = "added"
	// Removed is a stored state without field.
	Removed Kind = "removed"
	// Altered is a field whose options differ from the stored state.
	Altered Kind = "altered"
)

// Change is one entry of a migration plan.
type Change struct {
	Kind Kind
	Name string
	// Keys lists the kwargs that differ, for Altered only.
	Keys []string
	// Current is the deconstruction to store; empty for Removed.
	Current field.Deconstruction
}

// Deconstructions returns the JSON normalized deconstruction of every short uuid
// field of models, keyed by field name.
func Deconstructions(namer schema.Namer, models ...any) (map[string]field.Deconstruction, error) {
	out := make(map[string]field.Deconstruction)

	for _, model := range models {
		fields, err := hook.Fields(model, namer)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		for _, f := range fields {
			if _, ok := out[f.Name()]; ok {
				return nil, errors.Wrapf(ErrDuplicateField, "field %q", f.Name())
			}

			d, err := normalize(f.Deconstruct())
			if err != nil {
				return nil, err
			}

			out[f.Name()] = d
		}
	}

	return out, nil
}

// Plan returns the changes between the stored states and the current models, sorted by name.
func Plan(db *gorm.DB, namer schema.Namer, models ...any) ([]Change, error) {
	current, err := Deconstructions(namer, models...)
	if err != nil {
		return nil, err
	}

	states, err := fieldstate.GetAll(db)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load field states")
	}

	stored := make(map[string]field.Deconstruction, len(states))

	for _, state := range states {
		d := field.Deconstruction{Name: state.Name, Path: state.Path}
		if err = json.Unmarshal(state.Kwargs, &d.Kwargs); err != nil {
			return nil, errors.Wrapf(ErrCorruptState, "field %q: %v", state.Name, err)
		}

		if _, err = field.FromDeconstruction(d); err != nil {
			return nil, errors.Wrapf(ErrCorruptState, "field %q: %v", state.Name, err)
		}

		stored[state.Name] = d
	}

	var changes []Change

	for name, d := range current {
		prev, ok := stored[name]
		if !ok {
			changes = append(changes, Change{Kind: Added, Name: name, Current: d})
			continue
		}

		if keys := diffKeys(prev, d); len(keys) > 0 {
			changes = append(changes, Change{Kind: Altered, Name: name, Keys: keys, Current: d})
		}
	}

	for name := range stored {
		if _, ok := current[name]; !ok {
			changes = append(changes, Change{Kind: Removed, Name: name})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Name < changes[j].Name })

	return changes, nil
}

// Apply stores the outcome of changes in one transaction.
func Apply(db *gorm.DB, changes []Change) error {
	if db == nil {
		return fieldstate.ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error { //nolint:wrapcheck
		for _, c := range changes {
			switch c.Kind {
			case Removed:
				if err := fieldstate.DeleteByName(tx, c.Name); err != nil {
					return errors.Wrapf(err, "failed to remove %q", c.Name)
				}
			case Added, Altered:
				kwargs, err := json.Marshal(c.Current.Kwargs)
				if err != nil {
					return errors.Wrapf(err, "failed to encode %q", c.Name)
				}

				if _, err = fieldstate.Set(tx, c.Name, c.Current.Path, kwargs); err != nil {
					return errors.Wrapf(err, "failed to store %q", c.Name)
				}
			}

			log.Info().Str("field", c.Name).Str("change", string(c.Kind)).Strs("keys", c.Keys).Msg("applied field migration")
		}

		return nil
	})
}

// normalize replaces default producers with field.CallableMarker and round trips
// the kwargs through JSON so they compare equal to stored states.
func normalize(d field.Deconstruction) (field.Deconstruction, error) {
	kwargs := make(map[string]any, len(d.Kwargs))

	for k, v := range d.Kwargs {
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			v = field.CallableMarker
		}

		kwargs[k] = v
	}

	raw, err := json.Marshal(kwargs)
	if err != nil {
		return field.Deconstruction{}, errors.Wrapf(err, "failed to encode %q", d.Name)
	}

	d.Kwargs = nil
	if err = json.Unmarshal(raw, &d.Kwargs); err != nil {
		return field.Deconstruction{}, errors.Wrapf(err, "failed to decode %q", d.Name)
	}

	return d, nil
}

// diffKeys returns the sorted kwargs keys whose values differ between a and b.
func diffKeys(a, b field.Deconstruction) []string {
	keys := make(map[string]struct{})

	for k, v := range a.Kwargs {
		if w, ok := b.Kwargs[k]; !ok || !reflect.DeepEqual(v, w) {
			keys[k] = struct{}{}
		}
	}

	for k := range b.Kwargs {
		if _, ok := a.Kwargs[k]; !ok {
			keys[k] = struct{}{}
		}
	}

	if a.Path != b.Path {
		keys["path"] = struct{}{}
	}

	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
