package hook

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/field"
	"github.com/GoPowerDNS-Admin/go-shortuuid-field/internal/metrics"
)

// PluginName is the name the plugin is registered under.
const PluginName = "shortuuid"

// callbackName is the create callback assigning defaults.
const callbackName = "shortuuid:assign_defaults"

var _ gorm.Plugin = (*Plugin)(nil)

// Plugin assigns short uuid defaults on create.
type Plugin struct {
	descriptors sync.Map // *schema.Field -> descriptorEntry
}

type descriptorEntry struct {
	field *field.ShortUUIDField
	err   error
}

// New returns a new Plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name implements gorm.Plugin.
func (p *Plugin) Name() string {
	return PluginName
}

// Initialize implements gorm.Plugin.
func (p *Plugin) Initialize(db *gorm.DB) error {
	return db.Callback().Create().Before("gorm:create").Register(callbackName, p.assignDefaults) //nolint:wrapcheck
}

// descriptor returns the cached descriptor of f.
func (p *Plugin) descriptor(f *schema.Field) (*field.ShortUUIDField, error) {
	if cached, ok := p.descriptors.Load(f); ok {
		entry := cached.(descriptorEntry) //nolint:forcetypeassert

		return entry.field, entry.err
	}

	d, err := Descriptor(f)
	if err != nil {
		metrics.DescriptorErrors.WithLabelValues(FieldName(f)).Inc()
	}

	p.descriptors.Store(f, descriptorEntry{field: d, err: err})

	return d, err
}

// assignDefaults sets every zero short uuid field of the statement value.
func (p *Plugin) assignDefaults(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	type target struct {
		schema *schema.Field
		field  *field.ShortUUIDField
	}

	var targets []target

	for _, f := range db.Statement.Schema.Fields {
		d, err := p.descriptor(f)
		if err != nil {
			_ = db.AddError(err)

			return
		}

		if d != nil {
			targets = append(targets, target{schema: f, field: d})
		}
	}

	if len(targets) == 0 {
		return
	}

	ctx := db.Statement.Context
	rv := db.Statement.ReflectValue

	assign := func(obj reflect.Value) {
		for _, t := range targets {
			if _, zero := t.schema.ValueOf(ctx, obj); !zero {
				continue
			}

			value, ok := generate(db, t.field)
			if !ok {
				return
			}

			if err := t.schema.Set(ctx, obj, value); err != nil {
				_ = db.AddError(err)

				return
			}
		}
	}

	// map creates may name a column by field name or db name
	assignMap := func(obj reflect.Value) {
		if obj.Type().Key().Kind() != reflect.String ||
			!reflect.TypeFor[string]().AssignableTo(obj.Type().Elem()) {
			_ = db.AddError(errors.Wrapf(ErrMapValueType, "got %s", obj.Type()))

			return
		}

		for _, t := range targets {
			if !missingInMap(obj, t.schema.DBName) || !missingInMap(obj, t.schema.Name) {
				continue
			}

			value, ok := generate(db, t.field)
			if !ok {
				return
			}

			obj.SetMapIndex(reflect.ValueOf(t.schema.DBName).Convert(obj.Type().Key()), reflect.ValueOf(value))
		}
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			obj := reflect.Indirect(rv.Index(i))

			switch obj.Kind() { //nolint:exhaustive
			case reflect.Struct:
				assign(obj)
			case reflect.Map:
				assignMap(obj)
			}
		}
	case reflect.Struct:
		assign(rv)
	case reflect.Map:
		assignMap(rv)
	}
}

// generate returns a validated default of f, recording failures on db.
func generate(db *gorm.DB, f *field.ShortUUIDField) (string, bool) {
	value := f.Default()
	if err := f.Validate(value); err != nil {
		_ = db.AddError(err)

		return "", false
	}

	metrics.DefaultsGenerated.WithLabelValues(f.Name()).Inc()
	log.Trace().Str("field", f.Name()).Str("value", value).Msg("assigned short uuid default")

	return value, true
}

// missingInMap reports whether key is absent from m or holds an empty value.
func missingInMap(m reflect.Value, key string) bool {
	v := m.MapIndex(reflect.ValueOf(key).Convert(m.Type().Key()))
	if !v.IsValid() {
		return true
	}

	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}

		v = v.Elem()
	}

	return v.IsZero()
}
