package scene

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/script"
	"github.com/plus3/scriptglue/vmath"
	"gopkg.in/yaml.v3"
)

// FieldType classifies a behavior field that can be stored per entity.
type FieldType uint8

const (
	FieldNone FieldType = iota
	FieldBool
	FieldByte
	FieldSByte
	FieldUShort
	FieldShort
	FieldUInt
	FieldInt
	FieldULong
	FieldLong
	FieldFloat
	FieldDouble
	FieldString
	FieldVector2
	FieldVector3
	FieldColor
	FieldEntity
)

var fieldTypeNames = [...]string{
	FieldNone:    "None",
	FieldBool:    "Boolean",
	FieldByte:    "Byte",
	FieldSByte:   "SByte",
	FieldUShort:  "UShort",
	FieldShort:   "Short",
	FieldUInt:    "UInt",
	FieldInt:     "Int",
	FieldULong:   "ULong",
	FieldLong:    "Long",
	FieldFloat:   "Float",
	FieldDouble:  "Double",
	FieldString:  "String",
	FieldVector2: "Vector2",
	FieldVector3: "Vector3",
	FieldColor:   "Color",
	FieldEntity:  "Entity",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// ParseFieldType maps a name produced by String back to its FieldType.
func ParseFieldType(name string) (FieldType, error) {
	for i, n := range fieldTypeNames {
		if n == name {
			return FieldType(i), nil
		}
	}
	return FieldNone, errors.Errorf("unknown field type %q", name)
}

func (t FieldType) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *FieldType) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseFieldType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var (
	vector2Type = reflect.TypeFor[vmath.Vector2]()
	vector3Type = reflect.TypeFor[vmath.Vector3]()
	colorType   = reflect.TypeFor[vmath.Color]()
	handleType  = reflect.TypeFor[script.Entity]()
)

// fieldTypeOf classifies a Go type, returning FieldNone for unsupported types.
func fieldTypeOf(t reflect.Type) FieldType {
	switch t {
	case vector2Type:
		return FieldVector2
	case vector3Type:
		return FieldVector3
	case colorType:
		return FieldColor
	case handleType:
		return FieldEntity
	}

	switch t.Kind() {
	case reflect.Bool:
		return FieldBool
	case reflect.Uint8:
		return FieldByte
	case reflect.Int8:
		return FieldSByte
	case reflect.Uint16:
		return FieldUShort
	case reflect.Int16:
		return FieldShort
	case reflect.Uint32:
		return FieldUInt
	case reflect.Int32:
		return FieldInt
	case reflect.Uint64, reflect.Uint:
		return FieldULong
	case reflect.Int64, reflect.Int:
		return FieldLong
	case reflect.Float32:
		return FieldFloat
	case reflect.Float64:
		return FieldDouble
	case reflect.String:
		return FieldString
	}
	return FieldNone
}

// storageType is the Go type used to hold values of t outside a behavior.
func (t FieldType) storageType() reflect.Type {
	switch t {
	case FieldBool:
		return reflect.TypeFor[bool]()
	case FieldByte:
		return reflect.TypeFor[uint8]()
	case FieldSByte:
		return reflect.TypeFor[int8]()
	case FieldUShort:
		return reflect.TypeFor[uint16]()
	case FieldShort:
		return reflect.TypeFor[int16]()
	case FieldUInt:
		return reflect.TypeFor[uint32]()
	case FieldInt:
		return reflect.TypeFor[int32]()
	case FieldULong:
		return reflect.TypeFor[uint64]()
	case FieldLong:
		return reflect.TypeFor[int64]()
	case FieldFloat:
		return reflect.TypeFor[float32]()
	case FieldDouble:
		return reflect.TypeFor[float64]()
	case FieldString:
		return reflect.TypeFor[string]()
	case FieldVector2:
		return vector2Type
	case FieldVector3:
		return vector3Type
	case FieldColor:
		return colorType
	case FieldEntity:
		return entityIDType
	}
	return nil
}

// ErrFieldType is returned when a value cannot be stored in a field.
var ErrFieldType = errors.New("value does not fit field type")

// normalize converts v to the storage type of t. Numeric values convert between
// kinds; an EntityID or a script.Entity both store as an EntityID.
func (t FieldType) normalize(v any) (any, error) {
	target := t.storageType()
	if target == nil {
		return nil, errors.Wrapf(ErrFieldType, "field type %s", t)
	}
	if e, ok := v.(script.Entity); ok && t == FieldEntity {
		return e.ID(), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.Wrapf(ErrFieldType, "nil for %s", t)
	}
	if rv.Type() == target {
		return v, nil
	}
	if rv.Kind() == target.Kind() && rv.Type().ConvertibleTo(target) {
		return rv.Convert(target).Interface(), nil
	}
	if isNumeric(rv.Kind()) && isNumeric(target.Kind()) {
		return rv.Convert(target).Interface(), nil
	}
	return nil, errors.Wrapf(ErrFieldType, "%T for %s", v, t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ScriptField describes one storable field of a behavior class.
type ScriptField struct {
	Name    string
	Type    FieldType
	Default any
	index   []int
}

// ScriptFieldInstance is a stored value for one field of one entity.
type ScriptFieldInstance struct {
	Field ScriptField
	Value any
}

// FieldMap holds the stored field values of one entity by field name.
type FieldMap map[string]ScriptFieldInstance

// reflectFields lists the exported fields of a behavior struct that have a FieldType.
// The embedded handle and unsupported types are skipped.
func reflectFields(v reflect.Value) []ScriptField {
	t := v.Type()
	fields := make([]ScriptField, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		ft := fieldTypeOf(f.Type)
		if ft == FieldNone {
			continue
		}
		def, err := ft.normalize(v.Field(i).Interface())
		if err != nil {
			continue
		}
		fields = append(fields, ScriptField{Name: f.Name, Type: ft, Default: def, index: f.Index})
	}
	return fields
}

// assign writes a stored value into the behavior struct.
func (f ScriptField) assign(target reflect.Value, value any, bridge *script.Bridge) {
	dst := target.FieldByIndex(f.index)
	if f.Type == FieldEntity {
		id, _ := value.(interop.EntityID)
		if bridge != nil {
			dst.Set(reflect.ValueOf(bridge.Entity(id)))
		}
		return
	}
	dst.Set(reflect.ValueOf(value).Convert(dst.Type()))
}

// read returns the current value of the field in storage form.
func (f ScriptField) read(target reflect.Value) any {
	v, err := f.Type.normalize(target.FieldByIndex(f.index).Interface())
	if err != nil {
		return nil
	}
	return v
}
