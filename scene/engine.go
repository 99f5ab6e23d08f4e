package scene

import (
	"maps"
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/script"
	"go.uber.org/zap"
)

var (
	// ErrInvalidClass is returned when a behavior factory does not produce a non-nil
	// pointer to a struct.
	ErrInvalidClass = errors.New("invalid behavior class")

	// ErrUnknownClass is returned for a class name that was never registered.
	ErrUnknownClass = errors.New("unknown behavior class")

	// ErrUnknownField is returned for a field name the class does not declare.
	ErrUnknownField = errors.New("unknown field")
)

// Factory creates a fresh behavior value.
type Factory func() script.Behavior

// ScriptClass is a registered behavior type.
type ScriptClass struct {
	Name    string
	Fields  []ScriptField
	factory Factory
}

// Field returns the field named name.
func (c *ScriptClass) Field(name string) (ScriptField, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ScriptField{}, false
}

// ScriptInstance is a behavior bound to one entity at runtime.
type ScriptInstance struct {
	Class    *ScriptClass
	Behavior script.Behavior
	value    reflect.Value
	created  bool
}

// ScriptEngine owns behavior classes, per-entity stored field values and the live
// instances of a running scene.
type ScriptEngine struct {
	classes   map[string]*ScriptClass
	fieldMaps map[interop.EntityID]FieldMap
	instances *intmap.Map[interop.EntityID, *ScriptInstance]
	bridge    *script.Bridge
	logger    *zap.Logger
}

func NewScriptEngine(logger *zap.Logger) *ScriptEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptEngine{
		classes:   make(map[string]*ScriptClass),
		fieldMaps: make(map[interop.EntityID]FieldMap),
		instances: intmap.New[interop.EntityID, *ScriptInstance](64),
		logger:    logger.Named("script"),
	}
}

// RegisterClass makes a behavior available under name. The factory is called once
// to discover the class fields and their default values.
func (e *ScriptEngine) RegisterClass(name string, factory Factory) error {
	if name == "" || factory == nil {
		return errors.Wrap(ErrInvalidClass, "name and factory are required")
	}
	sample := factory()
	v := reflect.ValueOf(sample)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(ErrInvalidClass, "%s: factory must return a pointer to a struct, got %T", name, sample)
	}

	class := &ScriptClass{
		Name:    name,
		Fields:  reflectFields(v.Elem()),
		factory: factory,
	}
	e.classes[name] = class
	e.logger.Debug("registered class", zap.String("class", name), zap.Int("fields", len(class.Fields)))
	return nil
}

// MustRegisterClass is RegisterClass that panics on error.
func (e *ScriptEngine) MustRegisterClass(name string, factory Factory) {
	if err := e.RegisterClass(name, factory); err != nil {
		panic(err)
	}
}

func (e *ScriptEngine) Class(name string) (*ScriptClass, bool) {
	c, ok := e.classes[name]
	return c, ok
}

func (e *ScriptEngine) ClassExists(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// Classes lists registered class names in sorted order.
func (e *ScriptEngine) Classes() []string {
	return slices.Sorted(maps.Keys(e.classes))
}

// SetField stores a value for one field of the class bound to id. Stored values are
// applied to the behavior before its OnCreate hook runs.
func (e *ScriptEngine) SetField(id interop.EntityID, className, field string, value any) error {
	class, ok := e.classes[className]
	if !ok {
		return errors.Wrapf(ErrUnknownClass, "%q", className)
	}
	f, ok := class.Field(field)
	if !ok {
		return errors.Wrapf(ErrUnknownField, "%s.%s", className, field)
	}
	v, err := f.Type.normalize(value)
	if err != nil {
		return errors.Wrapf(err, "%s.%s", className, field)
	}

	fm, ok := e.fieldMaps[id]
	if !ok {
		fm = make(FieldMap)
		e.fieldMaps[id] = fm
	}
	fm[field] = ScriptFieldInstance{Field: f, Value: v}

	if inst, ok := e.instances.Get(id); ok && inst.Class == class {
		f.assign(inst.value, v, e.bridge)
	}
	return nil
}

// Fields returns the stored field values of id, or nil.
func (e *ScriptEngine) Fields(id interop.EntityID) FieldMap {
	return e.fieldMaps[id]
}

// FieldValue returns the current value of a field: the live value while an instance
// exists, otherwise the stored value, otherwise the class default.
func (e *ScriptEngine) FieldValue(id interop.EntityID, className, field string) (any, bool) {
	class, ok := e.classes[className]
	if !ok {
		return nil, false
	}
	f, ok := class.Field(field)
	if !ok {
		return nil, false
	}
	if inst, ok := e.instances.Get(id); ok && inst.Class == class {
		return f.read(inst.value), true
	}
	if stored, ok := e.fieldMaps[id][field]; ok {
		return stored.Value, true
	}
	return f.Default, true
}

// OnRuntimeStart attaches the bridge used to bind behaviors.
func (e *ScriptEngine) OnRuntimeStart(bridge *script.Bridge) {
	e.bridge = bridge
}

// OnRuntimeStop drops every live instance. Stored field values are kept.
func (e *ScriptEngine) OnRuntimeStop() {
	e.instances.Clear()
	e.bridge = nil
}

// OnCreateEntity instantiates the class for id, applies stored fields and runs
// OnCreate. It does nothing if id already has an instance.
func (e *ScriptEngine) OnCreateEntity(id interop.EntityID, className string) {
	if e.instances.Has(id) {
		return
	}
	class, ok := e.classes[className]
	if !ok {
		e.logger.Warn("unknown script class", zap.Uint64("entity", uint64(id)), zap.String("class", className))
		return
	}
	if e.bridge == nil {
		e.logger.Error("script engine is not running", zap.Uint64("entity", uint64(id)))
		return
	}

	behavior := class.factory()
	inst := &ScriptInstance{
		Class:    class,
		Behavior: behavior,
		value:    reflect.ValueOf(behavior).Elem(),
	}
	behavior.Bind(e.bridge.Entity(id))
	for name, stored := range e.fieldMaps[id] {
		f, ok := class.Field(name)
		if !ok || f.Type != stored.Field.Type {
			continue
		}
		f.assign(inst.value, stored.Value, e.bridge)
	}
	e.instances.Put(id, inst)

	if creator, ok := behavior.(script.Creator); ok {
		creator.OnCreate()
	}
	inst.created = true
}

// OnUpdateEntity runs OnUpdate for the instance bound to id. An instance whose OnCreate
// did not complete is skipped.
func (e *ScriptEngine) OnUpdateEntity(id interop.EntityID, ts float32) {
	inst, ok := e.instances.Get(id)
	if !ok {
		e.logger.Error("could not find script instance", zap.Uint64("entity", uint64(id)))
		return
	}
	if !inst.created {
		return
	}
	if updater, ok := inst.Behavior.(script.Updater); ok {
		updater.OnUpdate(ts)
	}
}

// OnDestroyEntity drops the instance and stored fields of id.
func (e *ScriptEngine) OnDestroyEntity(id interop.EntityID) {
	e.instances.Del(id)
	delete(e.fieldMaps, id)
}

// Instance returns the behavior bound to id.
func (e *ScriptEngine) Instance(id interop.EntityID) (interop.Instance, bool) {
	inst, ok := e.instances.Get(id)
	if !ok {
		return interop.Instance{}, false
	}
	return interop.Instance{Class: inst.Class.Name, Value: inst.Behavior}, true
}

// InstanceCount is the number of live instances.
func (e *ScriptEngine) InstanceCount() int {
	return e.instances.Len()
}
