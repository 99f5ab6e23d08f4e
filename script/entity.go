package script

import (
	"fmt"

	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
)

// Entity is a handle to a runtime entity. It is a small value that can be copied
// freely; two handles are equal when they name the same id.
//
// The zero Entity is the nil handle. Presence queries on it answer absence; accessors
// on it panic with a contract violation.
type Entity struct {
	id     interop.EntityID
	bridge *Bridge
}

// ID returns the runtime identity.
func (e Entity) ID() interop.EntityID {
	return e.id
}

// IsNil reports whether e is the sentinel handle.
func (e Entity) IsNil() bool {
	return e.id == interop.NoEntity
}

// Equal compares identity only.
func (e Entity) Equal(o Entity) bool {
	return e.id == o.id
}

// Bind points e at other. Behaviors embed Entity and receive their handle through it.
func (e *Entity) Bind(other Entity) {
	*e = other
}

// Position reads the transform position.
func (e Entity) Position() vmath.Vector3 {
	return e.boundary("TransformPosition").TransformPosition(e.id)
}

// SetPosition writes the transform position.
func (e Entity) SetPosition(v vmath.Vector3) {
	e.boundary("SetTransformPosition").SetTransformPosition(e.id, v)
}

// HasComponent asks the runtime whether the entity carries the capability.
func (e Entity) HasComponent(kind interop.Kind) bool {
	if e.bridge == nil || e.IsNil() {
		return false
	}
	return e.bridge.hasComponent(e.id, kind)
}

// GetComponent returns the view for kind. It reports false when the entity lacks the
// capability or no view constructor is registered for the kind.
func (e Entity) GetComponent(kind interop.Kind) (Component, bool) {
	if e.bridge == nil || e.IsNil() {
		return nil, false
	}
	return e.bridge.component(e, kind)
}

// FindEntityByName looks up another entity by name.
func (e Entity) FindEntityByName(name string) Entity {
	if e.bridge == nil {
		return Entity{}
	}
	return e.bridge.FindEntityByName(name)
}

// ScriptClass returns the class name of the behavior bound to e.
func (e Entity) ScriptClass() (string, bool) {
	inst, ok := e.instance()
	if !ok {
		return "", false
	}
	return inst.Class, true
}

func (e Entity) String() string {
	if e.IsNil() {
		return "Entity(nil)"
	}
	return fmt.Sprintf("Entity(%d)", uint64(e.id))
}

func (e Entity) instance() (interop.Instance, bool) {
	if e.bridge == nil || e.IsNil() {
		return interop.Instance{}, false
	}
	return e.bridge.boundary.ScriptInstance(e.id)
}

func (e Entity) boundary(call string) interop.Boundary {
	if e.bridge == nil {
		panic(interop.Violation(call, e.id, interop.ErrStaleEntity))
	}
	return e.bridge.boundary
}

// Has reports whether e carries the capability of view type T.
func Has[T Component](e Entity) bool {
	var zero T
	return e.HasComponent(zero.Kind())
}

// Get returns the view of type T for e.
func Get[T Component](e Entity) (T, bool) {
	var zero T
	c, ok := e.GetComponent(zero.Kind())
	if !ok {
		return zero, false
	}
	view, ok := c.(T)
	return view, ok
}

// As narrows the behavior bound to e to type T. It reports false when no behavior is
// bound or the bound behavior is not a T.
func As[T any](e Entity) (T, bool) {
	var zero T
	inst, ok := e.instance()
	if !ok {
		return zero, false
	}
	v, ok := inst.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
