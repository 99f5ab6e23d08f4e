package scene

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/plus3/scriptglue/interop"
)

// View iterates entities through a struct of component pointers.
//
// Every pointer field of T names a component type. Embedded fields are always required;
// named fields can be tagged `scene:"optional"` and are nil when the entity lacks the
// component. A field of type interop.EntityID receives the entity's id.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
	isID     bool
}

var entityIDType = reflect.TypeFor[interop.EntityID]()

func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, st.NumField())
	for i := range st.NumField() {
		f := st.Field(i)
		if f.Type == entityIDType {
			fields = append(fields, viewField{offset: f.Offset, isID: true})
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be component pointers or interop.EntityID")
		}

		optional := false
		if tag, ok := f.Tag.Lookup("scene"); ok && !f.Anonymous {
			if tag != "optional" {
				panic("invalid scene tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}
		fields = append(fields, viewField{typ: f.Type.Elem(), offset: f.Offset, optional: optional})
	}

	return &View[T]{storage: storage, fields: fields}
}

func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if f.isID || f.optional {
			continue
		}
		if !a.Has(f.typ) {
			return false
		}
	}
	return true
}

// columns maps each field to its column in a, or -1.
func (v *View[T]) columns(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		if f.isID {
			cols[i] = -1
			continue
		}
		cols[i] = a.column(f.typ)
	}
	return cols
}

func (v *View[T]) fill(dst *T, a *Archetype, slot uint32, cols []int) bool {
	base := unsafe.Pointer(dst)
	for i, f := range v.fields {
		field := unsafe.Add(base, f.offset)
		if f.isID {
			*(*interop.EntityID)(field) = a.owner(slot)
			continue
		}

		var ptr unsafe.Pointer
		if cols[i] >= 0 {
			if c := a.columns[cols[i]].At(int(slot)); c != nil {
				ptr = reflect.ValueOf(c).UnsafePointer()
			}
		}
		if ptr == nil && !f.optional {
			return false
		}
		*(*unsafe.Pointer)(field) = ptr
	}
	return true
}

// Get returns the populated view for id, or nil if id is not live or lacks a required
// component.
func (v *View[T]) Get(id interop.EntityID) *T {
	loc, ok := v.storage.locations.Get(id)
	if !ok {
		return nil
	}
	a := v.storage.archetypes[loc.archetype()]
	var result T
	if !v.fill(&result, a, loc.slot(), v.columns(a)) {
		return nil
	}
	return &result
}

// Iter yields every matching entity, archetype by archetype in creation order.
func (v *View[T]) Iter() iter.Seq2[interop.EntityID, T] {
	return func(yield func(interop.EntityID, T) bool) {
		for _, a := range v.storage.archetypes {
			if !v.iterArchetype(a, yield) {
				return
			}
		}
	}
}

func (v *View[T]) iterArchetype(a *Archetype, yield func(interop.EntityID, T) bool) bool {
	if !v.matches(a) {
		return true
	}
	cols := v.columns(a)
	var result T
	for slot := range a.slots() {
		if !v.fill(&result, a, slot, cols) {
			continue
		}
		if !yield(a.owner(slot), result) {
			return false
		}
	}
	return true
}

// Values yields only the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Spawn stores a new entity under id from the non-nil component pointers of data.
func (v *View[T]) Spawn(id interop.EntityID, data T) {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		if f.isID {
			continue
		}
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Elem().Interface())
	}
	v.storage.Spawn(id, components...)
}
