package scene

import (
	"cmp"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/scriptglue/interop"
)

// Archetype stores every entity that has exactly the same set of component types.
type Archetype struct {
	id        uint32
	signature uint64
	types     []reflect.Type
	columns   []columnStorage
	owners    *intmap.Map[uint32, interop.EntityID]
}

func newArchetype(id uint32, signature uint64, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:        id,
		signature: signature,
		types:     types,
		columns:   make([]columnStorage, len(types)),
		owners:    intmap.New[uint32, interop.EntityID](64),
	}

	for i, t := range types {
		factory := registry.factory(t)
		if factory == nil {
			panic("component type " + t.String() + " not registered")
		}
		a.columns[i] = factory()
	}
	return a
}

// ID is the archetype's position in its storage.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of the archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len is the number of entities in the archetype.
func (a *Archetype) Len() int {
	return a.owners.Len()
}

func (a *Archetype) column(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

func (a *Archetype) Has(t reflect.Type) bool {
	return a.column(t) >= 0
}

// insert stores components, which must match a.types one to one, and returns the slot.
func (a *Archetype) insert(owner interop.EntityID, components []any) uint32 {
	slot := -1
	for _, c := range components {
		col := a.column(componentType(c))
		if col < 0 {
			panic("component " + componentType(c).String() + " does not belong to archetype")
		}
		s := a.columns[col].Insert(c)
		if slot >= 0 && s != slot {
			panic("archetype columns out of sync")
		}
		slot = s
	}
	a.owners.Put(uint32(slot), owner)
	return uint32(slot)
}

func (a *Archetype) get(slot uint32, t reflect.Type) any {
	col := a.column(t)
	if col < 0 {
		return nil
	}
	return a.columns[col].At(int(slot))
}

func (a *Archetype) remove(slot uint32) {
	for _, col := range a.columns {
		col.Remove(int(slot))
	}
	a.owners.Del(slot)
}

func (a *Archetype) owner(slot uint32) interop.EntityID {
	id, _ := a.owners.Get(slot)
	return id
}

// compact closes the gaps left by removed entities and reports the new slot of every
// entity that moved.
func (a *Archetype) compact() map[interop.EntityID]uint32 {
	if len(a.columns) == 0 {
		return nil
	}

	moves := a.columns[0].Compact()
	for _, col := range a.columns[1:] {
		col.Compact()
	}

	relocated := make(map[interop.EntityID]uint32, len(moves))
	owners := intmap.New[uint32, interop.EntityID](max(len(moves), 64))
	for from, to := range moves {
		id, ok := a.owners.Get(uint32(from))
		if !ok {
			continue
		}
		owners.Put(uint32(to), id)
		if from != to {
			relocated[id] = uint32(to)
		}
	}
	a.owners = owners
	return relocated
}

// slots yields the occupied slots in ascending order.
func (a *Archetype) slots() func(yield func(uint32) bool) {
	return func(yield func(uint32) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Slots() {
			if !yield(uint32(slot)) {
				return
			}
		}
	}
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return cmp.Or(cmp.Compare(a.String(), b.String()), cmp.Compare(a.PkgPath(), b.PkgPath()))
	})
}

// signatureOf hashes a sorted type list. Equal sets always hash equal.
func signatureOf(types []reflect.Type) uint64 {
	h := xxhash.New()
	for _, t := range types {
		_, _ = h.WriteString(t.PkgPath())
		_, _ = h.WriteString(t.String())
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
