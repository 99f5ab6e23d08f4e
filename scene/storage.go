package scene

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
	"github.com/plus3/scriptglue/interop"
)

// Storage holds entity components grouped by archetype and indexes every entity by its
// stable id.
type Storage struct {
	registry    *ComponentRegistry
	archetypes  []*Archetype
	bySignature map[uint64]*Archetype
	locations   *intmap.Map[interop.EntityID, location]

	// creation order; entries whose seq no longer matches births are dead
	created []birth
	births  *intmap.Map[interop.EntityID, uint64]
	nextSeq uint64
	// open Entities iterations; created is not compacted while any is running
	iterating int

	singletons map[reflect.Type]any
	listeners  []func()
}

type birth struct {
	id  interop.EntityID
	seq uint64
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:    registry,
		bySignature: make(map[uint64]*Archetype),
		locations:   intmap.New[interop.EntityID, location](256),
		births:      intmap.New[interop.EntityID, uint64](256),
		singletons:  make(map[reflect.Type]any),
	}
}

// OnChange registers fn to run after every change to which entities exist or which
// component types they carry. Replacing a component in place is not such a change.
func (s *Storage) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Storage) changed() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	sig := signatureOf(types)
	if a, ok := s.bySignature[sig]; ok {
		return a
	}
	a := newArchetype(uint32(len(s.archetypes)), sig, types, s.registry)
	s.archetypes = append(s.archetypes, a)
	s.bySignature[sig] = a
	return a
}

// Spawn stores a new entity under id. It panics if id is the sentinel, already live, or
// if no components are given.
func (s *Storage) Spawn(id interop.EntityID, components ...any) {
	if id == interop.NoEntity {
		panic("cannot spawn the sentinel entity id")
	}
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	if s.locations.Has(id) {
		panic("entity id already in use")
	}

	types := make([]reflect.Type, 0, len(components))
	for _, c := range components {
		t := componentType(c)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)

	a := s.archetypeFor(types)
	slot := a.insert(id, components)
	s.locations.Put(id, newLocation(a.id, slot))

	s.nextSeq++
	s.births.Put(id, s.nextSeq)
	s.created = append(s.created, birth{id: id, seq: s.nextSeq})
	s.changed()
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id interop.EntityID) bool {
	return s.locations.Has(id)
}

// Len is the number of live entities.
func (s *Storage) Len() int {
	return s.locations.Len()
}

// Delete removes the entity and all its components. It reports false if id was not live.
func (s *Storage) Delete(id interop.EntityID) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	s.archetypes[loc.archetype()].remove(loc.slot())
	s.locations.Del(id)
	s.births.Del(id)

	if s.iterating == 0 && len(s.created) > 64 && s.births.Len() < len(s.created)/2 {
		s.pruneCreated()
	}
	s.changed()
	return true
}

func (s *Storage) pruneCreated() {
	live := s.created[:0]
	for _, b := range s.created {
		if seq, ok := s.births.Get(b.id); ok && seq == b.seq {
			live = append(live, b)
		}
	}
	clear(s.created[len(live):])
	s.created = live
}

// AddComponent attaches component to id, replacing a component of the same type if one
// is already present. It reports false if id is not live.
func (s *Storage) AddComponent(id interop.EntityID, component any) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	old := s.archetypes[loc.archetype()]
	t := componentType(component)

	if dst := old.get(loc.slot(), t); dst != nil {
		reflect.ValueOf(dst).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return true
	}

	types := make([]reflect.Type, 0, len(old.types)+1)
	types = append(types, old.types...)
	types = append(types, t)
	sortTypes(types)

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if typ == t {
			components = append(components, component)
		} else {
			components = append(components, old.get(loc.slot(), typ))
		}
	}
	s.migrate(id, loc, old, s.archetypeFor(types), components)
	return true
}

// RemoveComponent detaches the component of type t from id. Removing the last
// component deletes the entity.
func (s *Storage) RemoveComponent(id interop.EntityID, t reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	old := s.archetypes[loc.archetype()]
	if !old.Has(t) {
		return false
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != t {
			types = append(types, typ)
		}
	}
	if len(types) == 0 {
		return s.Delete(id)
	}

	components := make([]any, 0, len(types))
	for _, typ := range types {
		components = append(components, old.get(loc.slot(), typ))
	}
	s.migrate(id, loc, old, s.archetypeFor(types), components)
	return true
}

func (s *Storage) migrate(id interop.EntityID, loc location, from, to *Archetype, components []any) {
	slot := to.insert(id, components)
	from.remove(loc.slot())
	s.locations.Put(id, newLocation(to.id, slot))
	s.changed()
}

// GetComponent returns a pointer to the component of type t, or nil.
func (s *Storage) GetComponent(id interop.EntityID, t reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return s.archetypes[loc.archetype()].get(loc.slot(), t)
}

// HasComponent reports whether id is live and carries a component of type t.
func (s *Storage) HasComponent(id interop.EntityID, t reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	return s.archetypes[loc.archetype()].Has(t)
}

// Entities yields live entity ids in creation order. Entities may be deleted while
// iterating; entities spawned during the iteration are not yielded.
func (s *Storage) Entities() iter.Seq[interop.EntityID] {
	return func(yield func(interop.EntityID) bool) {
		s.iterating++
		defer func() { s.iterating-- }()
		for _, b := range s.created {
			if seq, ok := s.births.Get(b.id); !ok || seq != b.seq {
				continue
			}
			if !yield(b.id) {
				return
			}
		}
	}
}

// Archetypes yields archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

// Compact packs every archetype so that iteration skips no empty slots. Entity ids
// are unaffected.
func (s *Storage) Compact() {
	for _, a := range s.archetypes {
		for id, slot := range a.compact() {
			s.locations.Put(id, newLocation(a.id, slot))
		}
	}
	s.pruneCreated()
}

// AddSingleton stores a component that belongs to no entity. Adding a second value of
// the same type replaces the first in place.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.Indirect(reflect.ValueOf(value))
	if existing, ok := s.singletons[t]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = ptr.Interface()
}

func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

// ComponentReader is satisfied by Storage and Scene.
type ComponentReader interface {
	GetComponent(interop.EntityID, reflect.Type) any
}

// Read returns the T component of id, or nil.
func Read[T any](r ComponentReader, id interop.EntityID) *T {
	c, _ := r.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
