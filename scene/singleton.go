package scene

import "reflect"

// Singleton gives a System access to a component that belongs to no entity, such as
// physics settings. The Scheduler binds Singleton fields on Register.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, storing initializer (or the zero value) when
// the storage does not hold a T yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	s := &Singleton[T]{}
	s.bind(storage)
	return s
}

func (s *Singleton[T]) bind(storage *Storage) {
	s.storage = storage
	s.ptr = nil
}

func (s *Singleton[T]) refresh() {
	if s.ptr == nil && s.storage != nil {
		s.ptr, _ = s.storage.singleton(reflect.TypeFor[T]()).(*T)
	}
}

// Get returns the stored value, or nil if none has been added.
func (s *Singleton[T]) Get() *T {
	s.refresh()
	return s.ptr
}

// Exists reports whether a T has been added to the storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
