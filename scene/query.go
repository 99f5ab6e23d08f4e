package scene

import (
	"iter"

	"github.com/plus3/scriptglue/interop"
)

// Query is a View whose matches are collected once per frame. Declare it as a field of
// a System; the Scheduler binds it on Register and refreshes it before every frame.
//
// Structural changes are deferred to the end of the frame, so the snapshot stays
// accurate for the whole frame.
type Query[T any] struct {
	view     *View[T]
	storage  *Storage
	matched  []*Archetype
	seen     int
	ids      []interop.EntityID
	items    []T
	prepared bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.bind(storage)
	return q
}

func (q *Query[T]) bind(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.seen = 0
	q.prepared = false
}

// Execute rebuilds the snapshot from storage.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.seen {
		for _, a := range q.storage.archetypes[q.seen:] {
			if q.view.matches(a) {
				q.matched = append(q.matched, a)
			}
		}
		q.seen = n
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.matched {
		q.view.iterArchetype(a, func(id interop.EntityID, item T) bool {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
			return true
		})
	}
	q.prepared = true
}

func (q *Query[T]) refresh() {
	q.Execute()
}

// Len is the number of matches in the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.ids)
}

// Iter yields the snapshot. It panics if Execute has not run.
func (q *Query[T]) Iter() iter.Seq2[interop.EntityID, T] {
	if !q.prepared {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(interop.EntityID, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Values yields the snapshot without ids. It panics if Execute has not run.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.prepared {
		panic("Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}
