package scene

import (
	"iter"
	"math/bits"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Every type stored in a
// Storage must be registered first; using an unregistered type panics.
type ComponentRegistry struct {
	factories map[reflect.Type]func() columnStorage
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() columnStorage),
	}
}

// RegisterComponent makes T storable.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() columnStorage {
		return &column[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) factory(t reflect.Type) func() columnStorage {
	return r.factories[t]
}

// columnStorage is a type-erased column of one component type.
type columnStorage interface {
	Insert(value any) int
	Remove(slot int)
	At(slot int) any
	Occupied(slot int) bool
	Compact() map[int]int
	Slots() iter.Seq[int]
	Cap() int
}

const pageSize = 64

// page holds pageSize slots; bit i of used marks slot i as occupied.
type page[T any] struct {
	items [pageSize]T
	used  uint64
}

// column stores components in fixed pages so pointers handed out by At stay valid
// until the slot is removed or the column is compacted.
type column[T any] struct {
	pages []*page[T]
	free  []int
	next  int
	count int
}

func (c *column[T]) Insert(value any) int {
	var item T
	switch v := value.(type) {
	case *T:
		item = *v
	case T:
		item = v
	default:
		return -1
	}

	var slot int
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		slot = c.next
		c.next++
		if slot/pageSize >= len(c.pages) {
			c.pages = append(c.pages, &page[T]{})
		}
	}

	p := c.pages[slot/pageSize]
	p.items[slot%pageSize] = item
	p.used |= 1 << (slot % pageSize)
	c.count++
	return slot
}

func (c *column[T]) Occupied(slot int) bool {
	if slot < 0 || slot >= c.next {
		return false
	}
	return c.pages[slot/pageSize].used&(1<<(slot%pageSize)) != 0
}

// At returns a *T for an occupied slot and nil otherwise.
func (c *column[T]) At(slot int) any {
	if !c.Occupied(slot) {
		return nil
	}
	return &c.pages[slot/pageSize].items[slot%pageSize]
}

func (c *column[T]) Remove(slot int) {
	if !c.Occupied(slot) {
		return
	}
	p := c.pages[slot/pageSize]
	var zero T
	p.items[slot%pageSize] = zero
	p.used &^= 1 << (slot % pageSize)
	c.free = append(c.free, slot)
	c.count--
}

// Compact moves occupied slots to the front and returns old slot -> new slot.
func (c *column[T]) Compact() map[int]int {
	moved := make(map[int]int, c.count)
	pages := make([]*page[T], 0, (c.count+pageSize-1)/pageSize)

	write := 0
	for read := range c.Slots() {
		if write/pageSize >= len(pages) {
			pages = append(pages, &page[T]{})
		}
		dst := pages[write/pageSize]
		dst.items[write%pageSize] = c.pages[read/pageSize].items[read%pageSize]
		dst.used |= 1 << (write % pageSize)
		moved[read] = write
		write++
	}

	c.pages = pages
	c.free = nil
	c.next = write
	return moved
}

// Slots yields occupied slots in ascending order.
func (c *column[T]) Slots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for pi, p := range c.pages {
			used := p.used
			for used != 0 {
				bit := bits.TrailingZeros64(used)
				used &^= 1 << bit
				if !yield(pi*pageSize + bit) {
					return
				}
			}
		}
	}
}

func (c *column[T]) Cap() int {
	return len(c.pages) * pageSize
}
