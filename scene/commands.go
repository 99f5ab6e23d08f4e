package scene

import (
	"reflect"

	"github.com/plus3/scriptglue/interop"
	"go.uber.org/multierr"
)

// Commands buffers structural changes requested while a frame is running. They are
// applied in the order they were recorded when the frame ends, so entity handles stay
// valid for the rest of the frame.
type Commands struct {
	queue []command
}

type commandOp uint8

const (
	opSpawn commandOp = iota
	opDelete
	opAdd
	opRemove
	opDefer
)

type command struct {
	op         commandOp
	entity     interop.EntityID
	components []any
	compType   reflect.Type
	fn         func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues creation of an entity under id.
func (c *Commands) Spawn(id interop.EntityID, components ...any) {
	c.queue = append(c.queue, command{op: opSpawn, entity: id, components: components})
}

// Delete queues removal of an entity.
func (c *Commands) Delete(id interop.EntityID) {
	c.queue = append(c.queue, command{op: opDelete, entity: id})
}

// AddComponent queues attaching component to id.
func (c *Commands) AddComponent(id interop.EntityID, component any) {
	c.queue = append(c.queue, command{op: opAdd, entity: id, components: []any{component}})
}

// RemoveComponent queues detaching the component of type t from id.
func (c *Commands) RemoveComponent(id interop.EntityID, t reflect.Type) {
	c.queue = append(c.queue, command{op: opRemove, entity: id, compType: t})
}

// Defer queues fn to run after the structural changes recorded before it.
func (c *Commands) Defer(fn func()) {
	c.queue = append(c.queue, command{op: opDefer, fn: fn})
}

// Len is the number of pending commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush applies every pending command to storage and empties the buffer. Commands that
// target an entity which is no longer live are skipped.
//
// A contract violation raised by a deferred function does not stop the flush: the
// remaining commands still apply and the violations are returned together.
func (c *Commands) Flush(storage *Storage) error {
	var err error
	// Deferred functions may queue more commands; those run in the same flush.
	for i := 0; i < len(c.queue); i++ {
		cmd := c.queue[i]
		switch cmd.op {
		case opSpawn:
			if !storage.Exists(cmd.entity) {
				storage.Spawn(cmd.entity, cmd.components...)
			}
		case opDelete:
			storage.Delete(cmd.entity)
		case opAdd:
			storage.AddComponent(cmd.entity, cmd.components[0])
		case opRemove:
			storage.RemoveComponent(cmd.entity, cmd.compType)
		case opDefer:
			err = multierr.Append(err, runDeferred(cmd.fn))
		}
	}
	c.Discard()
	return err
}

func runDeferred(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		v, ok := interop.RecoveredViolation(r)
		if !ok {
			panic(r)
		}
		err = v
	}()
	fn()
	return nil
}

// Discard drops every pending command without applying it.
func (c *Commands) Discard() {
	clear(c.queue)
	c.queue = c.queue[:0]
}
