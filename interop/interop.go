// Package interop defines the synchronous call surface between behavior code and the
// native runtime that owns entities and their components.
//
// Every capability operation is one method on Boundary. A call blocks until the
// runtime has answered, and calls issued from one behavior invocation are observed by
// the runtime in program order. Nothing on this surface is cached: each read reflects
// the runtime's current state and each write takes effect before the call returns.
package interop

import (
	"github.com/pkg/errors"
)

// Version identifies the shape of the Boundary method set. A runtime built against a
// different surface reports a different number and is refused by CheckVersion.
const Version uint32 = 3

// EntityID is the stable numeric identity the runtime assigns to an entity.
type EntityID uint64

// NoEntity is the sentinel identity. It never names a live entity.
const NoEntity EntityID = 0

// IsNil reports whether id is the sentinel.
func (id EntityID) IsNil() bool {
	return id == NoEntity
}

// Instance is the behavior bound to an entity. Class is the registered class name and
// serves as the discriminator; Value is the behavior object itself.
type Instance struct {
	Class string
	Value any
}

// CheckVersion refuses a boundary whose call surface differs from the one this package
// was compiled against.
func CheckVersion(b Boundary) error {
	if v := b.Version(); v != Version {
		return errors.Wrapf(ErrVersionMismatch, "runtime reports %d, expected %d", v, Version)
	}
	return nil
}
