package interop

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrStaleEntity means the handle does not name a live entity in the current frame.
	ErrStaleEntity = errors.New("entity is not live")

	// ErrMissingComponent means the entity is live but lacks the accessed capability.
	ErrMissingComponent = errors.New("entity lacks component")

	// ErrVersionMismatch means the runtime implements a different call surface.
	ErrVersionMismatch = errors.New("call surface version mismatch")
)

// ContractViolation is the panic value raised by accessors called on a handle that
// breaks the liveness contract. Presence queries never raise it.
type ContractViolation struct {
	Call   string
	Entity EntityID
	Err    error
}

// Violation builds the panic value for a failed accessor call.
func Violation(call string, id EntityID, cause error) *ContractViolation {
	return &ContractViolation{Call: call, Entity: id, Err: cause}
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("%s(entity %d): %v", v.Call, uint64(v.Entity), v.Err)
}

func (v *ContractViolation) Unwrap() error {
	return v.Err
}

// RecoveredViolation converts a value obtained from recover into a ContractViolation.
// It reports false for any other panic value so the caller can re-panic.
func RecoveredViolation(r any) (*ContractViolation, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var v *ContractViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
