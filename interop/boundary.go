package interop

import "github.com/plus3/scriptglue/vmath"

// Boundary is the set of native operations reachable from behavior code.
//
// Presence queries (HasComponent, FindEntityByName, ScriptInstance) accept any id and
// answer absence for one that is not live. Every other method is an accessor: it
// requires an id that is live for the current frame and whose entity has the accessed
// capability, and panics with a *ContractViolation otherwise.
type Boundary interface {
	// Version reports the call surface the implementation was built against.
	Version() uint32

	HasComponent(id EntityID, kind Kind) bool
	// FindEntityByName returns NoEntity when no live entity carries the name.
	FindEntityByName(name string) EntityID
	// ScriptInstance returns the behavior bound to id, if any.
	ScriptInstance(id EntityID) (Instance, bool)

	TransformPosition(id EntityID) vmath.Vector3
	SetTransformPosition(id EntityID, v vmath.Vector3)
	TransformRotation(id EntityID) vmath.Vector3
	SetTransformRotation(id EntityID, v vmath.Vector3)
	TransformScale(id EntityID) vmath.Vector3
	SetTransformScale(id EntityID, v vmath.Vector3)

	ApplyLinearImpulse(id EntityID, impulse, worldPoint vmath.Vector2, wake bool)
	ApplyLinearImpulseToCenter(id EntityID, impulse vmath.Vector2, wake bool)
	LinearVelocity(id EntityID) vmath.Vector2
	BodyType(id EntityID) BodyType
	SetBodyType(id EntityID, t BodyType)

	SpriteColor(id EntityID) vmath.Color
	SetSpriteColor(id EntityID, c vmath.Color)

	Text(id EntityID) string
	SetText(id EntityID, s string)
	TextKerning(id EntityID) float32
	SetTextKerning(id EntityID, k float32)
	TextLineSpacing(id EntityID) float32
	SetTextLineSpacing(id EntityID, s float32)
	TextColor(id EntityID) vmath.Color
	SetTextColor(id EntityID, c vmath.Color)
}
