package scene

import (
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
)

// Glue implements interop.Boundary over a Scene.
//
// Presence queries answer absence for ids that are not live. Accessors panic with an
// *interop.ContractViolation wrapping interop.ErrStaleEntity for ids that are not live
// and interop.ErrMissingComponent for live entities without the capability.
type Glue struct {
	scene *Scene
}

var _ interop.Boundary = (*Glue)(nil)

// NewGlue returns the boundary for s without tracing.
func NewGlue(s *Scene) *Glue {
	return &Glue{scene: s}
}

func access[T any](g *Glue, call string, id interop.EntityID) *T {
	if !g.scene.storage.Exists(id) {
		panic(interop.Violation(call, id, interop.ErrStaleEntity))
	}
	c := Read[T](g.scene.storage, id)
	if c == nil {
		panic(interop.Violation(call, id, interop.ErrMissingComponent))
	}
	return c
}

func (g *Glue) Version() uint32 {
	return interop.Version
}

func (g *Glue) HasComponent(id interop.EntityID, kind interop.Kind) bool {
	t, ok := g.scene.kindType(kind)
	if !ok {
		return false
	}
	return g.scene.storage.HasComponent(id, t)
}

func (g *Glue) FindEntityByName(name string) interop.EntityID {
	return g.scene.FindEntityByName(name)
}

func (g *Glue) ScriptInstance(id interop.EntityID) (interop.Instance, bool) {
	if !g.scene.storage.Exists(id) {
		return interop.Instance{}, false
	}
	return g.scene.engine.Instance(id)
}

func (g *Glue) TransformPosition(id interop.EntityID) vmath.Vector3 {
	return access[TransformComponent](g, "TransformPosition", id).Translation
}

func (g *Glue) SetTransformPosition(id interop.EntityID, v vmath.Vector3) {
	access[TransformComponent](g, "SetTransformPosition", id).Translation = v
}

func (g *Glue) TransformRotation(id interop.EntityID) vmath.Vector3 {
	return access[TransformComponent](g, "TransformRotation", id).Rotation
}

func (g *Glue) SetTransformRotation(id interop.EntityID, v vmath.Vector3) {
	access[TransformComponent](g, "SetTransformRotation", id).Rotation = v
}

func (g *Glue) TransformScale(id interop.EntityID) vmath.Vector3 {
	return access[TransformComponent](g, "TransformScale", id).Scale
}

func (g *Glue) SetTransformScale(id interop.EntityID, v vmath.Vector3) {
	access[TransformComponent](g, "SetTransformScale", id).Scale = v
}

func (g *Glue) ApplyLinearImpulse(id interop.EntityID, impulse, worldPoint vmath.Vector2, wake bool) {
	rb := access[RigidBody2DComponent](g, "ApplyLinearImpulse", id)
	tc := access[TransformComponent](g, "ApplyLinearImpulse", id)
	applyImpulse(tc, rb, impulse, &worldPoint, wake)
}

func (g *Glue) ApplyLinearImpulseToCenter(id interop.EntityID, impulse vmath.Vector2, wake bool) {
	rb := access[RigidBody2DComponent](g, "ApplyLinearImpulseToCenter", id)
	tc := access[TransformComponent](g, "ApplyLinearImpulseToCenter", id)
	applyImpulse(tc, rb, impulse, nil, wake)
}

func (g *Glue) LinearVelocity(id interop.EntityID) vmath.Vector2 {
	return access[RigidBody2DComponent](g, "LinearVelocity", id).Velocity
}

func (g *Glue) BodyType(id interop.EntityID) interop.BodyType {
	return access[RigidBody2DComponent](g, "BodyType", id).Type
}

func (g *Glue) SetBodyType(id interop.EntityID, t interop.BodyType) {
	setBodyType(access[RigidBody2DComponent](g, "SetBodyType", id), t)
}

func (g *Glue) SpriteColor(id interop.EntityID) vmath.Color {
	return access[SpriteRendererComponent](g, "SpriteColor", id).Color
}

func (g *Glue) SetSpriteColor(id interop.EntityID, c vmath.Color) {
	access[SpriteRendererComponent](g, "SetSpriteColor", id).Color = c
}

func (g *Glue) Text(id interop.EntityID) string {
	return access[TextComponent](g, "Text", id).TextString
}

func (g *Glue) SetText(id interop.EntityID, s string) {
	access[TextComponent](g, "SetText", id).TextString = s
}

func (g *Glue) TextKerning(id interop.EntityID) float32 {
	return access[TextComponent](g, "TextKerning", id).Kerning
}

func (g *Glue) SetTextKerning(id interop.EntityID, k float32) {
	access[TextComponent](g, "SetTextKerning", id).Kerning = k
}

func (g *Glue) TextLineSpacing(id interop.EntityID) float32 {
	return access[TextComponent](g, "TextLineSpacing", id).LineSpacing
}

func (g *Glue) SetTextLineSpacing(id interop.EntityID, s float32) {
	access[TextComponent](g, "SetTextLineSpacing", id).LineSpacing = s
}

func (g *Glue) TextColor(id interop.EntityID) vmath.Color {
	return access[TextComponent](g, "TextColor", id).Color
}

func (g *Glue) SetTextColor(id interop.EntityID, c vmath.Color) {
	access[TextComponent](g, "SetTextColor", id).Color = c
}
