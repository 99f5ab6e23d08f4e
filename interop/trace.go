package interop

import (
	"github.com/plus3/scriptglue/vmath"
	"go.uber.org/zap"
)

// Trace wraps b so that every call is logged at debug level before it is forwarded.
// Calls are forwarded one at a time in the order they arrive.
func Trace(b Boundary, logger *zap.Logger) Boundary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tracer{next: b, log: logger.Named("boundary")}
}

type tracer struct {
	next Boundary
	log  *zap.Logger
}

func (t *tracer) call(op string, id EntityID, fields ...zap.Field) {
	if ce := t.log.Check(zap.DebugLevel, op); ce != nil {
		ce.Write(append([]zap.Field{zap.Uint64("entity", uint64(id))}, fields...)...)
	}
}

func (t *tracer) Version() uint32 {
	return t.next.Version()
}

func (t *tracer) HasComponent(id EntityID, kind Kind) bool {
	t.call("HasComponent", id, zap.Stringer("kind", kind))
	return t.next.HasComponent(id, kind)
}

func (t *tracer) FindEntityByName(name string) EntityID {
	t.call("FindEntityByName", NoEntity, zap.String("name", name))
	return t.next.FindEntityByName(name)
}

func (t *tracer) ScriptInstance(id EntityID) (Instance, bool) {
	t.call("ScriptInstance", id)
	return t.next.ScriptInstance(id)
}

func (t *tracer) TransformPosition(id EntityID) vmath.Vector3 {
	t.call("TransformPosition", id)
	return t.next.TransformPosition(id)
}

func (t *tracer) SetTransformPosition(id EntityID, v vmath.Vector3) {
	t.call("SetTransformPosition", id, zap.Stringer("value", v))
	t.next.SetTransformPosition(id, v)
}

func (t *tracer) TransformRotation(id EntityID) vmath.Vector3 {
	t.call("TransformRotation", id)
	return t.next.TransformRotation(id)
}

func (t *tracer) SetTransformRotation(id EntityID, v vmath.Vector3) {
	t.call("SetTransformRotation", id, zap.Stringer("value", v))
	t.next.SetTransformRotation(id, v)
}

func (t *tracer) TransformScale(id EntityID) vmath.Vector3 {
	t.call("TransformScale", id)
	return t.next.TransformScale(id)
}

func (t *tracer) SetTransformScale(id EntityID, v vmath.Vector3) {
	t.call("SetTransformScale", id, zap.Stringer("value", v))
	t.next.SetTransformScale(id, v)
}

func (t *tracer) ApplyLinearImpulse(id EntityID, impulse, worldPoint vmath.Vector2, wake bool) {
	t.call("ApplyLinearImpulse", id,
		zap.Stringer("impulse", impulse), zap.Stringer("point", worldPoint), zap.Bool("wake", wake))
	t.next.ApplyLinearImpulse(id, impulse, worldPoint, wake)
}

func (t *tracer) ApplyLinearImpulseToCenter(id EntityID, impulse vmath.Vector2, wake bool) {
	t.call("ApplyLinearImpulseToCenter", id, zap.Stringer("impulse", impulse), zap.Bool("wake", wake))
	t.next.ApplyLinearImpulseToCenter(id, impulse, wake)
}

func (t *tracer) LinearVelocity(id EntityID) vmath.Vector2 {
	t.call("LinearVelocity", id)
	return t.next.LinearVelocity(id)
}

func (t *tracer) BodyType(id EntityID) BodyType {
	t.call("BodyType", id)
	return t.next.BodyType(id)
}

func (t *tracer) SetBodyType(id EntityID, bt BodyType) {
	t.call("SetBodyType", id, zap.Stringer("value", bt))
	t.next.SetBodyType(id, bt)
}

func (t *tracer) SpriteColor(id EntityID) vmath.Color {
	t.call("SpriteColor", id)
	return t.next.SpriteColor(id)
}

func (t *tracer) SetSpriteColor(id EntityID, c vmath.Color) {
	t.call("SetSpriteColor", id, zap.Stringer("value", c))
	t.next.SetSpriteColor(id, c)
}

func (t *tracer) Text(id EntityID) string {
	t.call("Text", id)
	return t.next.Text(id)
}

func (t *tracer) SetText(id EntityID, s string) {
	t.call("SetText", id, zap.String("value", s))
	t.next.SetText(id, s)
}

func (t *tracer) TextKerning(id EntityID) float32 {
	t.call("TextKerning", id)
	return t.next.TextKerning(id)
}

func (t *tracer) SetTextKerning(id EntityID, k float32) {
	t.call("SetTextKerning", id, zap.Float32("value", k))
	t.next.SetTextKerning(id, k)
}

func (t *tracer) TextLineSpacing(id EntityID) float32 {
	t.call("TextLineSpacing", id)
	return t.next.TextLineSpacing(id)
}

func (t *tracer) SetTextLineSpacing(id EntityID, s float32) {
	t.call("SetTextLineSpacing", id, zap.Float32("value", s))
	t.next.SetTextLineSpacing(id, s)
}

func (t *tracer) TextColor(id EntityID) vmath.Color {
	t.call("TextColor", id)
	return t.next.TextColor(id)
}

func (t *tracer) SetTextColor(id EntityID, c vmath.Color) {
	t.call("SetTextColor", id, zap.Stringer("value", c))
	t.next.SetTextColor(id, c)
}
