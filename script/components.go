package script

import (
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
)

// Component is a capability view over an entity.
type Component interface {
	Kind() interop.Kind
	Entity() Entity
}

var (
	_ Component = Transform{}
	_ Component = RigidBody2D{}
	_ Component = SpriteRenderer{}
	_ Component = Text{}
)

// Transform views the position, Euler rotation and scale of an entity.
type Transform struct {
	entity Entity
}

func (Transform) Kind() interop.Kind { return interop.KindTransform }
func (t Transform) Entity() Entity  { return t.entity }

func (t Transform) Position() vmath.Vector3 {
	return t.entity.boundary("TransformPosition").TransformPosition(t.entity.id)
}

func (t Transform) SetPosition(v vmath.Vector3) {
	t.entity.boundary("SetTransformPosition").SetTransformPosition(t.entity.id, v)
}

// Rotation is in radians.
func (t Transform) Rotation() vmath.Vector3 {
	return t.entity.boundary("TransformRotation").TransformRotation(t.entity.id)
}

func (t Transform) SetRotation(v vmath.Vector3) {
	t.entity.boundary("SetTransformRotation").SetTransformRotation(t.entity.id, v)
}

func (t Transform) Scale() vmath.Vector3 {
	return t.entity.boundary("TransformScale").TransformScale(t.entity.id)
}

func (t Transform) SetScale(v vmath.Vector3) {
	t.entity.boundary("SetTransformScale").SetTransformScale(t.entity.id, v)
}

// Transform snapshots all three fields into a value whose direction vectors can be
// derived locally.
func (t Transform) Transform() vmath.Transform {
	return vmath.NewTransform(t.Position(), t.Rotation(), t.Scale())
}

// RigidBody2D views the 2D physics body of an entity.
type RigidBody2D struct {
	entity Entity
}

func (RigidBody2D) Kind() interop.Kind { return interop.KindRigidBody2D }
func (r RigidBody2D) Entity() Entity  { return r.entity }

func (r RigidBody2D) BodyType() interop.BodyType {
	return r.entity.boundary("BodyType").BodyType(r.entity.id)
}

func (r RigidBody2D) SetBodyType(t interop.BodyType) {
	r.entity.boundary("SetBodyType").SetBodyType(r.entity.id, t)
}

func (r RigidBody2D) LinearVelocity() vmath.Vector2 {
	return r.entity.boundary("LinearVelocity").LinearVelocity(r.entity.id)
}

// ImpulseOption adjusts a single ApplyLinearImpulse call.
type ImpulseOption func(*impulse)

type impulse struct {
	point    vmath.Vector2
	hasPoint bool
	wake     bool
}

// AtPoint applies the impulse at a world point instead of the center of mass.
func AtPoint(worldPoint vmath.Vector2) ImpulseOption {
	return func(i *impulse) {
		i.point = worldPoint
		i.hasPoint = true
	}
}

// Wake controls whether a sleeping body is woken. Bodies are woken by default.
func Wake(wake bool) ImpulseOption {
	return func(i *impulse) {
		i.wake = wake
	}
}

// ApplyLinearImpulse changes the body's momentum by j.
func (r RigidBody2D) ApplyLinearImpulse(j vmath.Vector2, opts ...ImpulseOption) {
	params := impulse{wake: true}
	for _, opt := range opts {
		opt(&params)
	}

	if params.hasPoint {
		r.entity.boundary("ApplyLinearImpulse").ApplyLinearImpulse(r.entity.id, j, params.point, params.wake)
		return
	}
	r.entity.boundary("ApplyLinearImpulseToCenter").ApplyLinearImpulseToCenter(r.entity.id, j, params.wake)
}

// SpriteRenderer views the sprite tint of an entity.
type SpriteRenderer struct {
	entity Entity
}

func (SpriteRenderer) Kind() interop.Kind { return interop.KindSpriteRenderer }
func (s SpriteRenderer) Entity() Entity  { return s.entity }

func (s SpriteRenderer) Color() vmath.Color {
	return s.entity.boundary("SpriteColor").SpriteColor(s.entity.id)
}

func (s SpriteRenderer) SetColor(c vmath.Color) {
	s.entity.boundary("SetSpriteColor").SetSpriteColor(s.entity.id, c)
}

// Text views the text label of an entity.
type Text struct {
	entity Entity
}

func (Text) Kind() interop.Kind { return interop.KindText }
func (t Text) Entity() Entity  { return t.entity }

func (t Text) Text() string {
	return t.entity.boundary("Text").Text(t.entity.id)
}

func (t Text) SetText(s string) {
	t.entity.boundary("SetText").SetText(t.entity.id, s)
}

func (t Text) Kerning() float32 {
	return t.entity.boundary("TextKerning").TextKerning(t.entity.id)
}

func (t Text) SetKerning(k float32) {
	t.entity.boundary("SetTextKerning").SetTextKerning(t.entity.id, k)
}

func (t Text) LineSpacing() float32 {
	return t.entity.boundary("TextLineSpacing").TextLineSpacing(t.entity.id)
}

func (t Text) SetLineSpacing(s float32) {
	t.entity.boundary("SetTextLineSpacing").SetTextLineSpacing(t.entity.id, s)
}

func (t Text) Color() vmath.Color {
	return t.entity.boundary("TextColor").TextColor(t.entity.id)
}

func (t Text) SetColor(c vmath.Color) {
	t.entity.boundary("SetTextColor").SetTextColor(t.entity.id, c)
}
