package scene

import (
	"reflect"

	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
)

// IDComponent carries the entity's stable id.
type IDComponent struct {
	ID interop.EntityID
}

// TagComponent carries the entity's name. Names need not be unique.
type TagComponent struct {
	Tag string
}

// TransformComponent positions an entity. Rotation holds Euler angles in radians.
type TransformComponent struct {
	Translation vmath.Vector3
	Rotation    vmath.Vector3
	Scale       vmath.Vector3
}

// Transform returns the aggregate value used to derive direction vectors.
func (t *TransformComponent) Transform() vmath.Transform {
	return vmath.NewTransform(t.Translation, t.Rotation, t.Scale)
}

type SpriteRendererComponent struct {
	Color        vmath.Color
	TilingFactor float32
}

// RigidBody2DComponent is a body simulated by PhysicsSystem. Velocity, AngularVelocity
// and Awake are runtime state and are not serialized.
type RigidBody2DComponent struct {
	Type          interop.BodyType
	FixedRotation bool
	Mass          float32
	GravityScale  float32

	Velocity        vmath.Vector2
	AngularVelocity float32
	Awake           bool
	sleepTime       float32
}

// NewRigidBody2D returns an awake body with unit mass and unit gravity scale.
func NewRigidBody2D(t interop.BodyType) RigidBody2DComponent {
	return RigidBody2DComponent{Type: t, Mass: 1, GravityScale: 1, Awake: true}
}

type TextComponent struct {
	TextString  string
	Color       vmath.Color
	Kerning     float32
	LineSpacing float32
}

// ScriptComponent binds the entity to a behavior class registered with the ScriptEngine.
type ScriptComponent struct {
	ClassName string
}

// RegisterBuiltinComponents registers every component type the scene itself uses.
func RegisterBuiltinComponents(r *ComponentRegistry) {
	RegisterComponent[IDComponent](r)
	RegisterComponent[TagComponent](r)
	RegisterComponent[TransformComponent](r)
	RegisterComponent[SpriteRendererComponent](r)
	RegisterComponent[RigidBody2DComponent](r)
	RegisterComponent[TextComponent](r)
	RegisterComponent[ScriptComponent](r)
}

func builtinKinds() map[interop.Kind]reflect.Type {
	return map[interop.Kind]reflect.Type{
		interop.KindTransform:      reflect.TypeFor[TransformComponent](),
		interop.KindRigidBody2D:    reflect.TypeFor[RigidBody2DComponent](),
		interop.KindSpriteRenderer: reflect.TypeFor[SpriteRendererComponent](),
		interop.KindText:           reflect.TypeFor[TextComponent](),
	}
}
