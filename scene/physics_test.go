package scene_test

import (
	"testing"

	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/scene"
	"github.com/plus3/scriptglue/script"
	"github.com/plus3/scriptglue/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBody(s *scene.Scene, t interop.BodyType, mass float32) interop.EntityID {
	id := s.CreateEntity("Body")
	rb := scene.NewRigidBody2D(t)
	rb.Mass = mass
	rb.GravityScale = 0
	s.AddComponent(id, rb)
	return id
}

func rigidBody(t *testing.T, s *scene.Scene, id interop.EntityID) script.RigidBody2D {
	t.Helper()
	rb, ok := script.Get[script.RigidBody2D](s.Bridge().Entity(id))
	require.True(t, ok)
	return rb
}

func TestImpulseChangesVelocityByMass(t *testing.T) {
	s := scene.New()
	id := newBody(s, interop.BodyDynamic, 2)
	require.NoError(t, s.OnRuntimeStart())

	rb := rigidBody(t, s, id)
	rb.ApplyLinearImpulse(vmath.Vec2(5, 0))
	assert.Equal(t, vmath.Vec2(2.5, 0), rb.LinearVelocity())

	require.NoError(t, s.OnUpdateRuntime(0.5))
	assert.InDelta(t, 1.25, scene.Component[scene.TransformComponent](s, id).Translation.X, 1e-6)
}

func TestImpulseIgnoredByNonDynamicBodies(t *testing.T) {
	for _, bt := range []interop.BodyType{interop.BodyStatic, interop.BodyKinematic} {
		t.Run(bt.String(), func(t *testing.T) {
			s := scene.New()
			id := newBody(s, bt, 1)
			require.NoError(t, s.OnRuntimeStart())

			rb := rigidBody(t, s, id)
			rb.ApplyLinearImpulse(vmath.Vec2(5, 0))
			assert.Equal(t, vmath.Vector2Zero, rb.LinearVelocity())
			assert.Equal(t, bt, rb.BodyType())
		})
	}
}

func TestSleepingBodyHonorsWake(t *testing.T) {
	s := scene.New(scene.WithPhysics(scene.PhysicsSettings{SleepSpeed: 0.01, TimeToSleep: 0.5}))
	id := newBody(s, interop.BodyDynamic, 1)
	require.NoError(t, s.OnRuntimeStart())

	require.NoError(t, s.OnUpdateRuntime(0.3))
	require.NoError(t, s.OnUpdateRuntime(0.3))
	body := scene.Component[scene.RigidBody2DComponent](s, id)
	require.False(t, body.Awake, "resting body falls asleep")

	rb := rigidBody(t, s, id)
	rb.ApplyLinearImpulse(vmath.Vec2(5, 0), script.Wake(false))
	assert.Equal(t, vmath.Vector2Zero, rb.LinearVelocity())
	assert.False(t, body.Awake)

	rb.ApplyLinearImpulse(vmath.Vec2(5, 0))
	assert.Equal(t, vmath.Vec2(5, 0), rb.LinearVelocity())
	assert.True(t, body.Awake)
}

func TestPointImpulseSpins(t *testing.T) {
	s := scene.New()
	id := newBody(s, interop.BodyDynamic, 1)
	require.NoError(t, s.OnRuntimeStart())

	rb := rigidBody(t, s, id)
	rb.ApplyLinearImpulse(vmath.Vec2(1, 0), script.AtPoint(vmath.Vec2(0, 1)))
	body := scene.Component[scene.RigidBody2DComponent](s, id)
	assert.Equal(t, vmath.Vec2(1, 0), body.Velocity)
	assert.InDelta(t, -6, body.AngularVelocity, 1e-4)

	body.AngularVelocity = 0
	body.FixedRotation = true
	rb.ApplyLinearImpulse(vmath.Vec2(1, 0), script.AtPoint(vmath.Vec2(0, 1)))
	assert.Zero(t, body.AngularVelocity)
}

func TestGravityIntegration(t *testing.T) {
	s := scene.New()
	id := s.CreateEntity("Faller")
	s.AddComponent(id, scene.NewRigidBody2D(interop.BodyDynamic))
	require.NoError(t, s.OnRuntimeStart())

	require.NoError(t, s.OnUpdateRuntime(1))
	body := scene.Component[scene.RigidBody2DComponent](s, id)
	assert.InDelta(t, -9.8, body.Velocity.Y, 1e-5)
	assert.InDelta(t, -9.8, scene.Component[scene.TransformComponent](s, id).Translation.Y, 1e-5)
}

func TestSetBodyTypeStopsStaticBodies(t *testing.T) {
	s := scene.New()
	id := newBody(s, interop.BodyDynamic, 1)
	require.NoError(t, s.OnRuntimeStart())

	rb := rigidBody(t, s, id)
	rb.ApplyLinearImpulse(vmath.Vec2(3, 4))
	rb.SetBodyType(interop.BodyStatic)
	assert.Equal(t, interop.BodyStatic, rb.BodyType())
	assert.Equal(t, vmath.Vector2Zero, rb.LinearVelocity())

	require.NoError(t, s.OnUpdateRuntime(1))
	assert.Equal(t, vmath.Vector3Zero, scene.Component[scene.TransformComponent](s, id).Translation)
}
