package scene

import (
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
)

// PhysicsSettings is the scene-wide singleton read by PhysicsSystem.
type PhysicsSettings struct {
	Gravity vmath.Vector2
	// Bodies slower than SleepSpeed for TimeToSleep seconds fall asleep.
	SleepSpeed  float32
	TimeToSleep float32
}

// DefaultPhysicsSettings uses earth gravity along -Y.
func DefaultPhysicsSettings() PhysicsSettings {
	return PhysicsSettings{
		Gravity:     vmath.Vec2(0, -9.8),
		SleepSpeed:  0.01,
		TimeToSleep: 0.5,
	}
}

// PhysicsSystem integrates rigid bodies. It is a minimal point-mass integrator with
// box inertia, not a collision solver.
type PhysicsSystem struct {
	Bodies Query[struct {
		*TransformComponent
		*RigidBody2DComponent
	}]
	Settings Singleton[PhysicsSettings]
}

func (s *PhysicsSystem) Execute(frame *Frame) {
	settings := s.Settings.Get()
	if settings == nil {
		defaults := DefaultPhysicsSettings()
		settings = &defaults
	}
	for body := range s.Bodies.Values() {
		step(body.TransformComponent, body.RigidBody2DComponent, settings, frame.DeltaTime)
	}
}

func step(tc *TransformComponent, rb *RigidBody2DComponent, settings *PhysicsSettings, dt float32) {
	switch rb.Type {
	case interop.BodyStatic:
		return
	case interop.BodyDynamic:
		if !rb.Awake {
			return
		}
		rb.Velocity = rb.Velocity.Add(settings.Gravity.Scale(rb.GravityScale * dt))
	}

	tc.Translation = tc.Translation.WithXY(tc.Translation.XY().Add(rb.Velocity.Scale(dt)))
	if !rb.FixedRotation {
		tc.Rotation.Z += rb.AngularVelocity * dt
	}

	if rb.Type != interop.BodyDynamic {
		return
	}
	speed := settings.SleepSpeed
	if rb.Velocity.LengthSquared() < speed*speed && rb.AngularVelocity*rb.AngularVelocity < speed*speed {
		rb.sleepTime += dt
		if settings.TimeToSleep > 0 && rb.sleepTime >= settings.TimeToSleep {
			rb.Awake = false
			rb.Velocity = vmath.Vector2Zero
			rb.AngularVelocity = 0
		}
	} else {
		rb.sleepTime = 0
	}
}

// applyImpulse changes the momentum of a dynamic body by j. A nil point applies it at
// the center of mass. Sleeping bodies ignore the impulse unless wake is set.
func applyImpulse(tc *TransformComponent, rb *RigidBody2DComponent, j vmath.Vector2, point *vmath.Vector2, wake bool) {
	if rb.Type != interop.BodyDynamic {
		return
	}
	if !rb.Awake {
		if !wake {
			return
		}
		rb.Awake = true
	}
	rb.sleepTime = 0

	m := rb.mass()
	rb.Velocity = rb.Velocity.Add(j.DivScalar(m))

	if point == nil || rb.FixedRotation {
		return
	}
	if inertia := boxInertia(m, tc.Scale.XY()); inertia > 0 {
		r := point.Sub(tc.Translation.XY())
		rb.AngularVelocity += (r.X*j.Y - r.Y*j.X) / inertia
	}
}

func (rb *RigidBody2DComponent) mass() float32 {
	if rb.Mass <= 0 {
		return 1
	}
	return rb.Mass
}

// boxInertia is the moment of inertia of a solid box with the given extents.
func boxInertia(m float32, size vmath.Vector2) float32 {
	return m * (size.X*size.X + size.Y*size.Y) / 12
}

// setBodyType switches the simulation mode. Static bodies lose their velocity.
func setBodyType(rb *RigidBody2DComponent, t interop.BodyType) {
	rb.Type = t
	if t == interop.BodyStatic {
		rb.Velocity = vmath.Vector2Zero
		rb.AngularVelocity = 0
	}
	rb.Awake = true
	rb.sleepTime = 0
}
