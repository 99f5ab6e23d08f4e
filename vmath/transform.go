package vmath

// Transform aggregates a position, an Euler rotation in radians and a scale.
// Direction vectors are derived on every call and never cached.
type Transform struct {
	Position Vector3
	Rotation Vector3
	Scale    Vector3
}

func NewTransform(position, rotation, scale Vector3) Transform {
	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

// Quaternion returns the rotation built from t.Rotation.
func (t Transform) Quaternion() Quaternion {
	return QuaternionFromEuler(t.Rotation)
}

// Up is the world up axis rotated by t.Rotation.
func (t Transform) Up() Vector3 {
	return t.Quaternion().Rotate(Vector3Up)
}

// Right is the world right axis rotated by t.Rotation.
func (t Transform) Right() Vector3 {
	return t.Quaternion().Rotate(Vector3Right)
}

// Forward is the world forward axis rotated by t.Rotation.
func (t Transform) Forward() Vector3 {
	return t.Quaternion().Rotate(Vector3Forward)
}
