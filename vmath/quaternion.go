package vmath

import "fmt"

// Quaternion is a rotation (W, X, Y, Z).
type Quaternion struct {
	W, X, Y, Z float32
}

// QuaternionIdentity is the rotation that leaves every vector unchanged.
var QuaternionIdentity = Quaternion{W: 1}

// QuaternionFromEuler builds a rotation from Euler angles in radians, composed X, then Y,
// then Z. The term layout matches the native runtime so derived axes agree bit for bit.
func QuaternionFromEuler(euler Vector3) Quaternion {
	half := euler.Scale(0.5)
	c := Cos3(half)
	s := Sin3(half)

	return Quaternion{
		W: c.X*c.Y*c.Z + s.X*s.Y*s.Z,
		X: s.X*c.Y*c.Z - c.X*s.Y*s.Z,
		Y: c.X*s.Y*c.Z + s.X*c.Y*s.Z,
		Z: c.X*c.Y*s.Z - s.X*s.Y*c.Z,
	}
}

// Rotate applies q to v using the double cross product form
// v + 2*(W*(qv × v) + qv × (qv × v)).
func (q Quaternion) Rotate(v Vector3) Vector3 {
	qv := Vector3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(q.W).Add(uuv).Scale(2))
}

// Mul returns the Hamilton product q * o, which applies o first and then q.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conjugate negates the vector part. For unit quaternions this is the inverse.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Equal reports exact componentwise equality.
func (q Quaternion) Equal(o Quaternion) bool {
	return q.W == o.W && q.X == o.X && q.Y == o.Y && q.Z == o.Z
}

// Hash returns a hash consistent with Equal.
func (q Quaternion) Hash() uint64 {
	return hashComponents(q.X, q.Y, q.Z, q.W)
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%.5f, %.5f, %.5f, %.5f)", q.X, q.Y, q.Z, q.W)
}
