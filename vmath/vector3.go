package vmath

import "fmt"

// Vector3 is a 3D vector. Positions, Euler rotations (radians) and scales all use it.
type Vector3 struct {
	X, Y, Z float32
}

var (
	Vector3Zero    = Vector3{0, 0, 0}
	Vector3One     = Vector3{1, 1, 1}
	Vector3Forward = Vector3{0, 0, 1}
	Vector3Back    = Vector3{0, 0, -1}
	Vector3Right   = Vector3{1, 0, 0}
	Vector3Left    = Vector3{-1, 0, 0}
	Vector3Up      = Vector3{0, 1, 0}
	Vector3Down    = Vector3{0, -1, 0}
)

// Vec3 creates a Vector3 from its components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Splat3 creates a Vector3 with every component set to s.
func Splat3(s float32) Vector3 {
	return Vector3{X: s, Y: s, Z: s}
}

// Vector3FromXY builds (xy.X, xy.Y, z).
func Vector3FromXY(xy Vector2, z float32) Vector3 {
	return Vector3{xy.X, xy.Y, z}
}

// Vector3FromXZ builds (xz.X, y, xz.Y).
func Vector3FromXZ(xz Vector2, y float32) Vector3 {
	return Vector3{xz.X, y, xz.Y}
}

// Vector3FromYZ builds (x, yz.X, yz.Y).
func Vector3FromYZ(x float32, yz Vector2) Vector3 {
	return Vector3{x, yz.X, yz.Y}
}

func (v Vector3) XY() Vector2 { return Vector2{v.X, v.Y} }
func (v Vector3) XZ() Vector2 { return Vector2{v.X, v.Z} }
func (v Vector3) YZ() Vector2 { return Vector2{v.Y, v.Z} }

// WithXY returns v with X and Y replaced by xy.
func (v Vector3) WithXY(xy Vector2) Vector3 {
	return Vector3{xy.X, xy.Y, v.Z}
}

// WithXZ returns v with X and Z replaced by xz.
func (v Vector3) WithXZ(xz Vector2) Vector3 {
	return Vector3{xz.X, v.Y, xz.Y}
}

// WithYZ returns v with Y and Z replaced by yz.
func (v Vector3) WithYZ(yz Vector2) Vector3 {
	return Vector3{v.X, yz.X, yz.Y}
}

// DropZ narrows v to a Vector2 by discarding Z.
func (v Vector3) DropZ() Vector2 {
	return Vector2{v.X, v.Y}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// AddScalar adds s to every component.
func (v Vector3) AddScalar(s float32) Vector3 {
	return Vector3{v.X + s, v.Y + s, v.Z + s}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul multiplies componentwise.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Scale multiplies every component by s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Div divides componentwise.
func (v Vector3) Div(o Vector3) Vector3 {
	return Vector3{v.X / o.X, v.Y / o.Y, v.Z / o.Z}
}

// DivScalar divides every component by s.
func (v Vector3) DivScalar(s float32) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// InvScale returns s divided by each component.
func (v Vector3) InvScale(s float32) Vector3 {
	return Vector3{s / v.X, s / v.Y, s / v.Z}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Equal reports exact componentwise equality.
func (v Vector3) Equal(o Vector3) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}

// Hash returns a hash consistent with Equal.
func (v Vector3) Hash() uint64 {
	return hashComponents(v.X, v.Y, v.Z)
}

func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - o.Y*v.Z,
		v.Z*o.X - o.Z*v.X,
		v.X*o.Y - o.X*v.Y,
	}
}

func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vector3) Length() float32 {
	return sqrt(v.LengthSquared())
}

// Normalized returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vector3) Normalized() Vector3 {
	length := v.Length()
	if length > 0 {
		return Vector3{v.X / length, v.Y / length, v.Z / length}
	}
	return v
}

// Distance returns the euclidean distance between v and o.
func (v Vector3) Distance(o Vector3) float32 {
	return Distance3(v, o)
}

// Distance3 returns the euclidean distance between p1 and p2.
func Distance3(p1, p2 Vector3) float32 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	dz := p1.Z - p2.Z
	return sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp3 interpolates from p1 to p2. A factor of 0 or less yields exactly p1, and 1 or
// more yields exactly p2.
func Lerp3(p1, p2 Vector3, t float32) Vector3 {
	if t <= 0 {
		return p1
	}
	if t >= 1 {
		return p2
	}
	return p1.Add(p2.Sub(p1).Scale(t))
}

// Cos3 applies cosine to each component.
func Cos3(v Vector3) Vector3 {
	return Vector3{cos(v.X), cos(v.Y), cos(v.Z)}
}

// Sin3 applies sine to each component.
func Sin3(v Vector3) Vector3 {
	return Vector3{sin(v.X), sin(v.Y), sin(v.Z)}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}
