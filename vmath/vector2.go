package vmath

import "fmt"

// Vector2 is a 2D vector.
type Vector2 struct {
	X, Y float32
}

var (
	Vector2Zero  = Vector2{0, 0}
	Vector2One   = Vector2{1, 1}
	Vector2Right = Vector2{1, 0}
	Vector2Left  = Vector2{-1, 0}
	Vector2Up    = Vector2{0, 1}
	Vector2Down  = Vector2{0, -1}
)

// Vec2 creates a Vector2 from its components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Splat2 creates a Vector2 with both components set to s.
func Splat2(s float32) Vector2 {
	return Vector2{X: s, Y: s}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// AddScalar adds s to every component.
func (v Vector2) AddScalar(s float32) Vector2 {
	return Vector2{v.X + s, v.Y + s}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Mul multiplies componentwise.
func (v Vector2) Mul(o Vector2) Vector2 {
	return Vector2{v.X * o.X, v.Y * o.Y}
}

// Scale multiplies every component by s.
func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Div divides componentwise.
func (v Vector2) Div(o Vector2) Vector2 {
	return Vector2{v.X / o.X, v.Y / o.Y}
}

// DivScalar divides every component by s.
func (v Vector2) DivScalar(s float32) Vector2 {
	return Vector2{v.X / s, v.Y / s}
}

// InvScale returns s divided by each component.
func (v Vector2) InvScale(s float32) Vector2 {
	return Vector2{s / v.X, s / v.Y}
}

func (v Vector2) Neg() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Equal reports exact componentwise equality.
func (v Vector2) Equal(o Vector2) bool {
	return v.X == o.X && v.Y == o.Y
}

// Hash returns a hash consistent with Equal.
func (v Vector2) Hash() uint64 {
	return hashComponents(v.X, v.Y)
}

func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2) Length() float32 {
	return sqrt(v.LengthSquared())
}

// Normalized returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vector2) Normalized() Vector2 {
	length := v.Length()
	if length > 0 {
		return Vector2{v.X / length, v.Y / length}
	}
	return v
}

// Distance returns the euclidean distance between v and o.
func (v Vector2) Distance(o Vector2) float32 {
	return Distance2(v, o)
}

// Distance2 returns the euclidean distance between p1 and p2.
func Distance2(p1, p2 Vector2) float32 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return sqrt(dx*dx + dy*dy)
}

// Lerp2 interpolates from p1 to p2. A factor of 0 or less yields exactly p1, and 1 or
// more yields exactly p2.
func Lerp2(p1, p2 Vector2, t float32) Vector2 {
	if t <= 0 {
		return p1
	}
	if t >= 1 {
		return p2
	}
	return p1.Add(p2.Sub(p1).Scale(t))
}

// Cos2 applies cosine to each component.
func Cos2(v Vector2) Vector2 {
	return Vector2{cos(v.X), cos(v.Y)}
}

// Sin2 applies sine to each component.
func Sin2(v Vector2) Vector2 {
	return Vector2{sin(v.X), sin(v.Y)}
}

// ToVector3 widens v with a zero Z component.
func (v Vector2) ToVector3() Vector3 {
	return Vector3{v.X, v.Y, 0}
}

// ToVector3WithZ widens v with the given Z component.
func (v Vector2) ToVector3WithZ(z float32) Vector3 {
	return Vector3{v.X, v.Y, z}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}
