package vmath_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/plus3/scriptglue/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func TestVector2Normalized(t *testing.T) {
	tests := []vmath.Vector2{
		{X: 3, Y: 4},
		{X: -1, Y: 0},
		{X: 0.001, Y: 0.002},
		{X: 1e4, Y: -2e4},
	}

	for _, v := range tests {
		t.Run(v.String(), func(t *testing.T) {
			assert.InDelta(t, 1.0, v.Normalized().Length(), epsilon)
		})
	}

	t.Run("zero passthrough", func(t *testing.T) {
		n := vmath.Vector2Zero.Normalized()
		assert.Equal(t, vmath.Vector2Zero, n)
		assert.False(t, math.IsNaN(float64(n.X)))
	})
}

func TestVector3Normalized(t *testing.T) {
	v := vmath.Vec3(1, 2, 2).Normalized()
	assert.InDelta(t, 1.0, v.Length(), epsilon)
	assert.InDelta(t, 1.0/3.0, v.X, epsilon)
	assert.InDelta(t, 2.0/3.0, v.Y, epsilon)

	assert.Equal(t, vmath.Vector3Zero, vmath.Vector3Zero.Normalized())
}

func TestDistance(t *testing.T) {
	pairs := [][2]vmath.Vector3{
		{vmath.Vec3(0, 0, 0), vmath.Vec3(1, 2, 2)},
		{vmath.Vec3(-5, 3, 1.5), vmath.Vec3(2.25, -7, 0)},
		{vmath.Vec3(1e3, 1e3, 1e3), vmath.Vec3(-1e3, 0, 4)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.Equal(t, vmath.Distance3(a, b), vmath.Distance3(b, a))
		assert.Equal(t, a.Distance(b), b.Distance(a))
		assert.GreaterOrEqual(t, vmath.Distance3(a, b), float32(0))
		assert.Equal(t, float32(0), vmath.Distance3(a, a))

		assert.Equal(t, vmath.Distance2(a.XY(), b.XY()), vmath.Distance2(b.XY(), a.XY()))
		assert.Equal(t, float32(0), vmath.Distance2(a.XY(), a.XY()))
	}

	assert.Equal(t, float32(3), vmath.Distance3(vmath.Vector3Zero, vmath.Vec3(1, 2, 2)))
	assert.Equal(t, float32(5), vmath.Vector2Zero.Distance(vmath.Vec2(3, 4)))
}

func TestLerp(t *testing.T) {
	p1 := vmath.Vec2(1, 2)
	p2 := vmath.Vec2(5, -6)

	assert.Equal(t, p1, vmath.Lerp2(p1, p2, -0.5))
	assert.Equal(t, p1, vmath.Lerp2(p1, p2, -100))
	assert.Equal(t, p2, vmath.Lerp2(p1, p2, 1.5))
	assert.Equal(t, p2, vmath.Lerp2(p1, p2, 100))
	assert.Equal(t, vmath.Vec2(3, -2), vmath.Lerp2(p1, p2, 0.5))
	assert.Equal(t, p1, vmath.Lerp2(p1, p2, 0))

	q1 := vmath.Vec3(0, 0, 0)
	q2 := vmath.Vec3(4, 8, -2)
	assert.Equal(t, q1, vmath.Lerp3(q1, q2, -1))
	assert.Equal(t, q2, vmath.Lerp3(q1, q2, 2))
	assert.Equal(t, vmath.Vec3(1, 2, -0.5), vmath.Lerp3(q1, q2, 0.25))
}

func TestLerpEndsAreExact(t *testing.T) {
	end2 := vmath.Vec2(0.1, 0)
	end3 := vmath.Vec3(0.1, -0.3, 0.7)
	for i := range 2000 {
		start2 := vmath.Vec2(float32(i)*0.37, 0)
		start3 := vmath.Vec3(float32(i)*0.37, float32(i)*-1.1, 3)
		require.Equal(t, end2, vmath.Lerp2(start2, end2, 1), "i=%d", i)
		require.Equal(t, end3, vmath.Lerp3(start3, end3, 1), "i=%d", i)
		require.Equal(t, start2, vmath.Lerp2(start2, end2, 0), "i=%d", i)
		require.Equal(t, float32(0.1), vmath.Lerp(float32(i)*0.37, 0.1, 1), "i=%d", i)
	}
}

func TestScalars(t *testing.T) {
	assert.Equal(t, float32(2), vmath.Clamp(5, -2, 2))
	assert.Equal(t, float32(-2), vmath.Clamp(-5, -2, 2))
	assert.Equal(t, float32(1.5), vmath.Clamp(1.5, -2, 2))
	assert.Equal(t, float32(1), vmath.Clamp01(3))
	assert.Equal(t, float32(0), vmath.Clamp01(-3))

	assert.Equal(t, float32(10), vmath.Lerp(0, 10, 2))
	assert.Equal(t, float32(0), vmath.Lerp(0, 10, -1))
	assert.Equal(t, float32(5), vmath.Lerp(0, 10, 0.5))
	assert.Equal(t, float32(20), vmath.LerpUnclamped(0, 10, 2))
	assert.Equal(t, float32(-10), vmath.LerpUnclamped(0, 10, -1))
}

func TestVectorArithmetic(t *testing.T) {
	a := vmath.Vec3(1, 2, 3)
	b := vmath.Vec3(4, 5, 6)

	assert.Equal(t, vmath.Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, vmath.Vec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, vmath.Vec3(4, 10, 18), a.Mul(b))
	assert.Equal(t, vmath.Vec3(2, 4, 6), a.Scale(2))
	assert.Equal(t, vmath.Vec3(4, 2.5, 2), b.Div(vmath.Vec3(1, 2, 3)))
	assert.Equal(t, vmath.Vec3(0.5, 1, 1.5), a.DivScalar(2))
	assert.Equal(t, vmath.Vec3(6, 3, 2), a.InvScale(6))
	assert.Equal(t, vmath.Vec3(-1, -2, -3), a.Neg())
	assert.Equal(t, vmath.Vec3(2, 3, 4), a.AddScalar(1))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, vmath.Vec3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, vmath.Vector3Up, vmath.Vector3Forward.Cross(vmath.Vector3Right))

	v := vmath.Vec2(3, 4)
	assert.Equal(t, vmath.Vec2(4, 6), v.Add(vmath.Vec2(1, 2)))
	assert.Equal(t, vmath.Vec2(1.5, 2), v.DivScalar(2))
	assert.Equal(t, vmath.Vec2(-3, -4), v.Neg())
	assert.Equal(t, vmath.Splat2(7), vmath.Vec2(7, 7))
	assert.Equal(t, vmath.Splat3(7), vmath.Vec3(7, 7, 7))
}

func TestAxisPairs(t *testing.T) {
	v := vmath.Vec3(1, 2, 3)

	assert.Equal(t, vmath.Vec2(1, 2), v.XY())
	assert.Equal(t, vmath.Vec2(1, 3), v.XZ())
	assert.Equal(t, vmath.Vec2(2, 3), v.YZ())
	assert.Equal(t, vmath.Vec2(1, 2), v.DropZ())

	assert.Equal(t, vmath.Vec3(9, 8, 3), v.WithXY(vmath.Vec2(9, 8)))
	assert.Equal(t, vmath.Vec3(9, 2, 8), v.WithXZ(vmath.Vec2(9, 8)))
	assert.Equal(t, vmath.Vec3(1, 9, 8), v.WithYZ(vmath.Vec2(9, 8)))
	assert.Equal(t, vmath.Vec3(1, 2, 3), v, "receiver must not change")

	assert.Equal(t, vmath.Vec3(1, 2, 5), vmath.Vector3FromXY(vmath.Vec2(1, 2), 5))
	assert.Equal(t, vmath.Vec3(1, 5, 2), vmath.Vector3FromXZ(vmath.Vec2(1, 2), 5))
	assert.Equal(t, vmath.Vec3(5, 1, 2), vmath.Vector3FromYZ(5, vmath.Vec2(1, 2)))

	assert.Equal(t, vmath.Vec3(1, 2, 0), vmath.Vec2(1, 2).ToVector3())
	assert.Equal(t, vmath.Vec3(1, 2, 7), vmath.Vec2(1, 2).ToVector3WithZ(7))
}

func TestVectorHashMatchesEqual(t *testing.T) {
	a := vmath.Vec3(0.1, -2, 3)
	b := vmath.Vec3(0.1, -2, 3)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	negZero := float32(math.Copysign(0, -1))
	z1 := vmath.Vec2(0, 1)
	z2 := vmath.Vec2(negZero, 1)
	assert.True(t, z1.Equal(z2))
	assert.Equal(t, z1.Hash(), z2.Hash())

	assert.NotEqual(t, vmath.Vec3(1, 2, 3).Hash(), vmath.Vec3(3, 2, 1).Hash())
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "(1.0, -2.5)", vmath.Vec2(1, -2.5).String())
	assert.Equal(t, "(1.0, 2.0, 3.0)", vmath.Vec3(1, 2, 3).String())
}

func ExampleVector3_WithXY() {
	camera := vmath.Vec3(0, 0, -15)
	player := vmath.Vec3(4, 2, 0)

	camera = camera.WithXY(player.XY())
	fmt.Println(camera)
	// Output: (4.0, 2.0, -15.0)
}
