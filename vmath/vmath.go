// Package vmath provides the value types exchanged across the scripting boundary:
// 2D/3D vectors, an Euler-built quaternion, a transform aggregate and an RGBA color.
//
// Every type is an immutable float32 value. Methods never mutate the receiver; they
// return a new value instead.
package vmath

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Clamp limits value to the closed range [min, max].
func Clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Clamp01 limits value to [0, 1].
func Clamp01(value float32) float32 {
	return Clamp(value, 0, 1)
}

// Lerp blends a towards b by t, with t clamped to [0, 1]. The ends are returned exactly.
func Lerp(a, b, t float32) float32 {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a + (b-a)*t
}

// LerpUnclamped blends a towards b by t without clamping, so t outside [0, 1] extrapolates.
func LerpUnclamped(a, b, t float32) float32 {
	return a + (b-a)*t
}

func sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// hashComponents hashes the IEEE bits of each component. Negative zero is folded into
// positive zero so that values comparing equal always hash equal.
func hashComponents(components ...float32) uint64 {
	var buf [16]byte
	for i, c := range components {
		if c == 0 {
			c = 0
		}
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(c))
	}
	return xxhash.Sum64(buf[:len(components)*4])
}
