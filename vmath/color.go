package vmath

import "fmt"

// Color is a normalized RGBA color. Channels are expected in [0, 1] but not clamped.
type Color struct {
	R, G, B, A float32
}

var (
	Red     = Color{1, 0, 0, 1}
	Green   = Color{0, 1, 0, 1}
	Blue    = Color{0, 0, 1, 1}
	White   = Color{1, 1, 1, 1}
	Black   = Color{0, 0, 0, 1}
	Yellow  = Color{1, 235.0 / 255.0, 4.0 / 255.0, 1}
	Cyan    = Color{0, 1, 1, 1}
	Magenta = Color{1, 0, 1, 1}
	Grey    = Color{0.5, 0.5, 0.5, 1}
	Clear   = Color{0, 0, 0, 0}
)

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Equal reports exact equality of all four channels.
func (c Color) Equal(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B && c.A == o.A
}

// Hash returns a hash consistent with Equal.
func (c Color) Hash() uint64 {
	return hashComponents(c.R, c.G, c.B, c.A)
}

func (c Color) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}
