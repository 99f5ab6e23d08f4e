package vmath_test

import (
	"fmt"
	"testing"

	"github.com/plus3/scriptglue/vmath"
	"github.com/stretchr/testify/assert"
)

func TestColorEquality(t *testing.T) {
	assert.True(t, vmath.RGB(1, 0, 0).Equal(vmath.Red))
	assert.Equal(t, vmath.Red.Hash(), vmath.RGB(1, 0, 0).Hash())

	assert.False(t, vmath.RGBA(1, 0, 0, 0.5).Equal(vmath.Red))
	assert.NotEqual(t, vmath.Red.Hash(), vmath.RGBA(1, 0, 0, 0.5).Hash())

	assert.Equal(t, float32(1), vmath.Cyan.A)
	assert.Equal(t, float32(0), vmath.Clear.A)
	assert.InDelta(t, 0.921568, vmath.Yellow.G, 1e-5)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "RGBA(1.000, 0.000, 0.000, 1.000)", vmath.Red.String())
	assert.Equal(t, "RGBA(0.500, 0.500, 0.500, 1.000)", vmath.Grey.String())
}

func ExampleRGB() {
	c := vmath.RGB(0, 1, 1)
	fmt.Println(c, c.Equal(vmath.Cyan))
	// Output: RGBA(0.000, 1.000, 1.000, 1.000) true
}
