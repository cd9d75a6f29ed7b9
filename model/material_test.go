package model

import (
	"encoding/binary"
	"math"
	"testing"

	vm "shader_cube/vector_math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShadeEndpoints(t *testing.T) {
	bg := colorful.Color{R: 0.9, G: 0.9, B: 0.85}
	fg := colorful.Color{R: 0.1, G: 0.2, B: 0.8}
	m := NewMaterial(10, fg, bg)

	// v = 1 is the color, pow(1, x) = 1
	assert.True(t, m.Shade(vm.Vec2{Y: 1}).AlmostEqualRgb(fg))
	// v = 0 evaluates pow(0, 0) = 1
	assert.True(t, m.Shade(vm.Vec2{Y: 0}).AlmostEqualRgb(fg))
	// in between the background dominates
	mid := m.Shade(vm.Vec2{Y: 0.5})
	assert.InDelta(t, math.Pow(0.5, 5), float64(m.BlendFactor(0.5)), 1e-6)
	assert.Less(t, mid.DistanceRgb(bg), mid.DistanceRgb(fg))
}

func TestShadeIgnoresU(t *testing.T) {
	m := NewMaterial(3, colorful.Color{R: 1}, colorful.Color{B: 1})
	a := m.Shade(vm.Vec2{X: 0, Y: 0.3})
	b := m.Shade(vm.Vec2{X: 1, Y: 0.3})
	assert.Equal(t, a, b)
}

func TestMaterialUniformBytes(t *testing.T) {
	m := NewMaterial(7.5, colorful.Color{R: 0.25, G: 0.5, B: 0.75}, colorful.Color{R: 1, G: 0, B: 0.5})
	b := m.UniformBytes()
	require.Len(t, b, int(SizeOfMaterialUbo()))

	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	assert.Equal(t, []float32{0.25, 0.5, 0.75, 7.5, 1, 0, 0.5}, []float32{f(0), f(1), f(2), f(3), f(4), f(5), f(6)})
}
