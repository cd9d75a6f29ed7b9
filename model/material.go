package model

import (
	vm "shader_cube/vector_math"

	"github.com/chewxy/math32"
	vk "github.com/goki/vulkan"
	"github.com/lucasb-eyer/go-colorful"
)

// Material is the uniform set of the gradient shader. The values are fixed at construction.
type Material struct {
	power      float32
	color      colorful.Color
	background colorful.Color
}

// materialUbo mirrors the std140 layout of the fragment stage block:
//
//	layout(set = 1, binding = 0) uniform Material { vec3 color; float power; vec3 background; };
type materialUbo struct {
	Color      [3]float32
	Power      float32
	Background [3]float32
	_          float32
}

func NewMaterial(power float32, color colorful.Color, background colorful.Color) *Material {
	return &Material{
		power:      power,
		color:      color,
		background: background,
	}
}

func (m *Material) Power() float32 {
	return m.power
}

func (m *Material) Color() colorful.Color {
	return m.color
}

func (m *Material) Background() colorful.Color {
	return m.background
}

// Shade evaluates the fragment stage on the CPU. The blend factor pow(v, power*v) stays at the
// background for most of the face and rises sharply towards the upper edge.
func (m *Material) Shade(uv vm.Vec2) colorful.Color {
	return m.background.BlendRgb(m.color, float64(m.BlendFactor(uv.Y)))
}

// BlendFactor returns pow(v, power*v). v = 0 yields 1, the limit of the expression.
func (m *Material) BlendFactor(v float32) float32 {
	return math32.Pow(v, m.power*v)
}

// UniformBytes returns the std140 representation of the material block.
func (m *Material) UniformBytes() []byte {
	return rawBytes(materialUbo{
		Color:      colorToVec(m.color),
		Power:      m.power,
		Background: colorToVec(m.background),
	})
}

func SizeOfMaterialUbo() vk.DeviceSize {
	return 32
}

func colorToVec(c colorful.Color) [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}
