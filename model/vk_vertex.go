package model

import (
	vm "shader_cube/vector_math"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Vertex is tightly packed: 12 Byte position followed by 8 Byte texture coordinate.
type Vertex struct {
	Pos vm.Vec3
	UV  vm.Vec2
}

func GetVertexBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}
}

func GetVertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Location: 0, // <- 'layout(location = 0) in vec3 inPosition;'
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Location: 1, // <- 'layout(location = 1) in vec2 inUV;'
			Binding:  0,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.UV)),
		},
	}
}
