package model

import (
	vm "shader_cube/vector_math"

	vk "github.com/goki/vulkan"
)

// CameraUniformBufferObject is bound once per frame in set 0:
//
//	layout(set = 0, binding = 0) uniform Camera { mat4 view; mat4 projection; };
type CameraUniformBufferObject struct {
	View       vm.Mat
	Projection vm.Mat
}

func NewCameraUbo(c *Camera) *CameraUniformBufferObject {
	return &CameraUniformBufferObject{
		View:       c.View(),
		Projection: c.Projection(),
	}
}

// Bytes returns both matrices in GLSL's column-major order.
func (u *CameraUniformBufferObject) Bytes() []byte {
	data := append(u.View.ColumnMajor(), u.Projection.ColumnMajor()...)
	return rawBytes(data)
}

func SizeOfCameraUbo() vk.DeviceSize {
	return vk.DeviceSize(2 * 16 * 4)
}

// ModelPushConstants holds the model matrix handed to the vertex stage per draw.
func ModelPushConstants(m *Mesh) []byte {
	mm := m.ModelMat()
	return rawBytes(mm.ColumnMajor())
}

func SizeOfModelPushConstants() uint32 {
	return 16 * 4
}
