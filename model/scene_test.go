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

func TestSceneSharedGeometry(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	other := NewBoxGeometry(2, 2, 2)
	s := NewScene()
	v0 := s.Version()
	for i := 0; i < 10; i++ {
		s.Add(NewMesh(g, NewMaterial(1, colorful.Color{}, colorful.Color{})))
	}
	s.Add(NewMesh(other, nil))
	assert.Equal(t, 11, s.Len())
	assert.Greater(t, s.Version(), v0)
	assert.Equal(t, []*Geometry{g, other}, s.Geometries())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Geometries())
}

func TestMeshModelMat(t *testing.T) {
	m := NewMesh(NewBoxGeometry(1, 1, 1), nil)
	m.SetScalar(2)
	m.Position = vm.Vec3{Y: 3}
	p, w := vm.MulVec4(vm.Vec3{X: 0.5, Y: 0.5, Z: -0.5}, 1, m.ModelMat())
	assert.Equal(t, float32(1), w)
	assert.Equal(t, vm.Vec3{X: 1, Y: 4, Z: -1}, p)
}

func TestOrthographicCameraLooksAtOrigin(t *testing.T) {
	c := NewOrthographicCamera()
	c.Left, c.Right, c.Top, c.Bottom = -2, 2, 1, -1
	c.Near, c.Far = -100, 100
	c.SetPosition(1, 1, 1)
	c.LookAt(vm.Vec3{})
	c.UpdateProjectionMatrix()

	vp := c.ViewProjection()
	clip, w := vm.MulVec4(vm.Vec3{}, 1, vp)
	assert.InDelta(t, 1, w, 1e-6)
	assert.InDelta(t, 0, clip.X, 1e-5)
	assert.InDelta(t, 0, clip.Y, 1e-5)
	// the origin sits sqrt(3) in front of the camera, inside [near, far] = [-100, 100]
	assert.InDelta(t, (math.Sqrt(3)+100)/200, clip.Z, 1e-5)

	// world up ends up at the top of the screen, which is -Y in Vulkan
	up, _ := vm.MulVec4(vm.Vec3{Y: 0.5}, 1, vp)
	assert.Less(t, up.Y, float32(0))
}

func TestCameraUboBytes(t *testing.T) {
	c := NewOrthographicCamera()
	c.SetPosition(0, 0, 5)
	ubo := NewCameraUbo(c)
	b := ubo.Bytes()
	require.Len(t, b, int(SizeOfCameraUbo()))
	// column-major: the view translation lives in floats 12..14
	z := math.Float32frombits(binary.LittleEndian.Uint32(b[14*4:]))
	assert.InDelta(t, -5, z, 1e-6)

	m := NewMesh(nil, nil)
	assert.Len(t, ModelPushConstants(m), int(SizeOfModelPushConstants()))
}
