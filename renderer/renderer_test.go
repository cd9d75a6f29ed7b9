package renderer

import (
	"path/filepath"
	com "shader_cube/common"
	"shader_cube/model"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, vk.DeviceSize(32), alignUp(32, 0))
	assert.Equal(t, vk.DeviceSize(32), alignUp(32, 16))
	assert.Equal(t, vk.DeviceSize(64), alignUp(32, 64))
	assert.Equal(t, vk.DeviceSize(256), alignUp(33, 256))
}

func TestClearValues(t *testing.T) {
	assert.Len(t, clearValues(colorful.Color{}, false), 2)
	assert.Len(t, clearValues(colorful.Color{}, true), 3)

	c := clearColor(colorful.Color{R: 1, G: 0.5, B: 2})
	assert.Equal(t, float32(1), c[0])
	assert.InDelta(t, 128.0/255, c[1], 1e-6)
	assert.Equal(t, float32(1), c[2], "clamped")
	assert.Equal(t, float32(1), c[3])
}

func TestPackMaterials(t *testing.T) {
	g := model.NewBoxGeometry(1, 1, 1)
	a := model.NewMesh(g, model.NewMaterial(2, colorful.Color{R: 1}, colorful.Color{B: 1}))
	b := model.NewMesh(g, model.NewMaterial(5, colorful.Color{G: 1}, colorful.Color{B: 1}))

	stride := alignUp(model.SizeOfMaterialUbo(), 256)
	out := packMaterials([]*model.Mesh{a, b}, stride)
	require.Len(t, out, 512)
	assert.Equal(t, a.Material.UniformBytes(), out[:32])
	assert.Equal(t, b.Material.UniformBytes(), out[256:288])
	assert.Equal(t, make([]byte, 256-32), out[32:256])
}

func TestShaderPaths(t *testing.T) {
	v, f := ShaderPaths("spv")
	assert.Equal(t, filepath.Join("spv", VERT_SHADER_FILE), v)
	assert.Equal(t, filepath.Join("spv", FRAG_SHADER_FILE), f)
}

func TestUboPoolInfo(t *testing.T) {
	info := uboPoolInfo(1000)
	assert.Equal(t, uint32(1000), info.MaxSets)
	require.Len(t, info.PPoolSizes, 1)
	assert.Equal(t, vk.DescriptorTypeUniformBuffer, info.PPoolSizes[0].Type)
	assert.Equal(t, uint32(1000), info.PPoolSizes[0].DescriptorCount)
}

func TestSceneResourcesMatch(t *testing.T) {
	s := model.NewScene()
	res := &sceneResources{scene: s, version: s.Version()}
	assert.True(t, res.matches(s))
	s.Add(model.NewMesh(model.NewBoxGeometry(1, 1, 1), nil))
	assert.False(t, res.matches(s))
	assert.False(t, res.matches(model.NewScene()))
}

func TestViewportChangesScheduleRecreation(t *testing.T) {
	c := &Core{Win: &com.Window{}, pixelRatio: 1}

	c.SetPixelRatio(1)
	assert.False(t, c.Win.Resized)
	c.SetPixelRatio(2)
	assert.True(t, c.Win.Resized)

	c.Win.Resized = false
	c.SetSize(0, 0)
	assert.False(t, c.Win.Resized)
	c.SetSize(640, 480)
	assert.True(t, c.Win.Resized)

	c.Win.Resized = false
	c.SetSize(640, 480)
	assert.False(t, c.Win.Resized)
}
