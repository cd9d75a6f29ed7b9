package renderer

import (
	"log"
	com "shader_cube/common"
	"shader_cube/model"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// These functions upload a model.Scene to the device. Geometry is shared between meshes and uploaded once per
// distinct geometry. All materials live in one host visible buffer, one aligned slot per mesh.

type gpuGeometry struct {
	vertex   *com.Buffer
	index    *com.Buffer
	idxCount uint32
}

type sceneResources struct {
	scene   *model.Scene
	version uint64

	geometries map[*model.Geometry]*gpuGeometry
	draws      []drawCall
	materials  *com.Buffer
	stride     vk.DeviceSize
}

// drawCall is everything recorded per mesh. The push constants are computed at upload since meshes do not move
// between scene versions.
type drawCall struct {
	geometry   *gpuGeometry
	pushConsts []byte
}

func (s *sceneResources) matches(scene *model.Scene) bool {
	return s.scene == scene && s.version == scene.Version()
}

func (c *Core) uploadScene(scene *model.Scene) *sceneResources {
	res := &sceneResources{
		scene:      scene,
		version:    scene.Version(),
		geometries: make(map[*model.Geometry]*gpuGeometry),
	}
	for _, g := range scene.Geometries() {
		res.geometries[g] = c.uploadGeometry(g)
	}

	meshes := scene.Meshes()
	if len(meshes) == 0 {
		log.Printf("Uploaded empty scene")
		return res
	}

	res.stride = alignUp(model.SizeOfMaterialUbo(), c.device.PdProps.Limits.MinUniformBufferOffsetAlignment)
	res.materials = com.CreateBuffer(
		c.device,
		res.stride*vk.DeviceSize(len(meshes)),
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	com.CopyToDeviceBuffer(c.device, res.materials, packMaterials(meshes, res.stride))
	c.descriptors.CreateMaterialSets(res.materials, res.stride, len(meshes))

	res.draws = make([]drawCall, len(meshes))
	for i, m := range meshes {
		res.draws[i] = drawCall{
			geometry:   res.geometries[m.Geometry],
			pushConsts: model.ModelPushConstants(m),
		}
	}
	log.Printf("Uploaded scene: %d meshes, %d geometries, material stride %d Byte", len(meshes), len(res.geometries), res.stride)
	return res
}

// packMaterials lays out the uniform blocks of all meshes stride bytes apart.
func packMaterials(meshes []*model.Mesh, stride vk.DeviceSize) []byte {
	out := make([]byte, int(stride)*len(meshes))
	for i, m := range meshes {
		copy(out[i*int(stride):], m.Material.UniformBytes())
	}
	return out
}

func (c *Core) uploadGeometry(g *model.Geometry) *gpuGeometry {
	return &gpuGeometry{
		vertex: c.allocateDeviceLocal(g.Name, g.GetVBufferBytes(),
			vk.BufferUsageFlags(vk.BufferUsageTransferDstBit|vk.BufferUsageVertexBufferBit)),
		index: c.allocateDeviceLocal(g.Name, g.GetIdxBufferBytes(),
			vk.BufferUsageFlags(vk.BufferUsageTransferDstBit|vk.BufferUsageIndexBufferBit)),
		idxCount: uint32(len(g.VIndices)),
	}
}

// allocateDeviceLocal moves payload into a new device local buffer through a staging buffer.
func (c *Core) allocateDeviceLocal(name string, payload []byte, usage vk.BufferUsageFlags) *com.Buffer {
	bufSize := vk.DeviceSize(len(payload))
	stgBuf := com.CreateBuffer(
		c.device,
		bufSize,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	defer com.DestroyBuffer(c.device, stgBuf)
	com.CopyToDeviceBuffer(c.device, stgBuf, payload)

	buf := com.CreateBuffer(c.device, bufSize, usage, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	c.copyBuffer(stgBuf, buf, bufSize)
	log.Printf("Created device local buffer (\"%s\": Size: %d Byte)", name, bufSize)
	return buf
}

func (s *sceneResources) record(buffer vk.CommandBuffer, layout vk.PipelineLayout, dp *DescriptorProvisioner, frame int32) {
	var bound *gpuGeometry
	for i, d := range s.draws {
		if d.geometry == nil {
			continue
		}
		if d.geometry != bound {
			vk.CmdBindVertexBuffers(buffer, 0, 1, []vk.Buffer{d.geometry.vertex.Handle}, []vk.DeviceSize{0})
			vk.CmdBindIndexBuffer(buffer, d.geometry.index.Handle, 0, vk.IndexTypeUint32)
			bound = d.geometry
		}
		sets := []vk.DescriptorSet{dp.CameraSet(frame), dp.MaterialSet(i)}
		vk.CmdBindDescriptorSets(buffer, vk.PipelineBindPointGraphics, layout, 0, uint32(len(sets)), sets, 0, nil)
		vk.CmdPushConstants(buffer, layout, vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0,
			model.SizeOfModelPushConstants(), unsafe.Pointer(&d.pushConsts[0]))
		vk.CmdDrawIndexed(buffer, d.geometry.idxCount, 1, 0, 0, 0)
	}
}

// releaseScene frees the device side copy of the current scene. The device must be idle.
func (c *Core) releaseScene() {
	if c.scene == nil {
		return
	}
	for _, g := range c.scene.geometries {
		com.DestroyBuffer(c.device, g.vertex)
		com.DestroyBuffer(c.device, g.index)
	}
	if c.scene.materials != nil {
		com.DestroyBuffer(c.device, c.scene.materials)
	}
	c.descriptors.DestroyMaterialSets()
	c.scene = nil
}
