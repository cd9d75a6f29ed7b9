package renderer

import (
	"log"
	com "shader_cube/common"
	"shader_cube/model"

	vk "github.com/goki/vulkan"
)

// DescriptorProvisioner owns the two descriptor set layouts of the gradient pipeline and the sets allocated from them.
// Set 0 holds the camera and is allocated once per frame in flight. Set 1 holds a material and is allocated once per
// mesh; its pool is rebuilt whenever the scene changes.
type DescriptorProvisioner struct {
	device vk.Device

	cameraSetLayout vk.DescriptorSetLayout
	cameraPool      vk.DescriptorPool
	cameraSets      []vk.DescriptorSet

	materialSetLayout vk.DescriptorSetLayout
	materialPool      vk.DescriptorPool
	materialSets      []vk.DescriptorSet
}

func NewDescriptorProvisioner(device vk.Device) *DescriptorProvisioner {
	dp := &DescriptorProvisioner{
		device: device,
	}
	dp.cameraSetLayout = dp.createUboSetLayout(vk.ShaderStageVertexBit)
	dp.materialSetLayout = dp.createUboSetLayout(vk.ShaderStageFragmentBit)
	return dp
}

// Layouts returns the set layouts in pipeline order.
func (dp *DescriptorProvisioner) Layouts() []vk.DescriptorSetLayout {
	return []vk.DescriptorSetLayout{dp.cameraSetLayout, dp.materialSetLayout}
}

func (dp *DescriptorProvisioner) createUboSetLayout(stage vk.ShaderStageFlagBits) vk.DescriptorSetLayout {
	binding := vk.DescriptorSetLayoutBinding{
		Binding:            0, // <- binding index in the shader
		DescriptorType:     vk.DescriptorTypeUniformBuffer,
		DescriptorCount:    1,
		StageFlags:         vk.ShaderStageFlags(stage),
		PImmutableSamplers: nil,
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		PNext:        nil,
		Flags:        0,
		BindingCount: 1,
		PBindings:    []vk.DescriptorSetLayoutBinding{binding},
	}
	dsl, err := com.VKCreateDescriptorSetLayout(dp.device, &layoutInfo, nil)
	if err != nil {
		log.Panicf("Failed to create descriptor set layout: %v", err)
	}
	return dsl
}

// uboPoolInfo describes a pool able to hold cnt sets with a single uniform buffer each.
func uboPoolInfo(cnt uint32) vk.DescriptorPoolCreateInfo {
	return vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PNext:         nil,
		Flags:         0,
		MaxSets:       cnt,
		PoolSizeCount: 1,
		PPoolSizes: []vk.DescriptorPoolSize{
			{
				Type:            vk.DescriptorTypeUniformBuffer,
				DescriptorCount: cnt,
			},
		},
	}
}

// allocUboSets creates a pool for len(buffers) sets of layout and points set i at range i of buffers.
func (dp *DescriptorProvisioner) allocUboSets(layout vk.DescriptorSetLayout, buffers []vk.DescriptorBufferInfo) (vk.DescriptorPool, []vk.DescriptorSet) {
	cnt := uint32(len(buffers))
	poolInfo := uboPoolInfo(cnt)
	pool, err := com.VKCreateDescriptorPool(dp.device, &poolInfo, nil)
	if err != nil {
		log.Panicf("Failed to create descriptor pool for %d sets: %v", cnt, err)
	}

	layouts := make([]vk.DescriptorSetLayout, cnt)
	for i := range layouts {
		layouts[i] = layout
	}
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		PNext:              nil,
		DescriptorPool:     pool,
		DescriptorSetCount: cnt,
		PSetLayouts:        layouts,
	}
	sets, err := com.VKAllocateDescriptorSets(dp.device, &allocInfo)
	if err != nil {
		log.Panicf("Failed to allocate %d descriptor sets: %v", cnt, err)
	}

	writes := make([]vk.WriteDescriptorSet, cnt)
	for i := range writes {
		writes[i] = vk.WriteDescriptorSet{
			SType:            vk.StructureTypeWriteDescriptorSet,
			PNext:            nil,
			DstSet:           sets[i],
			DstBinding:       0,
			DstArrayElement:  0,
			DescriptorCount:  1,
			DescriptorType:   vk.DescriptorTypeUniformBuffer,
			PImageInfo:       nil,
			PBufferInfo:      []vk.DescriptorBufferInfo{buffers[i]},
			PTexelBufferView: nil,
		}
	}
	vk.UpdateDescriptorSets(dp.device, cnt, writes, 0, nil)
	return pool, sets
}

// CreateCameraSets allocates one camera set per frame in flight.
func (dp *DescriptorProvisioner) CreateCameraSets(ubos []*com.Buffer) {
	infos := make([]vk.DescriptorBufferInfo, len(ubos))
	for i, b := range ubos {
		infos[i] = vk.DescriptorBufferInfo{
			Buffer: b.Handle,
			Offset: 0,
			Range:  model.SizeOfCameraUbo(),
		}
	}
	dp.cameraPool, dp.cameraSets = dp.allocUboSets(dp.cameraSetLayout, infos)
	log.Printf("Allocated %d camera descriptor sets", len(dp.cameraSets))
}

// CreateMaterialSets allocates cnt material sets, set i reading stride bytes at offset i*stride of buf. Sets of a
// previous scene are released first.
func (dp *DescriptorProvisioner) CreateMaterialSets(buf *com.Buffer, stride vk.DeviceSize, cnt int) {
	dp.DestroyMaterialSets()
	if cnt == 0 {
		return
	}
	infos := make([]vk.DescriptorBufferInfo, cnt)
	for i := range infos {
		infos[i] = vk.DescriptorBufferInfo{
			Buffer: buf.Handle,
			Offset: vk.DeviceSize(i) * stride,
			Range:  model.SizeOfMaterialUbo(),
		}
	}
	dp.materialPool, dp.materialSets = dp.allocUboSets(dp.materialSetLayout, infos)
	log.Printf("Allocated %d material descriptor sets", len(dp.materialSets))
}

func (dp *DescriptorProvisioner) CameraSet(frame int32) vk.DescriptorSet {
	return dp.cameraSets[frame]
}

func (dp *DescriptorProvisioner) MaterialSet(mesh int) vk.DescriptorSet {
	return dp.materialSets[mesh]
}

// DestroyMaterialSets frees the material pool, which releases all sets allocated from it.
func (dp *DescriptorProvisioner) DestroyMaterialSets() {
	if dp.materialPool != nil {
		vk.DestroyDescriptorPool(dp.device, dp.materialPool, nil)
	}
	dp.materialPool = nil
	dp.materialSets = nil
}

func (dp *DescriptorProvisioner) Destroy() {
	dp.DestroyMaterialSets()
	if dp.cameraPool != nil {
		vk.DestroyDescriptorPool(dp.device, dp.cameraPool, nil)
	}
	vk.DestroyDescriptorSetLayout(dp.device, dp.cameraSetLayout, nil)
	vk.DestroyDescriptorSetLayout(dp.device, dp.materialSetLayout, nil)
}
