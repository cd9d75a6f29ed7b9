package common

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSubset(t *testing.T) {
	assert.True(t, IsSubset([]string{"a"}, []string{"b", "a"}))
	assert.True(t, IsSubset(nil, []string{"b"}))
	assert.False(t, IsSubset([]string{"a", "c"}, []string{"a", "b"}))
}

func TestTerminatedStrs(t *testing.T) {
	in := []string{"VK_KHR_swapchain", "done\x00"}
	out := TerminatedStrs(in)
	assert.Equal(t, []string{"VK_KHR_swapchain\x00", "done\x00"}, out)
	assert.Equal(t, "VK_KHR_swapchain", in[0], "input must not be modified")
	assert.Equal(t, "\x00", TerminatedStr(""))
}

func TestAsUint32Arr(t *testing.T) {
	// SPIR-V magic number, little endian
	words := AsUint32Arr([]byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0})
	require.Len(t, words, 2)
	assert.Equal(t, uint32(0x07230203), words[0])
	assert.Nil(t, AsUint32Arr([]byte{1, 2}))
}

func TestChooseSampleCount(t *testing.T) {
	counts := vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount2Bit | vk.SampleCount4Bit | vk.SampleCount8Bit)
	assert.Equal(t, vk.SampleCount4Bit, ChooseSampleCount(counts, vk.SampleCount4Bit))
	assert.Equal(t, vk.SampleCount2Bit, ChooseSampleCount(vk.SampleCountFlags(vk.SampleCount1Bit|vk.SampleCount2Bit), vk.SampleCount4Bit))
	assert.Equal(t, vk.SampleCount1Bit, ChooseSampleCount(vk.SampleCountFlags(vk.SampleCount1Bit), vk.SampleCount4Bit))
	assert.Equal(t, vk.SampleCount1Bit, ChooseSampleCount(counts, vk.SampleCount1Bit))
}

func TestPickQueueFamilies(t *testing.T) {
	fams := []vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueComputeBit)},
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit)},
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueTransferBit)},
	}

	// family 2 does both, so it wins over the split 1/0 configuration
	idx, err := pickQueueFamilies(fams, func(i uint32) bool { return i != 1 })
	require.NoError(t, err)
	assert.Equal(t, uint32(2), *idx.GraphicsFamily)
	assert.True(t, idx.IsShared())
	assert.Len(t, idx.toQueueCreateInfos(), 1)

	idx, err = pickQueueFamilies(fams[:2], func(i uint32) bool { return i == 0 })
	require.NoError(t, err)
	assert.Equal(t, uint32(1), *idx.GraphicsFamily)
	assert.Equal(t, uint32(0), *idx.PresentFamily)
	assert.Len(t, idx.toQueueCreateInfos(), 2)

	_, err = pickQueueFamilies(fams[:1], func(uint32) bool { return true })
	assert.Error(t, err)
	_, err = pickQueueFamilies(fams, func(uint32) bool { return false })
	assert.Error(t, err)
}

func TestChooseExtent(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 800, Height: 600},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, chooseExtent(caps, 1024, 1024))

	caps.CurrentExtent = vk.Extent2D{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF}
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 4096}, chooseExtent(caps, 1024, 9000))
}

func TestSelectMemoryType(t *testing.T) {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 3
	props.MemoryTypes[0].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	props.MemoryTypes[1].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	props.MemoryTypes[2].PropertyFlags = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

	hostCoherent := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	idx, ok := selectMemoryType(props, 0b111, hostCoherent)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), idx)

	_, ok = selectMemoryType(props, 0b011, hostCoherent)
	assert.False(t, ok)
}

func TestDeviceScoring(t *testing.T) {
	assert.Greater(t, deviceTypeScore(vk.PhysicalDeviceTypeDiscreteGpu), deviceTypeScore(vk.PhysicalDeviceTypeIntegratedGpu))
	assert.Greater(t, deviceTypeScore(vk.PhysicalDeviceTypeIntegratedGpu), deviceTypeScore(vk.PhysicalDeviceTypeCpu))
	assert.Equal(t, "NVIDIA", asVendorName(0x10DE))
	assert.Equal(t, "1.2.3.4", asDriverVersion(0x10DE, 1<<22|2<<14|3<<6|4))
	assert.Equal(t, []string{"VK_QUEUE_GRAPHICS_BIT", "VK_QUEUE_TRANSFER_BIT"},
		toStringQueueFlags(vk.QueueFlags(vk.QueueGraphicsBit|vk.QueueTransferBit)))
}

func TestFitInto(t *testing.T) {
	w, h := FitInto(2048, 2048, 1600, 900)
	assert.Equal(t, int32(900), w)
	assert.Equal(t, int32(900), h)

	w, h = FitInto(800, 600, 1600, 900)
	assert.Equal(t, int32(800), w)
	assert.Equal(t, int32(600), h)

	w, h = FitInto(4000, 1000, 2000, 2000)
	assert.Equal(t, int32(2000), w)
	assert.Equal(t, int32(500), h)
}
