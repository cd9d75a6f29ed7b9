package common

import (
	"log"

	vk "github.com/goki/vulkan"
)

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

// Device represents the interfacing objects between the SDL window, the Hardware running Vulkan
// and the rest of the rendering engine. Its main purpose is to encapsulate the corresponding objects
// to make the initialization and teardown of a given application neater.
type Device struct {
	PD            vk.PhysicalDevice
	PdProps       vk.PhysicalDeviceProperties
	PdFeatures    vk.PhysicalDeviceFeatures
	PdMemoryProps vk.PhysicalDeviceMemoryProperties
	QFamilies     QueueFamilyIndices

	D         vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

func NewDevice(w *Window) *Device {
	dc := &Device{}
	dc.selectPhysicalDevice(w.Inst, w.Surf)
	dc.createLogicalDevice(w.Layers)
	return dc
}

// Destroy all objects created by itself. It does not destroy the window provided for instantiation.
func (dc *Device) Destroy() {
	vk.DestroyDevice(dc.D, nil)
}

func (dc *Device) selectPhysicalDevice(in *vk.Instance, su *vk.Surface) {
	availableDevices := ReadPhysicalDevices(*in)
	var pd vk.PhysicalDevice
	bestScore := 0
	for i := range availableDevices {
		score := rateDevice(availableDevices[i], *su)
		if score > bestScore {
			bestScore = score
			pd = availableDevices[i]
		}
	}
	if pd == nil {
		log.Panicf("No suitable physical device (GPU) found")
	}
	dc.PD = pd

	// Also set related member variables for dc.PD as they are needed later
	qf, err := findQueueFamilies(dc.PD, *su)
	if err != nil {
		log.Panicf("Failed to read queue families from selected device due to: %s", err)
	}
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(dc.PD)
	dc.PdFeatures = ReadPhysicalDeviceFeatures(dc.PD)
	dc.PdMemoryProps = ReadDeviceMemoryProperties(dc.PD)
	log.Printf("Selected device '%s' (score %d)", vk.ToString(dc.PdProps.DeviceName[:]), bestScore)
}

// rateDevice returns 0 for devices that can't present to the surface, otherwise a score that prefers
// discrete GPUs over integrated ones.
func rateDevice(pd vk.PhysicalDevice, su vk.Surface) int {
	pdProps := ReadPhysicalDeviceProperties(pd)
	pdFeatures := ReadPhysicalDeviceFeatures(pd)
	pdQueueFams := ReadQueueFamilies(pd)

	log.Printf("Physical device\n%s", ToStringPhysicalDeviceTable(pdProps, pdFeatures, pdQueueFams))

	indices, err := findQueueFamilies(pd, su)
	if err != nil {
		log.Printf("Failed to get required queue families: %s", err)
		return 0
	}
	if !indices.isAllQueuesFound() || !checkDeviceExtensionSupport(pd, DEVICE_EXTENSIONS) {
		return 0
	}
	if !checkSwapChainAdequacy(pd, su) {
		return 0
	}
	return deviceTypeScore(pdProps.DeviceType)
}

func deviceTypeScore(dt vk.PhysicalDeviceType) int {
	switch dt {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return 1000
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return 100
	case vk.PhysicalDeviceTypeVirtualGpu:
		return 10
	default:
		return 1
	}
}

func (dc *Device) createLogicalDevice(layers []string) {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	// Sample rate shading smooths the gradient inside multisampled pixels when available
	deviceFeatures := vk.PhysicalDeviceFeatures{
		SampleRateShading: dc.PdFeatures.SampleRateShading,
	}
	deviceCreatInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     TerminatedStrs(layers),
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	var err error
	dc.D, err = VkCreateDevice(dc.PD, deviceCreatInfo, nil)
	if err != nil {
		log.Panicf("Failed create logical device due to: %s", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		log.Panicf("Failed to get 'graphics' device queue: %s", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.PresentFamily, 0)
	if err != nil {
		log.Panicf("Failed to get 'present' device queue: %s", err)
	}
}

// MaxUsableSampleCount returns the highest sample count up to desired that both color and depth
// attachments support on this device.
func (dc *Device) MaxUsableSampleCount(desired vk.SampleCountFlagBits) vk.SampleCountFlagBits {
	limits := dc.PdProps.Limits
	counts := limits.FramebufferColorSampleCounts & limits.FramebufferDepthSampleCounts
	return ChooseSampleCount(counts, desired)
}

// ChooseSampleCount picks the highest bit of counts that does not exceed desired.
func ChooseSampleCount(counts vk.SampleCountFlags, desired vk.SampleCountFlagBits) vk.SampleCountFlagBits {
	for _, c := range []vk.SampleCountFlagBits{
		vk.SampleCount64Bit, vk.SampleCount32Bit, vk.SampleCount16Bit,
		vk.SampleCount8Bit, vk.SampleCount4Bit, vk.SampleCount2Bit,
	} {
		if c <= desired && counts&vk.SampleCountFlags(c) != 0 {
			return c
		}
	}
	return vk.SampleCount1Bit
}

// FindSupportedFormat returns the first candidate offering features for the given tiling.
func (dc *Device) FindSupportedFormat(candidates []vk.Format, tiling vk.ImageTiling, features vk.FormatFeatureFlags) vk.Format {
	for _, format := range candidates {
		fProps := ReadFormatProperties(dc.PD, format)
		if tiling == vk.ImageTilingLinear && (fProps.LinearTilingFeatures&features) == features {
			return format
		} else if tiling == vk.ImageTilingOptimal && (fProps.OptimalTilingFeatures&features) == features {
			return format
		}
	}
	log.Panicf("No supported format found among %v", candidates)
	return vk.FormatUndefined
}

func (dc *Device) FindDepthFormat() vk.Format {
	return dc.FindSupportedFormat(
		[]vk.Format{vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint},
		vk.ImageTilingOptimal,
		vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit),
	)
}

func HasStencilComponent(format vk.Format) bool {
	return format == vk.FormatD32SfloatS8Uint || format == vk.FormatD24UnormS8Uint
}

func checkDeviceExtensionSupport(pd vk.PhysicalDevice, requiredDeviceExt []string) bool {
	supportedExt := ReadDeviceExtensionProperties(pd)
	log.Printf("Required device extensions: %v", requiredDeviceExt)
	log.Printf("Available device extensions (%d) [...]\n", len(supportedExt))
	supportedExtNames := make([]string, len(supportedExt))
	for i, ext := range supportedExt {
		supportedExtNames[i] = vk.ToString(ext.ExtensionName[:])
	}
	return IsSubset(requiredDeviceExt, supportedExtNames)
}
