package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// Human readable dumps of device information, only used for logging during device selection.

func ToStringPhysicalDeviceTable(
	pdProps vk.PhysicalDeviceProperties,
	pdFeatures vk.PhysicalDeviceFeatures,
	qFamilies []vk.QueueFamilyProperties,
) string {
	strBuilder := strings.Builder{}
	for i := range qFamilies {
		prefix := "| "
		if i == len(qFamilies)-1 {
			prefix = "|_"
		}
		strBuilder.WriteString(fmt.Sprintf("%sQfamily[%d] %s\n", prefix, i, toStringQueueFamilyPropsTable(qFamilies[i])))
	}
	return fmt.Sprintf(
		"%s:\n|_%s\n|_%s\n%s",
		vk.ToString(pdProps.DeviceName[:]),
		toStringPhysicalDevicePropsTable(pdProps),
		toStringPhysicalDeviceFeatures(pdFeatures),
		strBuilder.String(),
	)
}

func asVendorName(v vk.VendorId) string {
	// The list of known PCI vendor ids is short:
	// https://www.reddit.com/r/vulkan/comments/4ta9nj/is_there_a_comprehensive_list_of_the_names_and/
	switch v {
	case 0x1002:
		return "AMD"
	case 0x1010:
		return "ImgTec"
	case 0x10DE:
		return "NVIDIA"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x8086:
		return "INTEL"
	case 0x10005:
		return "Mesa"
	default:
		return "unknown"
	}
}

func asDriverVersion(vendor vk.VendorId, raw uint32) string {
	if vendor == 0x10DE { // NVIDIA packs 10.8.8.6 bits
		return fmt.Sprintf("%d.%d.%d.%d", (raw>>22)&0x3ff, (raw>>14)&0x0ff, (raw>>6)&0x0ff, raw&0x003f)
	}
	return vk.Version(raw).String()
}

func toStringPhysicalDevicePropsTable(pdProps vk.PhysicalDeviceProperties) string {
	return fmt.Sprintf("api: %s, driver: %s, vendorId: %d (%s), deviceId: %d, deviceType: %d (%s), UUID: %v",
		vk.Version(pdProps.ApiVersion).String(),
		asDriverVersion(vk.VendorId(pdProps.VendorID), pdProps.DriverVersion),
		vk.VendorId(pdProps.VendorID),
		asVendorName(vk.VendorId(pdProps.VendorID)),
		pdProps.DeviceID,
		pdProps.DeviceType,
		toStringDeviceType(pdProps.DeviceType),
		hex.EncodeToString(pdProps.PipelineCacheUUID[:]),
	)
}

func toStringPhysicalDeviceFeatures(pdFeatures vk.PhysicalDeviceFeatures) string {
	return fmt.Sprintf("PFeatures(sampleRateShading: %d, anisotropy: %d)", pdFeatures.SampleRateShading, pdFeatures.SamplerAnisotropy)
}

func toStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated Gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete Gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual Gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func toStringQueueFamilyPropsTable(q vk.QueueFamilyProperties) string {
	return fmt.Sprintf(
		"Count: %2d, Valid ts bits: %d, ImageGranularity: (%d,%d,%d), Flags: %v",
		q.QueueCount,
		q.TimestampValidBits,
		q.MinImageTransferGranularity.Width,
		q.MinImageTransferGranularity.Height,
		q.MinImageTransferGranularity.Depth,
		toStringQueueFlags(q.QueueFlags),
	)
}

func toStringQueueFlags(bits vk.QueueFlags) []string {
	var properties []string
	flags := vk.QueueFlagBits(bits)
	if flags&vk.QueueGraphicsBit > 0 {
		properties = append(properties, "VK_QUEUE_GRAPHICS_BIT")
	}
	if flags&vk.QueueComputeBit > 0 {
		properties = append(properties, "VK_QUEUE_COMPUTE_BIT")
	}
	if flags&vk.QueueTransferBit > 0 {
		properties = append(properties, "VK_QUEUE_TRANSFER_BIT")
	}
	if flags&vk.QueueSparseBindingBit > 0 {
		properties = append(properties, "VK_QUEUE_SPARSE_BINDING_BIT")
	}
	if flags&vk.QueueProtectedBit > 0 {
		properties = append(properties, "VK_QUEUE_PROTECTED_BIT")
	}
	return properties
}
