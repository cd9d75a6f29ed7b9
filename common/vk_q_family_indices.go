package common

import (
	"errors"
	"log"

	vk "github.com/goki/vulkan"
)

type QueueFamilyIndices struct {
	GraphicsFamily *uint32
	PresentFamily  *uint32
}

func findQueueFamilies(pd vk.PhysicalDevice, surf vk.Surface) (*QueueFamilyIndices, error) {
	qFamilies := ReadQueueFamilies(pd)
	return pickQueueFamilies(qFamilies, func(i uint32) bool {
		var presentSupport vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(pd, i, surf, &presentSupport)
		return presentSupport > 0
	})
}

// pickQueueFamilies selects the first graphics capable family and the first family able to present. A family
// doing both is preferred so the swap chain can use exclusive sharing.
func pickQueueFamilies(qFamilies []vk.QueueFamilyProperties, canPresent func(uint32) bool) (*QueueFamilyIndices, error) {
	indices := &QueueFamilyIndices{}
	for i := range qFamilies {
		idx := uint32(i)
		graphics := isBitSet(qFamilies[i], vk.QueueGraphicsBit)
		present := canPresent(idx)
		if graphics && present {
			indices.GraphicsFamily = &idx
			indices.PresentFamily = &idx
			return indices, nil
		}
		if indices.GraphicsFamily == nil && graphics {
			indices.GraphicsFamily = &idx
		}
		if indices.PresentFamily == nil && present {
			indices.PresentFamily = &idx
		}
	}
	if indices.GraphicsFamily == nil {
		return nil, errors.New("unable to find graphics capable queue family")
	}
	if indices.PresentFamily == nil {
		return nil, errors.New("unable to find present capable queue family for given surface")
	}
	return indices, nil
}

func isBitSet(qFamily vk.QueueFamilyProperties, bit vk.QueueFlagBits) bool {
	return vk.QueueFlagBits(qFamily.QueueFlags)&bit > 0
}

func (q *QueueFamilyIndices) isAllQueuesFound() bool {
	return q.GraphicsFamily != nil && q.PresentFamily != nil
}

// IsShared reports whether graphics and present run on the same family.
func (q *QueueFamilyIndices) IsShared() bool {
	return *q.GraphicsFamily == *q.PresentFamily
}

func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	if !q.isAllQueuesFound() {
		log.Panicf("Failed to access queue family indices %v", q)
	}
	uniqIndices := []uint32{*q.GraphicsFamily}
	if !q.IsShared() {
		uniqIndices = append(uniqIndices, *q.PresentFamily)
	}
	infos := make([]vk.DeviceQueueCreateInfo, len(uniqIndices))
	for i := range uniqIndices {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			PNext:            nil,
			Flags:            0,
			QueueFamilyIndex: uniqIndices[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}
