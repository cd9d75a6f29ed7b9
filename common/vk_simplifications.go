package common

import (
	vk "github.com/goki/vulkan"
)

// Utility functions providing slightly altered versions of the raw go bindings and wrapped functions. These altered
// versions of common functions should only hide very obvious default values that will not need to change most of the
// time. Thus representing a tiny step-up in abstraction to allow for a simpler usage of common vulkan calls. Each
// simplification function should specify the simplification it does. Names are prefixed with VKS which stands for
// (V)ul(K)an (S)implified.

// VKSAllocateCommandBuffersPrimary allocates count primary level command buffers from cmdPool.
func VKSAllocateCommandBuffersPrimary(device vk.Device, cmdPool vk.CommandPool, count uint32) ([]vk.CommandBuffer, error) {
	cbAllocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		PNext:              nil,
		CommandPool:        cmdPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	}
	return VKAllocateCommandBuffers(device, &cbAllocateInfo)
}

// VKSCreateCommandPool implicitly instantiates the CreateInfo for the command pool based in the provided arguments. This
// is easily possible as the CreateInfo does only contain 2 interesting values in this case.
func VKSCreateCommandPool(device vk.Device, flags vk.CommandPoolCreateFlags, QueueFamilyIndex uint32) (vk.CommandPool, error) {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		PNext:            nil,
		Flags:            flags,
		QueueFamilyIndex: QueueFamilyIndex,
	}
	return VkCreateCommandPool(device, &poolInfo, nil)
}

// VKSBeginSingleTimeCommands allocates a primary command buffer and starts recording with the one time submit flag.
func VKSBeginSingleTimeCommands(device vk.Device, cmdPool vk.CommandPool) (vk.CommandBuffer, error) {
	buffers, err := VKSAllocateCommandBuffersPrimary(device, cmdPool, 1)
	if err != nil {
		return nil, err
	}
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err = vk.Error(vk.BeginCommandBuffer(buffers[0], &beginInfo)); err != nil {
		vk.FreeCommandBuffers(device, cmdPool, 1, buffers)
		return nil, err
	}
	return buffers[0], nil
}

// VKSEndSingleTimeCommands stops recording, submits the buffer to queue, waits for the queue to drain and frees
// the command buffer.
func VKSEndSingleTimeCommands(device vk.Device, cmdPool vk.CommandPool, queue vk.Queue, cmdBuf vk.CommandBuffer) error {
	defer vk.FreeCommandBuffers(device, cmdPool, 1, []vk.CommandBuffer{cmdBuf})
	if err := vk.Error(vk.EndCommandBuffer(cmdBuf)); err != nil {
		return err
	}
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmdBuf},
	}
	if err := vk.Error(vk.QueueSubmit(queue, 1, []vk.SubmitInfo{submitInfo}, nil)); err != nil {
		return err
	}
	return vk.Error(vk.QueueWaitIdle(queue))
}

// VKCreate2DFullSizeImageView creates a view covering the single mip level and array layer of a 2D image.
func VKCreate2DFullSizeImageView(device vk.Device, image vk.Image, format vk.Format, aspectFlags vk.ImageAspectFlags) (vk.ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		PNext:    nil,
		Flags:    0,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectFlags,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
	return VkCreateImageView(device, createInfo, nil)
}
