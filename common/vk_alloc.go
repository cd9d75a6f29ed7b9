package common

import (
	"log"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// This Code section contains allocation helper functions. It aims to simplify the allocation of buffers and
// images on the selected device.

type Buffer struct {
	Handle    vk.Buffer
	DeviceMem vk.DeviceMemory
	Size      vk.DeviceSize
	Usage     vk.BufferUsageFlags
	props     vk.MemoryPropertyFlags

	// Mapped is set by Map and stays valid until Destroy
	Mapped unsafe.Pointer
}

func CreateBuffer(dc *Device, size vk.DeviceSize, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) *Buffer {
	bufferInfo := vk.BufferCreateInfo{
		SType:                 vk.StructureTypeBufferCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Size:                  size,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
	}
	buf, err := VkCreateBuffer(dc.D, &bufferInfo, nil)
	if err != nil {
		log.Panicf("Failed to create buffer of %d Byte: %v", size, err)
	}

	bufRequirements := ReadBufferMemoryRequirements(dc.D, buf)
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  bufRequirements.Size,
		MemoryTypeIndex: findMemoryType(dc, bufRequirements.MemoryTypeBits, props),
	}
	deviceMem, err := VkAllocateMemory(dc.D, &allocInfo, nil)
	if err != nil {
		log.Panicf("Failed to allocate buffer memory: %v", err)
	}

	// Associate allocated memory with buffer Handle
	err = VkBindBufferMemory(dc.D, buf, deviceMem, 0)
	if err != nil {
		log.Panicf("Failed to bind device memory to buffer Handle: %v", err)
	}

	return &Buffer{
		Handle:    buf,
		DeviceMem: deviceMem,
		Size:      size,
		Usage:     usage,
		props:     props,
	}
}

func (b *Buffer) isHostVisible() bool {
	want := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	return b.props&want == want
}

// Map persistently maps a host visible and coherent buffer. Writes through Mapped need no flush.
func (b *Buffer) Map(dc *Device) {
	if !b.isHostVisible() {
		log.Panicf("Cant map buffer, memory is not host visible and coherent")
	}
	pData, err := VkMapMemory(dc.D, b.DeviceMem, 0, b.Size, 0)
	if err != nil {
		log.Panicf("Failed to map device memory: %v", err)
	}
	b.Mapped = pData
}

// CopyToDeviceBuffer is a convenience method to simplify the process of mapping device memory to CPU memory,
// copy bytes over to the GPU and unmapping the memory again. This requires the buffer to:
// - be: vk.MemoryPropertyHostVisibleBit and vk.MemoryPropertyHostCoherentBit
// - have the same size as the payload
func CopyToDeviceBuffer(dc *Device, deviceBuf *Buffer, payload []byte) {
	if !deviceBuf.isHostVisible() {
		log.Panicf("Cant copy to device buffer as buffer is not host visible")
	}
	// this function only allows to copy a "full buffer" worth of payload starting at offset = 0
	if deviceBuf.Size != vk.DeviceSize(uint64(len(payload))) {
		log.Panicf("Cant copy to device buffer. Buffer (%d) and payload (%d) not of equal Size.", deviceBuf.Size, len(payload))
	}
	pData, err := VkMapMemory(dc.D, deviceBuf.DeviceMem, 0, deviceBuf.Size, 0)
	if err != nil {
		log.Panicf("Failed to map device memory")
	}
	vk.Memcopy(pData, payload)
	vk.UnmapMemory(dc.D, deviceBuf.DeviceMem)
}

func DestroyBuffer(dc *Device, buffer *Buffer) {
	if buffer.Mapped != nil {
		vk.UnmapMemory(dc.D, buffer.DeviceMem)
		buffer.Mapped = nil
	}
	vk.DestroyBuffer(dc.D, buffer.Handle, nil)
	vk.FreeMemory(dc.D, buffer.DeviceMem, nil)
}

// Image bundles an image, its backing memory and a full size view.
type Image struct {
	Handle    vk.Image
	DeviceMem vk.DeviceMemory
	View      vk.ImageView
	Format    vk.Format
}

func CreateImage(dc *Device, w uint32, h uint32, samples vk.SampleCountFlagBits, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlags, props vk.MemoryPropertyFlags) (vk.Image, vk.DeviceMemory) {
	imageInfo := &vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		PNext:     nil,
		Flags:     0,
		ImageType: vk.ImageType2d,
		Format:    format,
		Extent: vk.Extent3D{
			Width:  w,
			Height: h,
			Depth:  1,
		},
		MipLevels:             1,
		ArrayLayers:           1,
		Samples:               samples,
		Tiling:                tiling,
		Usage:                 usage,
		SharingMode:           vk.SharingModeExclusive,
		QueueFamilyIndexCount: 0,
		PQueueFamilyIndices:   nil,
		InitialLayout:         vk.ImageLayoutUndefined,
	}
	img, err := VkCreateImage(dc.D, imageInfo, nil)
	if err != nil {
		log.Panicf("Failed to create image: %v", err)
	}

	memRequirements := ReadImageMemoryRequirements(dc.D, img)
	allocInfo := &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		PNext:           nil,
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: findMemoryType(dc, memRequirements.MemoryTypeBits, props),
	}
	imgMemory, err := VkAllocateMemory(dc.D, allocInfo, nil)
	if err != nil {
		log.Panicf("Failed to allocate image device memory: %v", err)
	}
	vk.BindImageMemory(dc.D, img, imgMemory, 0)
	return img, imgMemory
}

// CreateAttachment allocates a device local render target together with its view.
func CreateAttachment(dc *Device, extent vk.Extent2D, samples vk.SampleCountFlagBits, format vk.Format, usage vk.ImageUsageFlags, aspect vk.ImageAspectFlags) *Image {
	img, mem := CreateImage(dc, extent.Width, extent.Height, samples, format, vk.ImageTilingOptimal, usage,
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	view, err := VKCreate2DFullSizeImageView(dc.D, img, format, aspect)
	if err != nil {
		log.Panicf("Failed to create attachment view: %v", err)
	}
	return &Image{Handle: img, DeviceMem: mem, View: view, Format: format}
}

func DestroyImage(dc *Device, img *Image) {
	vk.DestroyImageView(dc.D, img.View, nil)
	vk.DestroyImage(dc.D, img.Handle, nil)
	vk.FreeMemory(dc.D, img.DeviceMem, nil)
}

func findMemoryType(dc *Device, typeFilter uint32, propFlags vk.MemoryPropertyFlags) uint32 {
	idx, ok := selectMemoryType(dc.PdMemoryProps, typeFilter, propFlags)
	if !ok {
		log.Panicf("Failed to find suitable memory type")
	}
	return idx
}

func selectMemoryType(memProps vk.PhysicalDeviceMemoryProperties, typeFilter uint32, propFlags vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		ofType := (typeFilter & (1 << i)) > 0
		hasProperties := memProps.MemoryTypes[i].PropertyFlags&propFlags == propFlags
		if ofType && hasProperties {
			return i, true
		}
	}
	return 0, false
}
