package renderer

import (
	"log"
	com "shader_cube/common"

	vk "github.com/goki/vulkan"
	"github.com/lucasb-eyer/go-colorful"
)

// Helpers tied to a Core. Unlike the VKS functions in common they assume the core's command pool and graphics queue.

func (c *Core) beginSingleTimeCommands() vk.CommandBuffer {
	cmdBuffer, err := com.VKSBeginSingleTimeCommands(c.device.D, c.commandPool)
	if err != nil {
		log.Panicf("Failed to create command buffer for single time use: %v", err)
	}
	return cmdBuffer
}

func (c *Core) endSingleTimeCommands(cmdBuf vk.CommandBuffer, queue vk.Queue) {
	err := com.VKSEndSingleTimeCommands(c.device.D, c.commandPool, queue, cmdBuf)
	if err != nil {
		log.Panicf("Failed to end single time use command buffer: %v", err)
	}
}

// copyBuffer records a copy of s bytes from src to dst, submits it and waits for the graphics queue to drain.
func (c *Core) copyBuffer(src *com.Buffer, dst *com.Buffer, s vk.DeviceSize) {
	cmdBuf := c.beginSingleTimeCommands()
	copyRegions := []vk.BufferCopy{
		{
			SrcOffset: 0,
			DstOffset: 0,
			Size:      s,
		},
	}
	vk.CmdCopyBuffer(cmdBuf, src.Handle, dst.Handle, 1, copyRegions)
	c.endSingleTimeCommands(cmdBuf, c.device.GraphicsQ)
}

// alignUp rounds size up to a multiple of alignment. Alignment 0 leaves size unchanged.
func alignUp(size vk.DeviceSize, alignment vk.DeviceSize) vk.DeviceSize {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) / alignment * alignment
}

// clearValues returns the clear values in attachment order. The resolve attachment is never cleared but still needs
// a slot.
func clearValues(col colorful.Color, msaa bool) []vk.ClearValue {
	values := []vk.ClearValue{
		vk.NewClearValue(clearColor(col)),
		vk.NewClearDepthStencil(1, 0),
	}
	if msaa {
		values = append(values, vk.NewClearValue(clearColor(col)))
	}
	return values
}

// clearColor converts to the swap chain's UNORM channels. No gamma conversion happens, the hex values of the palette
// end up on screen unchanged.
func clearColor(col colorful.Color) []float32 {
	r, g, b := col.Clamped().RGB255()
	return []float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}
