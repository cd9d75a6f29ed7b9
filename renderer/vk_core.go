// Package renderer draws scenes of gradient shaded meshes with Vulkan into an SDL window.
package renderer

import "C"
import (
	"fmt"
	"log"
	"math"
	com "shader_cube/common"
	"shader_cube/model"
	"shader_cube/sketch"

	vk "github.com/goki/vulkan"
	"github.com/lucasb-eyer/go-colorful"
)

const MAX_FRAMES_IN_FLIGHT = 3

// DESIRED_SAMPLES caps the MSAA sample count when antialiasing is on.
const DESIRED_SAMPLES = vk.SampleCount4Bit

type Options struct {
	ShaderDir string
	Antialias bool
}

type Core struct {
	// OS/Window level, owned by the caller
	Win    *com.Window
	device *com.Device

	// Target level
	swapChain   *com.SwapChain
	samples     vk.SampleCountFlagBits
	depthFormat vk.Format
	colorTarget *com.Image // multisampled, nil without MSAA
	depthTarget *com.Image

	// Drawing infrastructure level
	renderPass     vk.RenderPass
	descriptors    *DescriptorProvisioner
	pipelineLayout vk.PipelineLayout
	pipelines      []vk.Pipeline
	commandPool    vk.CommandPool

	// Frame level
	commandBuffers     []vk.CommandBuffer
	currentFrameIdx    int32
	imageAvailableSems []vk.Semaphore
	renderFinishedSems []vk.Semaphore
	inFlightFens       []vk.Fence

	// Data level
	cameraUbos []*com.Buffer
	scene      *sceneResources

	clearColor colorful.Color
	pixelRatio float32
	width      int
	height     int
	disposed   bool
}

var _ sketch.Renderer = (*Core)(nil)

// NewCore creates a device and everything needed to draw on win. The window is not owned by the core and outlives
// Dispose.
func NewCore(win *com.Window, opts Options) *Core {
	c := &Core{
		Win:        win,
		pixelRatio: 1,
	}
	c.device = com.NewDevice(win)
	c.samples = vk.SampleCount1Bit
	if opts.Antialias {
		c.samples = c.device.MaxUsableSampleCount(DESIRED_SAMPLES)
	}
	c.depthFormat = c.device.FindDepthFormat()
	log.Printf("Using %d samples per pixel, depth format %d", c.samples, c.depthFormat)
	c.swapChain = com.NewSwapChain(c.device, c.Win)

	c.createRenderPass()
	c.descriptors = NewDescriptorProvisioner(c.device.D)
	c.createGraphicsPipeline(opts.ShaderDir)
	c.createCommandPool()
	c.createAttachments()
	c.createFrameBuffers()

	c.createCameraUniformBuffers()
	c.descriptors.CreateCameraSets(c.cameraUbos)
	c.createCommandBuffers()
	c.createSyncObjects()
	return c
}

func (c *Core) SetClearColor(col colorful.Color) {
	c.clearColor = col
}

// SetPixelRatio schedules a swap chain recreation when the ratio changes, as happens when the window moves to a display
// of another density while its size in window coordinates stays the same.
func (c *Core) SetPixelRatio(ratio float32) {
	if ratio != c.pixelRatio {
		c.Win.Resized = true
	}
	c.pixelRatio = ratio
}

// SetSize takes the viewport size in window coordinates. The swap chain follows the drawable size of the window, so a
// changed size only schedules its recreation.
func (c *Core) SetSize(width int, height int) {
	if width != c.width || height != c.height {
		c.Win.Resized = true
	}
	c.width, c.height = width, height
}

// Render uploads scene if it changed since the last call and draws one frame of it as seen by cam.
func (c *Core) Render(scene *model.Scene, cam *model.Camera) error {
	if c.disposed {
		return fmt.Errorf("render on disposed renderer")
	}
	if c.scene == nil || !c.scene.matches(scene) {
		vk.DeviceWaitIdle(c.device.D)
		c.releaseScene()
		c.scene = c.uploadScene(scene)
	}
	if c.Win.Minimized {
		return nil
	}
	return c.drawFrame(cam)
}

// Dispose waits for the device to finish and releases everything the core created. Calling it again has no effect.
func (c *Core) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	// We need to wait for the last asynchronous call to finish before tear down
	vk.DeviceWaitIdle(c.device.D)
	c.releaseScene()
	c.destroySwapChainAndDerivatives()

	for _, b := range c.cameraUbos {
		com.DestroyBuffer(c.device, b)
	}
	c.descriptors.Destroy()

	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		vk.DestroySemaphore(c.device.D, c.imageAvailableSems[i], nil)
		vk.DestroySemaphore(c.device.D, c.renderFinishedSems[i], nil)
		vk.DestroyFence(c.device.D, c.inFlightFens[i], nil)
	}
	vk.DestroyCommandPool(c.device.D, c.commandPool, nil)

	for i := range c.pipelines {
		vk.DestroyPipeline(c.device.D, c.pipelines[i], nil)
	}
	vk.DestroyPipelineLayout(c.device.D, c.pipelineLayout, nil)
	vk.DestroyRenderPass(c.device.D, c.renderPass, nil)

	c.device.Destroy()
	log.Printf("Disposed render core")
}

func (c *Core) destroySwapChainAndDerivatives() {
	com.DestroyImage(c.device, c.depthTarget)
	if c.colorTarget != nil {
		com.DestroyImage(c.device, c.colorTarget)
		c.colorTarget = nil
	}
	c.swapChain.Destroy(c.device)
}

func (c *Core) msaa() bool {
	return c.samples != vk.SampleCount1Bit
}

// createRenderPass builds a pass with color and depth attachments at c.samples. With MSAA a third attachment
// resolves the color into the swap chain image.
func (c *Core) createRenderPass() {
	finalColorLayout := vk.ImageLayoutPresentSrc
	colorStore := vk.AttachmentStoreOpStore
	if c.msaa() {
		finalColorLayout = vk.ImageLayoutColorAttachmentOptimal
		colorStore = vk.AttachmentStoreOpDontCare
	}
	attachments := []vk.AttachmentDescription{
		{
			Format:         c.swapChain.Format.Format,
			Samples:        c.samples,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        colorStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    finalColorLayout,
		},
		{
			Format:         c.depthFormat,
			Samples:        c.samples,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpDontCare,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}
	colorAttachmentRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}
	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       []vk.AttachmentReference{colorAttachmentRef},
		PDepthStencilAttachment: &depthAttachmentRef,
	}
	if c.msaa() {
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         c.swapChain.Format.Format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpDontCare,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		})
		subpass.PResolveAttachments = []vk.AttachmentReference{
			{
				Attachment: 2,
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			},
		}
	}
	dependency := vk.SubpassDependency{
		SrcSubpass:      vk.SubpassExternal,
		DstSubpass:      0,
		SrcStageMask:    vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstStageMask:    vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask:   0,
		DstAccessMask:   vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
		DependencyFlags: 0,
	}
	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		PNext:           nil,
		Flags:           0,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	var err error
	c.renderPass, err = com.VkCreateRenderPass(c.device.D, &renderPassInfo, nil)
	if err != nil {
		log.Panicf("Failed create render pass due to: %v", err)
	}
	log.Printf("Successfully created render pass with %d attachments", len(attachments))
}

func (c *Core) createGraphicsPipeline(shaderDir string) {
	// Shader modules can be deleted right after pipeline creation
	vertPath, fragPath := ShaderPaths(shaderDir)
	vertShaderMod, vertStageInfo := LoadVert(c.device.D, vertPath)
	defer DeleteShaderMod(c.device.D, vertShaderMod)
	fragShaderMod, fragStageInfo := LoadFrag(c.device.D, fragPath)
	defer DeleteShaderMod(c.device.D, fragShaderMod)
	shaderStages := []vk.PipelineShaderStageCreateInfo{vertStageInfo, fragStageInfo}

	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicStateCreateInfo := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}
	bindingDesc := []vk.VertexInputBindingDescription{model.GetVertexBindingDescription()}
	attributeDesc := model.GetVertexAttributeDescriptions()
	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      bindingDesc,
		VertexAttributeDescriptionCount: uint32(len(attributeDesc)),
		PVertexAttributeDescriptions:    attributeDesc,
	}
	inputAssemblyInfo := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
	viewportStateInfo := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	// The boxes are open at the top, so their inner faces are visible. Nothing is culled.
	rasterizerInfo := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(vk.CullModeNone),
		FrontFace:               vk.FrontFaceCounterClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}
	sampleShading := vk.Bool32(vk.False)
	if c.msaa() && c.device.PdFeatures.SampleRateShading == vk.True {
		sampleShading = vk.True
	}
	multisamplingInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                 vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples:  c.samples,
		SampleShadingEnable:   sampleShading,
		MinSampleShading:      0.25,
		AlphaToCoverageEnable: vk.False,
		AlphaToOneEnable:      vk.False,
	}
	colorBlendAttachmentInfo := vk.PipelineColorBlendAttachmentState{
		BlendEnable:    vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	colorBlendingInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentInfo},
	}

	// The model matrix travels as push constant, camera and material as descriptor sets 0 and 1
	modelPushConstantRange := vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		Offset:     0,
		Size:       model.SizeOfModelPushConstants(),
	}
	setLayouts := c.descriptors.Layouts()
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(setLayouts)),
		PSetLayouts:            setLayouts,
		PushConstantRangeCount: 1,
		PPushConstantRanges:    []vk.PushConstantRange{modelPushConstantRange},
	}
	layout, err := com.VkCreatePipelineLayout(c.device.D, &pipelineLayoutInfo, nil)
	if err != nil {
		log.Panicf("Failed to create pipeline layout: %v", err)
	}
	c.pipelineLayout = layout

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       vk.True,
		DepthWriteEnable:      vk.True,
		DepthCompareOp:        vk.CompareOpLess,
		DepthBoundsTestEnable: vk.False,
		StencilTestEnable:     vk.False,
		MinDepthBounds:        0,
		MaxDepthBounds:        1,
	}

	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(shaderStages)),
		PStages:             shaderStages,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssemblyInfo,
		PViewportState:      &viewportStateInfo,
		PRasterizationState: &rasterizerInfo,
		PMultisampleState:   &multisamplingInfo,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlendingInfo,
		PDynamicState:       &dynamicStateCreateInfo,
		Layout:              c.pipelineLayout,
		RenderPass:          c.renderPass,
		Subpass:             0,
		BasePipelineHandle:  nil,
		BasePipelineIndex:   -1,
	}
	pipelines, err := com.VkCreateGraphicsPipelines(c.device.D, nil, 1, []vk.GraphicsPipelineCreateInfo{pipelineInfo}, nil)
	if err != nil {
		log.Panicf("Failed to create graphics pipeline: %v", err)
	}
	c.pipelines = pipelines
	log.Printf("Successfully created graphics pipeline")
}

// createAttachments allocates the depth buffer and, with MSAA, the multisampled color target.
func (c *Core) createAttachments() {
	c.depthTarget = com.CreateAttachment(
		c.device,
		c.swapChain.Extend,
		c.samples,
		c.depthFormat,
		vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
		vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	)
	if c.msaa() {
		c.colorTarget = com.CreateAttachment(
			c.device,
			c.swapChain.Extend,
			c.samples,
			c.swapChain.Format.Format,
			vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit|vk.ImageUsageTransientAttachmentBit),
			vk.ImageAspectFlags(vk.ImageAspectColorBit),
		)
	}
}

func (c *Core) createFrameBuffers() {
	// nil marks the swap chain image
	attachments := []*vk.ImageView{nil, &c.depthTarget.View}
	if c.msaa() {
		attachments = []*vk.ImageView{&c.colorTarget.View, &c.depthTarget.View, nil}
	}
	c.swapChain.CreateFrameBuffers(c.device, c.renderPass, attachments)
}

func (c *Core) createCommandPool() {
	commandPool, err := com.VKSCreateCommandPool(
		c.device.D,
		vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		*c.device.QFamilies.GraphicsFamily,
	)
	if err != nil {
		log.Panicf("Failed to create command pool: %v", err)
	}
	log.Printf("Successfully created command pool")
	c.commandPool = commandPool
}

func (c *Core) createCommandBuffers() {
	buffers, err := com.VKSAllocateCommandBuffersPrimary(c.device.D, c.commandPool, uint32(MAX_FRAMES_IN_FLIGHT))
	if err != nil {
		log.Panicf("Failed to allocate command buffers: %v", err)
	}
	log.Printf("Successfully allocated %d command buffers", len(buffers))
	c.commandBuffers = buffers
}

func (c *Core) createSyncObjects() {
	ias := make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	rfs := make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	iff := make([]vk.Fence, MAX_FRAMES_IN_FLIGHT)
	semCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	fenCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		if vk.CreateSemaphore(c.device.D, &semCreateInfo, nil, &ias[i]) != vk.Success ||
			vk.CreateSemaphore(c.device.D, &semCreateInfo, nil, &rfs[i]) != vk.Success ||
			vk.CreateFence(c.device.D, &fenCreateInfo, nil, &iff[i]) != vk.Success {
			log.Panicf("Failed to create sync objects")
		}
	}
	c.imageAvailableSems = ias
	c.renderFinishedSems = rfs
	c.inFlightFens = iff
}

func (c *Core) createCameraUniformBuffers() {
	size := model.SizeOfCameraUbo()
	c.cameraUbos = make([]*com.Buffer, MAX_FRAMES_IN_FLIGHT)
	for i := range c.cameraUbos {
		b := com.CreateBuffer(
			c.device,
			size,
			vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
			vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		)
		b.Map(c.device)
		c.cameraUbos[i] = b
	}
	log.Printf("Created %d camera uniform buffers of %d Byte", len(c.cameraUbos), size)
}

// Drawing and derivative functionality

func (c *Core) recordDrawCommands(buffer vk.CommandBuffer, imageIdx uint32) {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if vk.BeginCommandBuffer(buffer, &beginInfo) != vk.Success {
		log.Panicf("Failed to begin recording command buffer")
	}

	renderArea := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: c.swapChain.Extend,
	}
	clearValues := clearValues(c.clearColor, c.msaa())
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      c.renderPass,
		Framebuffer:     c.swapChain.FrameBuffers[imageIdx],
		RenderArea:      renderArea,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &renderPassInfo, vk.SubpassContentsInline)
	vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, c.pipelines[0])

	viewport := []vk.Viewport{
		{
			X:        0,
			Y:        0,
			Width:    float32(c.swapChain.Extend.Width),
			Height:   float32(c.swapChain.Extend.Height),
			MinDepth: 0,
			MaxDepth: 1.0,
		},
	}
	vk.CmdSetViewport(buffer, 0, 1, viewport)
	vk.CmdSetScissor(buffer, 0, 1, []vk.Rect2D{renderArea})

	c.scene.record(buffer, c.pipelineLayout, c.descriptors, c.currentFrameIdx)

	vk.CmdEndRenderPass(buffer)
	if vk.EndCommandBuffer(buffer) != vk.Success {
		log.Printf("Failed to record command buffer")
	}
}

func (c *Core) drawFrame(cam *model.Camera) error {
	frame := c.currentFrameIdx
	// Wait for the frame to be ready, signalled by inFlightFens
	vk.WaitForFences(c.device.D, 1, []vk.Fence{c.inFlightFens[frame]}, vk.True, math.MaxUint64)

	var imgIdx uint32
	result := vk.AcquireNextImage(c.device.D, c.swapChain.Handle, math.MaxUint64, c.imageAvailableSems[frame], nil, &imgIdx)
	// React on surface changes, e.g. window resizing
	if result == vk.ErrorOutOfDate {
		c.recreateSwapChain()
		return nil
	} else if result != vk.Success && result != vk.Suboptimal {
		return fmt.Errorf("acquiring swap chain image: %w", vk.Error(result))
	}

	// Reset the fence only if we are actually going to submit work signalling it
	vk.ResetFences(c.device.D, 1, []vk.Fence{c.inFlightFens[frame]})

	vk.Memcopy(c.cameraUbos[frame].Mapped, model.NewCameraUbo(cam).Bytes())

	vk.ResetCommandBuffer(c.commandBuffers[frame], 0)
	c.recordDrawCommands(c.commandBuffers[frame], imgIdx)

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.imageAvailableSems[frame]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{c.commandBuffers[frame]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{c.renderFinishedSems[frame]},
	}
	if err := vk.Error(vk.QueueSubmit(c.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, c.inFlightFens[frame])); err != nil {
		return fmt.Errorf("submitting command buffer: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.renderFinishedSems[frame]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapChain.Handle},
		PImageIndices:      []uint32{imgIdx},
	}
	result = vk.QueuePresent(c.device.PresentQ, &presentInfo)
	c.currentFrameIdx = (c.currentFrameIdx + 1) % MAX_FRAMES_IN_FLIGHT
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal || c.Win.Resized {
		c.Win.Resized = false
		c.recreateSwapChain()
	} else if result != vk.Success {
		return fmt.Errorf("presenting swap chain image: %w", vk.Error(result))
	}
	return nil
}

func (c *Core) recreateSwapChain() {
	if w, h := c.Win.DrawableSize(); w == 0 || h == 0 {
		// minimized, the next resize event brings us back
		return
	}
	vk.DeviceWaitIdle(c.device.D)
	c.destroySwapChainAndDerivatives()
	c.swapChain = com.NewSwapChain(c.device, c.Win)
	c.createAttachments()
	c.createFrameBuffers()
}
