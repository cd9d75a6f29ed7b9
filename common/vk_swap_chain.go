package common

import (
	"log"
	"math"

	vk "github.com/goki/vulkan"
)

type SwapChain struct {
	supDetails SwapChainDetails
	Handle     vk.Swapchain

	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extend      vk.Extent2D

	Images   []vk.Image
	ImgViews []vk.ImageView
	Aspect   float32

	FrameBuffers []vk.Framebuffer
}

func NewSwapChain(dc *Device, w *Window) *SwapChain {
	sc := &SwapChain{}
	sc.chooseConfiguration(dc, w)
	sc.createSwapChainHandle(dc, w)
	sc.readImages(dc)
	sc.createImageViews(dc)

	// Precalculate the images' aspect ratio for later
	sc.Aspect = float32(sc.Extend.Width) / float32(sc.Extend.Height)

	return sc
}

// CreateFrameBuffers creates one frame buffer per swap chain image. The attachments are passed in render pass
// order. A nil entry marks the slot of the swap chain image itself, all other views are shared between frames.
func (sc *SwapChain) CreateFrameBuffers(dc *Device, renderPass vk.RenderPass, attachments []*vk.ImageView) {
	sc.FrameBuffers = make([]vk.Framebuffer, len(sc.ImgViews))
	for i := range sc.ImgViews {
		views := make([]vk.ImageView, len(attachments))
		for j, a := range attachments {
			if a == nil {
				views[j] = sc.ImgViews[i]
			} else {
				views[j] = *a
			}
		}
		framebufferInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			PNext:           nil,
			Flags:           0,
			RenderPass:      renderPass,
			AttachmentCount: uint32(len(views)),
			PAttachments:    views,
			Width:           sc.Extend.Width,
			Height:          sc.Extend.Height,
			Layers:          1,
		}
		fb, err := VkCreateFrameBuffer(dc.D, &framebufferInfo, nil)
		if err != nil {
			log.Panicf("Failed to create frame buffer [%d]: %v", i, err)
		}
		sc.FrameBuffers[i] = fb
	}
	log.Printf("Successfully created %d frame buffers", len(sc.FrameBuffers))
}

func (sc *SwapChain) chooseConfiguration(dc *Device, w *Window) {
	sc.supDetails = ReadSwapChainSupportDetails(dc.PD, *w.Surf)
	// UNORM keeps the fragment output in the same (sRGB encoded) space as the palette colors
	sc.Format = sc.supDetails.selectSwapSurfaceFormat(vk.FormatB8g8r8a8Unorm, vk.ColorSpaceSrgbNonlinear)
	sc.PresentMode = sc.supDetails.selectSwapPresentMode(vk.PresentModeMailbox)
	dw, dh := w.DrawableSize()
	sc.Extend = sc.supDetails.selectSwapExtent(uint32(dw), uint32(dh))
}

func (sc *SwapChain) createSwapChainHandle(dc *Device, w *Window) {
	// Calc reasonable image count for swap chain, MaxImageCount = 0 means unbounded
	imgCount := sc.supDetails.capabilities.MinImageCount + 1
	imgMaxCount := sc.supDetails.capabilities.MaxImageCount
	if imgMaxCount > 0 && imgCount > imgMaxCount {
		imgCount = imgMaxCount
	}

	// Depending on whether our queue families are the same for graphics and presentation, we need to choose different
	// swap chain configurations: https://vulkan-tutorial.com/Drawing_a_triangle/Presentation/Swap_chain
	indices := dc.QFamilies
	sharingMode := vk.SharingModeExclusive
	var qFamIndices []uint32
	if !indices.IsShared() {
		sharingMode = vk.SharingModeConcurrent
		qFamIndices = []uint32{*indices.GraphicsFamily, *indices.PresentFamily}
	}

	createInfo := &vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		PNext:                 nil,
		Flags:                 0,
		Surface:               *w.Surf,
		MinImageCount:         imgCount,
		ImageFormat:           sc.Format.Format,
		ImageColorSpace:       sc.Format.ColorSpace,
		ImageExtent:           sc.Extend,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(qFamIndices)),
		PQueueFamilyIndices:   qFamIndices,
		PreTransform:          sc.supDetails.capabilities.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           sc.PresentMode,
		Clipped:               vk.True,
		OldSwapchain:          nil,
	}

	var err error
	sc.Handle, err = VkCreateSwapChain(dc.D, createInfo, nil)
	if err != nil {
		log.Panicf("Failed create swapchain due to: %s", err)
	}
	log.Printf("Successfully created swap chain (%dx%d, %d images)", sc.Extend.Width, sc.Extend.Height, imgCount)
}

func (sc *SwapChain) readImages(dc *Device) {
	sc.Images = ReadSwapChainImages(dc.D, sc.Handle)
}

func (sc *SwapChain) createImageViews(dc *Device) {
	sc.ImgViews = make([]vk.ImageView, len(sc.Images))
	for i := range sc.Images {
		iv, err := VKCreate2DFullSizeImageView(dc.D, sc.Images[i], sc.Format.Format, vk.ImageAspectFlags(vk.ImageAspectColorBit))
		if err != nil {
			log.Panicf("Failed create swap chain image view due to: %s", err)
		}
		sc.ImgViews[i] = iv
	}
}

func (sc *SwapChain) Destroy(dc *Device) {
	for i := range sc.FrameBuffers {
		vk.DestroyFramebuffer(dc.D, sc.FrameBuffers[i], nil)
	}
	for i := range sc.ImgViews {
		vk.DestroyImageView(dc.D, sc.ImgViews[i], nil)
	}
	vk.DestroySwapchain(dc.D, sc.Handle, nil)
}

type SwapChainDetails struct {
	capabilities vk.SurfaceCapabilities
	formats      []vk.SurfaceFormat
	presentModes []vk.PresentMode
}

func (s *SwapChainDetails) selectSwapSurfaceFormat(desiredFormat vk.Format, desiredColorSpace vk.ColorSpace) vk.SurfaceFormat {
	for _, af := range s.formats {
		if af.Format == desiredFormat && af.ColorSpace == desiredColorSpace {
			return af
		}
	}
	fallbackFormat := s.formats[0]
	log.Printf("Did not find prefered SurfaceFormat, selecting first one available. (%v)", fallbackFormat)
	return fallbackFormat
}

func (s *SwapChainDetails) selectSwapPresentMode(desiredMode vk.PresentMode) vk.PresentMode {
	for _, pm := range s.presentModes {
		if pm == desiredMode {
			return pm
		}
	}
	fallbackMode := vk.PresentModeFifo
	log.Printf("Did not find prefered PresentMode, selecting FIFO. (%v)", fallbackMode)
	return fallbackMode
}

// selectSwapExtent uses the surface's current extent. Some platforms report 0xFFFFFFFF there, meaning the
// swap chain decides, in which case the window's drawable size clamped to the allowed range is used.
func (s *SwapChainDetails) selectSwapExtent(drawableW uint32, drawableH uint32) vk.Extent2D {
	return chooseExtent(s.capabilities, drawableW, drawableH)
}

func chooseExtent(caps vk.SurfaceCapabilities, drawableW uint32, drawableH uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != math.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampU32(drawableW, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampU32(drawableH, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func checkSwapChainAdequacy(pd vk.PhysicalDevice, surface vk.Surface) bool {
	scDetails := ReadSwapChainSupportDetails(pd, surface)
	return len(scDetails.formats) > 0 && len(scDetails.presentModes) > 0
}
