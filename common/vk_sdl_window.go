package common

import (
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const APPLICATION_NAME = "Shader Cube"
const APP_MAJOR, APP_MINOR, APP_PATCH = 1, 0, 0
const ENGINE_NAME = "No Engine"
const ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH = 1, 0, 0

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

// Vulkan spec go bindings = v1.0.7, as per: https://github.com/goki/vulkan = 1.3.239
const VK_SPEC_MAJOR, VK_SPEC_MINOR, VK_SPEC_PATCH int = 1, 3, 239

var VALIDATION_LAYERS = []string{
	"VK_LAYER_KHRONOS_validation",
}

// Window encapsulates all window handling components and vulkan access objects to talk, to actual draw on screen. It
// uses SDL for window management and user input, for a Vulkan application. Thus simplifying the process of getting a
// vk.surface to draw on and interact with.
type Window struct {
	sdlVersion string
	vkVersion  string

	Win       *sdl.Window
	Resized   bool
	Minimized bool
	Close     bool

	Inst   *vk.Instance
	Surf   *vk.Surface
	Layers []string
}

// NewWindow initializes SDL, opens a resizable Vulkan capable window and creates the instance and surface.
// On tear down, we need to destroy the: vk.surface, vk.instance and sdl.window.
func NewWindow(title string, w int32, h int32, validation bool) *Window {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
		vkVersion:  fmt.Sprintf("v%d.%d.%d", VK_SPEC_MAJOR, VK_SPEC_MINOR, VK_SPEC_PATCH),
	}
	if validation {
		window.Layers = VALIDATION_LAYERS
	}
	window.initSDLWindow(title, w, h)
	window.initVulkan()
	window.createVulkanInstance()
	window.createSdlVkSurface()
	log.Printf("Generated SDL/Vulkan window - SDL: %s Vulkan Spec: %s", window.sdlVersion, window.vkVersion)
	return window
}

// Destroy is a convenience method to tear down all relevant instances (vk.surface, vk.instance and sdl.window)
// that have been initialized by itself.
func (w *Window) Destroy() {
	vk.DestroySurface(*w.Inst, *w.Surf, nil)
	vk.DestroyInstance(*w.Inst, nil)
	if err := w.Win.Destroy(); err != nil {
		log.Printf("Failed to destroy SDL window: %v", err)
	}
	sdl.Quit()
}

// DrawableSize returns the size of the surface in pixels, which differs from the window size on high DPI displays.
func (w *Window) DrawableSize() (int32, int32) {
	return w.Win.VulkanGetDrawableSize()
}

// PixelRatio is the ratio of drawable pixels to window coordinates.
func (w *Window) PixelRatio() float32 {
	ww, _ := w.Win.GetSize()
	dw, _ := w.DrawableSize()
	if ww == 0 {
		return 1
	}
	return float32(dw) / float32(ww)
}

// FitToDisplay scales (w, h) down so it covers at most 85% of the primary display, keeping the aspect ratio.
func FitToDisplay(w int32, h int32) (int32, int32) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Panicf("Failed to initialize SDL: %v", err)
	}
	bounds, err := sdl.GetDisplayUsableBounds(0)
	if err != nil {
		log.Printf("Failed to read display bounds, keeping %dx%d: %v", w, h, err)
		return w, h
	}
	return FitInto(w, h, int32(float32(bounds.W)*0.85), int32(float32(bounds.H)*0.85))
}

// FitInto scales (w, h) down uniformly until it fits into (maxW, maxH). Sizes that already fit are returned as is.
func FitInto(w int32, h int32, maxW int32, maxH int32) (int32, int32) {
	scale := float32(1)
	if w > maxW {
		scale = float32(maxW) / float32(w)
	}
	if s := float32(maxH) / float32(h); h > maxH && s < scale {
		scale = s
	}
	fw, fh := int32(float32(w)*scale), int32(float32(h)*scale)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

func (w *Window) initSDLWindow(title string, width int32, height int32) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Panicf("Failed to initialize SDL: %v", err)
	}
	log.Println("Initialized SDL")
	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_VULKAN|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		log.Panicf("Failed to create SDL window for use with Vulkan: %v", err)
	}
	log.Printf("Created SDL window for use with Vulkan. Title: \"%s\", Width: %d, Height: %d", title, width, height)
	w.Win = win
}

func (w *Window) initVulkan() {
	// Find and load Vulkan addresses to be able to call driver level functions via provided mechanism
	vk.SetGetInstanceProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	err := vk.Init()
	if err != nil {
		log.Panicf("Failed to initialize Vulkan API: %v", err)
	}
}

func (w *Window) createVulkanInstance() {
	requiredExtensions := w.Win.VulkanGetInstanceExtensions()
	checkInstanceExtensionSupport(requiredExtensions)

	if len(w.Layers) > 0 {
		log.Printf("Validation enabled, checking layer support")
		checkValidationLayerSupport(w.Layers)
	}
	applicationInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PNext:              nil,
		PApplicationName:   TerminatedStr(APPLICATION_NAME),
		ApplicationVersion: vk.MakeVersion(APP_MAJOR, APP_MINOR, APP_PATCH),
		PEngineName:        TerminatedStr(ENGINE_NAME),
		EngineVersion:      vk.MakeVersion(ENGINE_MAJOR, ENGINE_MINOR, ENGINE_PATCH),
		ApiVersion:         vk.MakeVersion(VK_SPEC_MAJOR, VK_SPEC_MINOR, VK_SPEC_PATCH),
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PNext:                   nil,
		Flags:                   0,
		PApplicationInfo:        applicationInfo,
		EnabledLayerCount:       uint32(len(w.Layers)),
		PpEnabledLayerNames:     TerminatedStrs(w.Layers),
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: TerminatedStrs(requiredExtensions),
	}
	ins, err := VkCreateInstance(createInfo, nil)
	if err != nil {
		log.Panicf("Failed to create vk instance, due to: %v", err)
	}
	w.Inst = &ins
}

func checkInstanceExtensionSupport(requiredInstanceExt []string) {
	supportedExtNames := ReadInstanceExtensionPropertyNames()
	log.Printf("Required instance extensions: %v", requiredInstanceExt)
	log.Printf("Available extensions (%d): %v", len(supportedExtNames), supportedExtNames)

	if !IsSubset(requiredInstanceExt, supportedExtNames) {
		log.Panicf("At least one required instance extension is not supported")
	}
	log.Println("Success - All required instance extensions are supported")
}

func checkValidationLayerSupport(requiredLayers []string) {
	supportedLayerNames := ReadInstanceLayerPropertyNames()
	log.Printf("Desired validation layers: %v", requiredLayers)
	log.Printf("Supported layers (%d): %v", len(supportedLayerNames), supportedLayerNames)

	if !IsSubset(requiredLayers, supportedLayerNames) {
		log.Panicf("At least one desired layer is not supported")
	}
	log.Println("Success - All desired validation layers are supported")
}

func (w *Window) createSdlVkSurface() {
	surf, err := SdlCreateVkSurface(w.Win, *w.Inst)
	if err != nil {
		log.Panicf("Failed to create SDL window's Vulkan-surface, due to: %v", err)
	}
	w.Surf = &surf
}
