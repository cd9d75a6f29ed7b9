package harness

import (
	"fmt"
	"log"
	com "shader_cube/common"
	"shader_cube/raster"
	"shader_cube/renderer"
	"shader_cube/sketch"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// canvas is the window a sketch draws into together with the renderer kind it needs.
type canvas interface {
	Window() *sdl.Window
	NewRenderer(s sketch.Settings) sketch.Renderer
	Viewport() sketch.ResizeProps
	// Present shows the last frame of r where the renderer does not present on its own
	Present(r sketch.Renderer) error
	SetMinimized(m bool)
	Destroy()
}

func newCanvas(s sketch.Settings) (canvas, error) {
	w, h := com.FitToDisplay(int32(s.Dimensions[0]), int32(s.Dimensions[1]))
	log.Printf("Opening %dx%d window for %dx%d sketch", w, h, s.Dimensions[0], s.Dimensions[1])
	switch s.Context {
	case sketch.CONTEXT_VULKAN:
		return &vulkanCanvas{win: com.NewWindow(com.APPLICATION_NAME, w, h, s.Validation)}, nil
	case sketch.CONTEXT_SOFTWARE:
		return newSoftwareCanvas(w, h)
	}
	return nil, fmt.Errorf("unknown context '%s'", s.Context)
}

func viewportOf(win *sdl.Window, drawableW int32) sketch.ResizeProps {
	w, h := win.GetSize()
	ratio := float32(1)
	if w > 0 {
		ratio = float32(drawableW) / float32(w)
	}
	return sketch.ResizeProps{
		PixelRatio:     ratio,
		ViewportWidth:  int(w),
		ViewportHeight: int(h),
	}
}

type vulkanCanvas struct {
	win *com.Window
}

func (c *vulkanCanvas) Window() *sdl.Window {
	return c.win.Win
}

func (c *vulkanCanvas) NewRenderer(s sketch.Settings) sketch.Renderer {
	return renderer.NewCore(c.win, renderer.Options{
		ShaderDir: s.ShaderDir,
		Antialias: s.Attributes.Antialias,
	})
}

func (c *vulkanCanvas) Viewport() sketch.ResizeProps {
	dw, _ := c.win.DrawableSize()
	return viewportOf(c.win.Win, dw)
}

// Present is a no-op, the core presents every frame it renders.
func (c *vulkanCanvas) Present(r sketch.Renderer) error {
	return nil
}

func (c *vulkanCanvas) SetMinimized(m bool) {
	c.win.Minimized = m
}

func (c *vulkanCanvas) Destroy() {
	c.win.Destroy()
}

// softwareCanvas blits frames of the raster renderer on to the window surface.
type softwareCanvas struct {
	win *sdl.Window
}

func newSoftwareCanvas(w int32, h int32) (*softwareCanvas, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}
	win, err := sdl.CreateWindow(com.APPLICATION_NAME, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	return &softwareCanvas{win: win}, nil
}

func (c *softwareCanvas) Window() *sdl.Window {
	return c.win
}

func (c *softwareCanvas) NewRenderer(s sketch.Settings) sketch.Renderer {
	return raster.New(s.Attributes.Antialias)
}

func (c *softwareCanvas) Viewport() sketch.ResizeProps {
	surf, err := c.win.GetSurface()
	if err != nil {
		log.Printf("Failed to read window surface: %v", err)
		w, _ := c.win.GetSize()
		return viewportOf(c.win, w)
	}
	return viewportOf(c.win, surf.W)
}

func (c *softwareCanvas) Present(r sketch.Renderer) error {
	rr, ok := r.(*raster.Renderer)
	if !ok {
		return fmt.Errorf("software canvas cannot present %T", r)
	}
	img := rr.Image()
	if img == nil {
		return nil
	}
	src, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&img.Pix[0]),
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 32, int32(img.Stride),
		uint32(sdl.PIXELFORMAT_RGBA32),
	)
	if err != nil {
		return fmt.Errorf("wrapping frame: %w", err)
	}
	defer src.Free()
	dst, err := c.win.GetSurface()
	if err != nil {
		return fmt.Errorf("reading window surface: %w", err)
	}
	if err := src.BlitScaled(nil, dst, nil); err != nil {
		return fmt.Errorf("blitting frame: %w", err)
	}
	return c.win.UpdateSurface()
}

func (c *softwareCanvas) SetMinimized(m bool) {}

func (c *softwareCanvas) Destroy() {
	if err := c.win.Destroy(); err != nil {
		log.Printf("Failed to destroy SDL window: %v", err)
	}
	sdl.Quit()
}
