// Package sketch defines the contract between the harness and a sketch, and the shader cube sketch itself.
package sketch

import (
	"shader_cube/model"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Renderer is what a sketch draws with. Both the Vulkan core and the software rasterizer implement it.
type Renderer interface {
	SetClearColor(c colorful.Color)
	SetPixelRatio(ratio float32)
	SetSize(width int, height int)
	Render(scene *model.Scene, cam *model.Camera) error
	Dispose()
}

// Props are handed to a SetupFunc once.
type Props struct {
	Renderer Renderer
	Settings Settings
	Random   *Random
}

type ResizeProps struct {
	PixelRatio     float32
	ViewportWidth  int
	ViewportHeight int
}

type RenderProps struct {
	Time     time.Duration
	Frame    int
	Playhead float32
}

// Sketch receives the lifecycle callbacks of the harness. Callbacks never overlap.
type Sketch interface {
	Resize(p ResizeProps)
	Render(p RenderProps) error
	Unload()
}

type SetupFunc func(p Props) (Sketch, error)
