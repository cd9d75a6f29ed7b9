package sketch

import (
	"fmt"
	"log"
	"shader_cube/model"
	"shader_cube/palette"
	"shader_cube/stl"
	vm "shader_cube/vector_math"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	CAM_ZOOM = 1
	CAM_NEAR = -100
	CAM_FAR  = 100

	POWER_MIN = 1
	POWER_MAX = 20
)

// ShaderCube fills an orthographic view with open topped boxes of random size and height, each shaded with a
// vertical gradient from the paper color into one palette color.
type ShaderCube struct {
	renderer   Renderer
	camera     *model.Camera
	scene      *model.Scene
	geometry   *model.Geometry
	palette    palette.Palette
	colors     []colorful.Color
	background colorful.Color
}

// NewShaderCube is the SetupFunc of the shader cube sketch.
func NewShaderCube(p Props) (Sketch, error) {
	if p.Renderer == nil {
		return nil, fmt.Errorf("shader cube needs a renderer")
	}
	lib, err := palette.Load()
	if err != nil {
		return nil, err
	}
	candidates := lib.FromSource(p.Settings.PaletteSource)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no palettes from source '%s'", p.Settings.PaletteSource)
	}

	s := &ShaderCube{renderer: p.Renderer}
	s.palette = Pick(p.Random, candidates)
	if s.colors, err = s.palette.Colors(); err != nil {
		return nil, err
	}
	s.background = Pick(p.Random, lib.PaperColors())
	log.Printf("Seed %d, palette '%s', background %s", p.Random.Seed(), s.palette.Name, s.background.Hex())
	s.renderer.SetClearColor(s.background)

	s.camera = model.NewOrthographicCamera()
	s.scene = model.NewScene()

	if s.geometry, err = loadGeometry(p.Settings.Stl); err != nil {
		return nil, err
	}

	n := p.Settings.MaxMeshes
	for i := 0; i < n; i++ {
		mat := model.NewMaterial(
			p.Random.Range(POWER_MIN, POWER_MAX),
			Pick(p.Random, s.colors),
			s.background,
		)
		mesh := model.NewMesh(s.geometry, mat)

		v := float32(i+1) / float32(n)
		mesh.SetScalar(v * math32.Abs(p.Random.Gaussian()*p.Random.Gaussian()) * 0.25)
		mesh.Position.Y += p.Random.Gaussian() * p.Random.Gaussian()
		s.scene.Add(mesh)
	}
	log.Printf("Created scene with %d meshes", s.scene.Len())
	return s, nil
}

// loadGeometry returns the STL model at path or, without one, a unit box whose top face is removed.
func loadGeometry(path string) (*model.Geometry, error) {
	if path != "" {
		return stl.ReadFile(path)
	}
	g := model.NewBoxGeometry(1, 1, 1)
	// faces are ordered px, nx, py, ... with two triangles each
	if err := g.RemoveFaces(4, 2); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *ShaderCube) Resize(p ResizeProps) {
	if p.ViewportWidth <= 0 || p.ViewportHeight <= 0 {
		log.Printf("Ignoring resize to %dx%d", p.ViewportWidth, p.ViewportHeight)
		return
	}
	s.renderer.SetPixelRatio(p.PixelRatio)
	s.renderer.SetSize(p.ViewportWidth, p.ViewportHeight)

	aspect := float32(p.ViewportWidth) / float32(p.ViewportHeight)
	c := s.camera
	c.Aspect = aspect
	c.Left = -CAM_ZOOM * aspect
	c.Right = CAM_ZOOM * aspect
	c.Top = CAM_ZOOM
	c.Bottom = -CAM_ZOOM
	c.Near = CAM_NEAR
	c.Far = CAM_FAR
	c.SetPosition(CAM_ZOOM, CAM_ZOOM, CAM_ZOOM)
	c.LookAt(vm.Vec3{})
	c.UpdateProjectionMatrix()
}

func (s *ShaderCube) Render(p RenderProps) error {
	return s.renderer.Render(s.scene, s.camera)
}

func (s *ShaderCube) Unload() {
	s.renderer.Dispose()
}

func (s *ShaderCube) Scene() *model.Scene {
	return s.scene
}

func (s *ShaderCube) Camera() *model.Camera {
	return s.camera
}

func (s *ShaderCube) Palette() palette.Palette {
	return s.palette
}

func (s *ShaderCube) Background() colorful.Color {
	return s.background
}
