package raster

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"shader_cube/model"
	"shader_cube/sketch"
	vm "shader_cube/vector_math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paper = colorful.Color{R: 1, G: 1, B: 1}
	red   = colorful.Color{R: 1}
	blue  = colorful.Color{B: 1}
)

// quad spans [-2, 2] in x and y at depth z with a constant v coordinate.
func quad(z float32, v float32) *model.Geometry {
	return model.NewGeometry("quad", []model.Vertex{
		{Pos: vm.Vec3{X: -2, Y: -2, Z: z}, UV: vm.Vec2{X: 0, Y: v}},
		{Pos: vm.Vec3{X: 2, Y: -2, Z: z}, UV: vm.Vec2{X: 1, Y: v}},
		{Pos: vm.Vec3{X: 2, Y: 2, Z: z}, UV: vm.Vec2{X: 1, Y: v}},
		{Pos: vm.Vec3{X: -2, Y: 2, Z: z}, UV: vm.Vec2{X: 0, Y: v}},
	}, []uint32{0, 1, 2, 0, 2, 3})
}

func render(t *testing.T, r *Renderer, scene *model.Scene, cam *model.Camera) {
	t.Helper()
	require.NoError(t, r.Render(scene, cam))
}

func TestClearOnly(t *testing.T) {
	r := New(false)
	r.SetClearColor(paper)
	r.SetSize(8, 4)
	render(t, r, model.NewScene(), model.NewOrthographicCamera())

	img := r.Image()
	require.Equal(t, 8, img.Rect.Dx())
	require.Equal(t, 4, img.Rect.Dy())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(3, 2))
}

func TestQuadShading(t *testing.T) {
	r := New(false)
	r.SetClearColor(paper)
	r.SetSize(16, 16)

	scene := model.NewScene()
	scene.Add(model.NewMesh(quad(-5, 1), model.NewMaterial(3, red, paper)))
	render(t, r, scene, model.NewOrthographicCamera())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, r.Image().RGBAAt(8, 8), "v = 1 is the full color")

	scene.Clear()
	scene.Add(model.NewMesh(quad(-5, 0.5), model.NewMaterial(20, red, paper)))
	render(t, r, scene, model.NewOrthographicCamera())
	px := r.Image().RGBAAt(8, 8)
	assert.Equal(t, uint8(255), px.R)
	assert.GreaterOrEqual(t, px.G, uint8(254), "0.5^10 is almost background")
}

func TestDepthOrder(t *testing.T) {
	for _, farFirst := range []bool{true, false} {
		r := New(false)
		r.SetClearColor(paper)
		r.SetSize(8, 8)

		near := model.NewMesh(quad(-2, 1), model.NewMaterial(1, red, paper))
		far := model.NewMesh(quad(-6, 1), model.NewMaterial(1, blue, paper))
		scene := model.NewScene()
		if farFirst {
			scene.Add(far, near)
		} else {
			scene.Add(near, far)
		}
		render(t, r, scene, model.NewOrthographicCamera())
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, r.Image().RGBAAt(4, 4), "far first: %v", farFirst)
	}
}

func TestOrientation(t *testing.T) {
	r := New(false)
	r.SetClearColor(paper)
	r.SetSize(10, 10)

	// a small quad in the upper half of the view
	m := model.NewMesh(quad(-5, 1), model.NewMaterial(1, red, paper))
	m.SetScalar(0.25)
	m.Position = vm.Vec3{Y: 0.5}
	scene := model.NewScene()
	scene.Add(m)
	render(t, r, scene, model.NewOrthographicCamera())

	img := r.Image()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(5, 2), "world up is screen up")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(5, 7))
}

func TestBehindCameraIsSkipped(t *testing.T) {
	r := New(false)
	r.SetClearColor(paper)
	r.SetSize(8, 8)

	scene := model.NewScene()
	scene.Add(model.NewMesh(quad(5, 1), model.NewMaterial(1, red, paper)))
	render(t, r, scene, model.NewPerspectiveCamera(60, 1, 0.1, 100))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, r.Image().RGBAAt(4, 4))
}

func TestAntialiasAndPixelRatio(t *testing.T) {
	r := New(true)
	r.SetClearColor(paper)
	r.SetPixelRatio(2)
	r.SetSize(10, 5)
	w, h := r.TargetSize()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)

	scene := model.NewScene()
	scene.Add(model.NewMesh(quad(-5, 1), model.NewMaterial(1, red, paper)))
	render(t, r, scene, model.NewOrthographicCamera())
	assert.Equal(t, 20, r.Image().Rect.Dx())
	assert.Equal(t, 10, r.Image().Rect.Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, r.Image().RGBAAt(10, 5))
}

func TestRenderErrors(t *testing.T) {
	r := New(false)
	assert.Error(t, r.Render(model.NewScene(), model.NewOrthographicCamera()), "no size")
	assert.Error(t, r.SavePNG(filepath.Join(t.TempDir(), "x.png")))

	r.SetSize(2, 2)
	r.Dispose()
	assert.Error(t, r.Render(model.NewScene(), model.NewOrthographicCamera()))
	assert.Nil(t, r.Image())
}

func TestSavePNG(t *testing.T) {
	r := New(false)
	r.SetClearColor(red)
	r.SetSize(6, 3)
	render(t, r, model.NewScene(), model.NewOrthographicCamera())

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, r.SavePNG(path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	cr, cg, cb, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{cr, cg, cb})
}

func TestShaderCubeScene(t *testing.T) {
	s := sketch.DefaultSettings()
	s.MaxMeshes = 200
	r := New(true)
	sk, err := sketch.NewShaderCube(sketch.Props{Renderer: r, Settings: s, Random: sketch.NewRandom(5)})
	require.NoError(t, err)
	sk.Resize(sketch.ResizeProps{PixelRatio: 1, ViewportWidth: 64, ViewportHeight: 48})
	require.NoError(t, sk.Render(sketch.RenderProps{}))

	img := r.Image()
	require.NotNil(t, img)
	assert.Equal(t, 64, img.Rect.Dx())
	bg := toRGBA(sk.(*sketch.ShaderCube).Background())
	differs := 0
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y) != bg {
				differs++
			}
		}
	}
	assert.Positive(t, differs, "some cubes are visible")
	sk.Unload()
	assert.Nil(t, r.Image())
}
