// Package raster is a software implementation of the gradient pipeline. It renders headless and serves PNG export.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"shader_cube/model"
	"shader_cube/sketch"
	vm "shader_cube/vector_math"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// SUPERSAMPLING is the per axis factor used when antialiasing.
const SUPERSAMPLING = 2

// W_EPSILON drops triangles with a vertex on or behind the camera plane.
const W_EPSILON = 1e-6

type Renderer struct {
	clear      colorful.Color
	pixelRatio float32
	width      int
	height     int
	antialias  bool

	img      *image.RGBA
	disposed bool
}

var _ sketch.Renderer = (*Renderer)(nil)

func New(antialias bool) *Renderer {
	return &Renderer{
		pixelRatio: 1,
		antialias:  antialias,
	}
}

func (r *Renderer) SetClearColor(c colorful.Color) {
	r.clear = c
}

func (r *Renderer) SetPixelRatio(ratio float32) {
	r.pixelRatio = ratio
}

func (r *Renderer) SetSize(width int, height int) {
	r.width, r.height = width, height
}

// TargetSize is the size of the produced image: the viewport size times the pixel ratio.
func (r *Renderer) TargetSize() (int, int) {
	return int(math32.Round(float32(r.width) * r.pixelRatio)), int(math32.Round(float32(r.height) * r.pixelRatio))
}

// Image returns the last rendered frame, nil before the first Render.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

func (r *Renderer) Dispose() {
	r.img = nil
	r.disposed = true
}

func (r *Renderer) Render(scene *model.Scene, cam *model.Camera) error {
	if r.disposed {
		return fmt.Errorf("render on disposed renderer")
	}
	w, h := r.TargetSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid render target size %dx%d", w, h)
	}
	ss := 1
	if r.antialias {
		ss = SUPERSAMPLING
	}

	t := newTarget(w*ss, h*ss, r.clear)
	vp := cam.ViewProjection()
	for _, m := range scene.Meshes() {
		if m.Geometry == nil || m.Material == nil {
			continue
		}
		mm := m.ModelMat()
		mvp := vp.MustMult(&mm)
		for i := 0; i < m.Geometry.TriangleCount(); i++ {
			t.drawTriangle(m.Geometry.Triangle(i), mvp, m.Material)
		}
	}

	if ss == 1 {
		r.img = t.color
	} else {
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(r.img, r.img.Bounds(), t.color, t.color.Bounds(), xdraw.Src, nil)
	}
	return nil
}

// SavePNG writes the last frame to path.
func (r *Renderer) SavePNG(path string) error {
	if r.img == nil {
		return fmt.Errorf("nothing rendered yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %dx%d image to %s", r.img.Rect.Dx(), r.img.Rect.Dy(), path)
	return nil
}

// target is a color image with a depth buffer of the same size. Depth clears to 1, the far plane.
type target struct {
	color *image.RGBA
	depth []float32
	w, h  int
}

func newTarget(w int, h int, clear colorful.Color) *target {
	t := &target{
		color: image.NewRGBA(image.Rect(0, 0, w, h)),
		depth: make([]float32, w*h),
		w:     w,
		h:     h,
	}
	xdraw.Draw(t.color, t.color.Bounds(), image.NewUniform(toRGBA(clear)), image.Point{}, xdraw.Src)
	for i := range t.depth {
		t.depth[i] = 1
	}
	return t
}

// screenVertex is a vertex after the perspective divide and viewport transform. invW and uvW carry what is needed
// for perspective correct interpolation.
type screenVertex struct {
	x, y, z float32
	invW    float32
	uvW     vm.Vec2
}

// project applies mvp and the viewport transform with Vulkan conventions: y grows downwards, z stays in [0, 1].
func (t *target) project(v model.Vertex, mvp vm.Mat) (screenVertex, bool) {
	clip, w := vm.MulVec4(v.Pos, 1, mvp)
	if w <= W_EPSILON {
		return screenVertex{}, false
	}
	invW := 1 / w
	return screenVertex{
		x:    (clip.X*invW + 1) / 2 * float32(t.w),
		y:    (clip.Y*invW + 1) / 2 * float32(t.h),
		z:    clip.Z * invW,
		invW: invW,
		uvW:  v.UV.ScalarMul(invW),
	}, true
}

func (t *target) drawTriangle(tri [3]model.Vertex, mvp vm.Mat, mat *model.Material) {
	var sv [3]screenVertex
	for i, v := range tri {
		p, ok := t.project(v, mvp)
		if !ok {
			return
		}
		sv[i] = p
	}
	a, b, c := sv[0], sv[1], sv[2]
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}

	minX := clampInt(int(math32.Floor(min3(a.x, b.x, c.x))), 0, t.w-1)
	maxX := clampInt(int(math32.Ceil(max3(a.x, b.x, c.x))), 0, t.w-1)
	minY := clampInt(int(math32.Floor(min3(a.y, b.y, c.y))), 0, t.h-1)
	maxY := clampInt(int(math32.Ceil(max3(a.y, b.y, c.y))), 0, t.h-1)

	// no culling, both windings are filled
	for py := minY; py <= maxY; py++ {
		y := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			x := float32(px) + 0.5
			w0 := edge(b, c, x, y) / area
			w1 := edge(c, a, x, y) / area
			w2 := edge(a, b, x, y) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z < 0 || z > 1 {
				continue
			}
			idx := py*t.w + px
			if z >= t.depth[idx] {
				continue
			}
			invW := w0*a.invW + w1*b.invW + w2*c.invW
			uv := a.uvW.ScalarMul(w0).Add(b.uvW.ScalarMul(w1)).Add(c.uvW.ScalarMul(w2)).ScalarMul(1 / invW)
			t.depth[idx] = z
			t.color.SetRGBA(px, py, toRGBA(mat.Shade(uv)))
		}
	}
}

// edge is twice the signed area of (a, b, p).
func edge(a screenVertex, b screenVertex, px float32, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
