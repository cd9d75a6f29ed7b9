package model

import (
	"log"
	vm "shader_cube/vector_math"
)

const (
	CAM_PERSPECTIVE_PROJECTION  = iota
	CAM_ORTHOGRAPHIC_PROJECTION = iota
)

type Camera struct {
	ProjectionType int

	// perspective
	Fov    float32
	Aspect float32

	// orthographic view volume bounds
	Left   float32
	Right  float32
	Top    float32
	Bottom float32

	Near float32
	Far  float32

	Pos     vm.Vec3
	LookDir vm.Vec3
	Up      vm.Vec3

	projection vm.Mat
}

// NewOrthographicCamera returns a camera at the origin looking down -Z whose view volume spans
// [-1, 1] on both axes.
func NewOrthographicCamera() *Camera {
	c := &Camera{
		ProjectionType: CAM_ORTHOGRAPHIC_PROJECTION,
		Left:           -1,
		Right:          1,
		Top:            1,
		Bottom:         -1,
		Near:           0.1,
		Far:            2000,
		LookDir:        vm.Vec3{Z: -1},
		Up:             vm.Vec3{Y: 1},
	}
	c.UpdateProjectionMatrix()
	return c
}

func NewPerspectiveCamera(fov float32, aspect float32, near float32, far float32) *Camera {
	c := &Camera{
		ProjectionType: CAM_PERSPECTIVE_PROJECTION,
		Fov:            fov,
		Aspect:         aspect,
		Near:           near,
		Far:            far,
		LookDir:        vm.Vec3{Z: -1},
		Up:             vm.Vec3{Y: 1},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) SetPosition(x float32, y float32, z float32) {
	c.Pos = vm.Vec3{X: x, Y: y, Z: z}
}

// LookAt points the camera at target. Looking at its own position keeps the old direction.
func (c *Camera) LookAt(target vm.Vec3) {
	d := target.Sub(c.Pos)
	if d.Len() == 0 {
		log.Printf("Failed to calculate view direction, target - position = [0,0,0]. Keeping previous direction.")
		return
	}
	c.LookDir = d.Norm()
}

// UpdateProjectionMatrix must be called after any of the projection parameters changed.
func (c *Camera) UpdateProjectionMatrix() {
	switch c.ProjectionType {
	case CAM_PERSPECTIVE_PROJECTION:
		c.projection = vm.NewPerspective(vm.ToRad(c.Fov), c.Aspect, c.Near, c.Far)
	case CAM_ORTHOGRAPHIC_PROJECTION:
		c.projection = vm.NewOrthographic(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	default:
		log.Printf("Failed to select projection type, using identity.")
		c.projection = vm.NewUnitMat(4)
	}
}

func (c *Camera) Projection() vm.Mat {
	if c.projection == nil {
		c.UpdateProjectionMatrix()
	}
	return c.projection
}

func (c *Camera) View() vm.Mat {
	return vm.NewLookAt(c.Pos, c.Pos.Add(c.LookDir), c.Up)
}

// ViewProjection returns P·V.
func (c *Camera) ViewProjection() vm.Mat {
	p := c.Projection()
	v := c.View()
	return p.MustMult(&v)
}
