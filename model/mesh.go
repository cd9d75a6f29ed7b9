package model

import (
	vm "shader_cube/vector_math"
)

// Mesh places a shared geometry in the world and owns the material it is drawn with.
type Mesh struct {
	Geometry *Geometry
	Material *Material
	Position vm.Vec3
	Scale    vm.Vec3
}

func NewMesh(g *Geometry, m *Material) *Mesh {
	return &Mesh{
		Geometry: g,
		Material: m,
		Scale:    vm.Splat(1),
	}
}

// SetScalar scales the mesh uniformly.
func (m *Mesh) SetScalar(s float32) {
	m.Scale = vm.Splat(s)
}

// ModelMat returns T·S, the object to world transform.
func (m *Mesh) ModelMat() vm.Mat {
	t := vm.NewTranslation(m.Position)
	s := vm.NewScale(m.Scale)
	return t.MustMult(&s)
}
