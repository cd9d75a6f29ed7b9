package model

// Scene is an ordered collection of meshes. The version counter increases on every change so
// renderers know when their device side copies went stale.
type Scene struct {
	meshes  []*Mesh
	version uint64
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) Add(m ...*Mesh) {
	s.meshes = append(s.meshes, m...)
	s.version++
}

func (s *Scene) Clear() {
	s.meshes = nil
	s.version++
}

func (s *Scene) Len() int {
	return len(s.meshes)
}

func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

func (s *Scene) Version() uint64 {
	return s.version
}

// Geometries returns every distinct geometry referenced by the scene in order of first use.
func (s *Scene) Geometries() []*Geometry {
	seen := make(map[*Geometry]bool)
	var gs []*Geometry
	for _, m := range s.meshes {
		if m.Geometry == nil || seen[m.Geometry] {
			continue
		}
		seen[m.Geometry] = true
		gs = append(gs, m.Geometry)
	}
	return gs
}
