package model

import (
	"fmt"
	vm "shader_cube/vector_math"
	"unsafe"
)

// Geometry holds vertex and index data that can be shared between any number of meshes.
// It is treated as read-only once a mesh references it.
type Geometry struct {
	Name     string
	Vertices []Vertex
	VIndices []uint32
}

func NewGeometry(name string, v []Vertex, id []uint32) *Geometry {
	return &Geometry{
		Name:     name,
		Vertices: v,
		VIndices: id,
	}
}

// NewBoxGeometry builds an axis aligned box centered on the origin. Faces are emitted in the
// order +X, -X, +Y, -Y, +Z, -Z with two triangles each, so triangle 2k and 2k+1 form face k.
// Every face carries its own UVs with v = 1 along the face's upper edge (for the +Y and -Y
// faces "upper" is the -Z edge).
func NewBoxGeometry(width, height, depth float32) *Geometry {
	g := &Geometry{Name: "box"}
	g.buildPlane(2, 1, 0, -1, -1, depth, height, width)   // px
	g.buildPlane(2, 1, 0, 1, -1, depth, height, -width)   // nx
	g.buildPlane(0, 2, 1, 1, 1, width, depth, height)     // py
	g.buildPlane(0, 2, 1, 1, -1, width, depth, -height)   // ny
	g.buildPlane(0, 1, 2, 1, -1, width, height, depth)    // pz
	g.buildPlane(0, 1, 2, -1, -1, width, height, -depth)  // nz
	return g
}

// buildPlane appends a single quad spanning the axes u and v at offset depth/2 along axis w.
func (g *Geometry) buildPlane(u, v, w int, uDir, vDir, width, height, depth float32) {
	base := uint32(len(g.Vertices))
	for iy := 0; iy <= 1; iy++ {
		for ix := 0; ix <= 1; ix++ {
			var p [3]float32
			p[u] = (float32(ix)*width - width/2) * uDir
			p[v] = (float32(iy)*height - height/2) * vDir
			p[w] = depth / 2
			g.Vertices = append(g.Vertices, Vertex{
				Pos: vm.Vec3{X: p[0], Y: p[1], Z: p[2]},
				UV:  vm.Vec2{X: float32(ix), Y: 1 - float32(iy)},
			})
		}
	}
	a := base      // ix 0, iy 0
	b := base + 2  // ix 0, iy 1
	c := base + 3  // ix 1, iy 1
	d := base + 1  // ix 1, iy 0
	g.VIndices = append(g.VIndices, a, b, d, b, c, d)
}

// TriangleCount reports the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.VIndices) / 3
}

// RemoveFaces drops count triangles starting at triangle index first. Vertices are kept, they
// simply stop being referenced.
func (g *Geometry) RemoveFaces(first int, count int) error {
	if first < 0 || count < 0 || first+count > g.TriangleCount() {
		return fmt.Errorf("can't remove triangles [%d, %d) from geometry '%s' with %d triangles",
			first, first+count, g.Name, g.TriangleCount())
	}
	g.VIndices = append(g.VIndices[:first*3], g.VIndices[(first+count)*3:]...)
	return nil
}

// Triangle returns the three vertices of triangle i.
func (g *Geometry) Triangle(i int) [3]Vertex {
	return [3]Vertex{
		g.Vertices[g.VIndices[i*3]],
		g.Vertices[g.VIndices[i*3+1]],
		g.Vertices[g.VIndices[i*3+2]],
	}
}

// GetVBufferSize returns the size required for keeping the vertices in device memory.
func (g *Geometry) GetVBufferSize() int {
	return int(unsafe.Sizeof(Vertex{})) * len(g.Vertices)
}

// GetVBufferBytes returns the raw bytes representing all vertices.
// Mainly used to execute vk.Memcopy(..., src []byte) to move memory from CPU to GPU
func (g *Geometry) GetVBufferBytes() []byte {
	return rawBytes(g.Vertices)
}

// GetIdxBufferSize returns the size required for keeping the indices in device memory.
func (g *Geometry) GetIdxBufferSize() int {
	return int(unsafe.Sizeof(uint32(0))) * len(g.VIndices)
}

// GetIdxBufferBytes returns the raw bytes of the indices used to address vertex data.
func (g *Geometry) GetIdxBufferBytes() []byte {
	return rawBytes(g.VIndices)
}
