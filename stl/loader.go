// Package stl reads binary STL files into geometry the sketches can instance.
package stl

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"shader_cube/model"
	vm "shader_cube/vector_math"

	"github.com/chewxy/math32"
)

const (
	headerSize   = 80
	triangleSize = 50
)

// ReadFile loads a binary STL file.
func ReadFile(path string) (*model.Geometry, error) {
	log.Printf("Reading stl file %s", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stl file: %w", err)
	}
	g, err := Parse(filepath.Base(path), b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Successfully read stl file, Header: '%s', Triangle Count: %d", trimHeader(b[:headerSize]), g.TriangleCount())
	return g, nil
}

// Parse decodes binary STL data. Facet normals are ignored. UVs come from the bounding box: u along X and v along
// Y, so the shader gradient runs from the bottom to the top of the model as it does on the box faces.
func Parse(name string, b []byte) (*model.Geometry, error) {
	if len(b) < headerSize+4 {
		return nil, fmt.Errorf("truncated stl: %d bytes, header needs %d", len(b), headerSize+4)
	}
	tCnt := int(binary.LittleEndian.Uint32(b[headerSize : headerSize+4]))
	body := b[headerSize+4:]
	if len(body) < tCnt*triangleSize {
		return nil, fmt.Errorf("truncated stl: %d triangles need %d bytes, got %d", tCnt, tCnt*triangleSize, len(body))
	}
	if tCnt == 0 {
		return nil, fmt.Errorf("stl contains no triangles")
	}

	pos := make([]vm.Vec3, 0, tCnt*3)
	for i := 0; i < tCnt; i++ {
		t := body[i*triangleSize:]
		// t[0:12] is the facet normal, t[48:50] the attribute byte count
		pos = append(pos, toVec3(t[12:24]), toVec3(t[24:36]), toVec3(t[36:48]))
	}

	lo, hi := bounds(pos)
	ext := hi.Sub(lo)
	v := make([]model.Vertex, len(pos))
	id := make([]uint32, len(pos))
	for i, p := range pos {
		v[i] = model.Vertex{
			Pos: p,
			UV: vm.Vec2{
				X: normalize(p.X-lo.X, ext.X),
				Y: normalize(p.Y-lo.Y, ext.Y),
			},
		}
		id[i] = uint32(i)
	}
	return model.NewGeometry(name, v, id), nil
}

func bounds(pos []vm.Vec3) (vm.Vec3, vm.Vec3) {
	lo := vm.Splat(math32.MaxFloat32)
	hi := vm.Splat(-math32.MaxFloat32)
	for _, p := range pos {
		lo = vm.Vec3{X: math32.Min(lo.X, p.X), Y: math32.Min(lo.Y, p.Y), Z: math32.Min(lo.Z, p.Z)}
		hi = vm.Vec3{X: math32.Max(hi.X, p.X), Y: math32.Max(hi.Y, p.Y), Z: math32.Max(hi.Z, p.Z)}
	}
	return lo, hi
}

// flat extents map to 0
func normalize(d float32, ext float32) float32 {
	if ext == 0 {
		return 0
	}
	return d / ext
}

func trimHeader(h []byte) string {
	for i, c := range h {
		if c == 0 {
			return string(h[:i])
		}
	}
	return string(h)
}

func toVec3(bytes []byte) vm.Vec3 {
	return vm.Vec3{
		X: toFloat32(bytes[:4]),
		Y: toFloat32(bytes[4:8]),
		Z: toFloat32(bytes[8:12]),
	}
}

func toFloat32(bytes []byte) float32 {
	bits := binary.LittleEndian.Uint32(bytes)
	return math.Float32frombits(bits)
}
