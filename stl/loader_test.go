package stl

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(header string, tris [][9]float32) []byte {
	b := make([]byte, headerSize+4+len(tris)*triangleSize)
	copy(b, header)
	binary.LittleEndian.PutUint32(b[headerSize:], uint32(len(tris)))
	for i, t := range tris {
		off := headerSize + 4 + i*triangleSize + 12
		for j, f := range t {
			binary.LittleEndian.PutUint32(b[off+j*4:], math.Float32bits(f))
		}
	}
	return b
}

func TestParse(t *testing.T) {
	b := encode("solid test", [][9]float32{
		{0, 0, 0, 2, 0, 0, 2, 4, 0},
		{0, 0, 0, 2, 4, 0, 0, 4, 1},
	})
	g, err := Parse("test", b)
	require.NoError(t, err)
	assert.Equal(t, 2, g.TriangleCount())
	assert.Len(t, g.Vertices, 6)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, g.VIndices)

	tri := g.Triangle(0)
	assert.InDelta(t, 1, tri[1].UV.X, 1e-6)
	assert.InDelta(t, 0, tri[1].UV.Y, 1e-6)
	assert.InDelta(t, 1, tri[2].UV.Y, 1e-6)
	top := g.Triangle(1)[2]
	assert.InDelta(t, 0, top.UV.X, 1e-6)
	assert.InDelta(t, 1, top.UV.Y, 1e-6)
}

func TestParseFlatExtent(t *testing.T) {
	g, err := Parse("flat", encode("", [][9]float32{{0, 1, 0, 1, 1, 0, 1, 1, 1}}))
	require.NoError(t, err)
	for _, v := range g.Vertices {
		assert.Zero(t, v.UV.Y)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("short", make([]byte, 10))
	assert.ErrorContains(t, err, "truncated")

	b := encode("", [][9]float32{{0, 0, 0, 1, 0, 0, 0, 1, 0}})
	_, err = Parse("cut", b[:len(b)-1])
	assert.ErrorContains(t, err, "truncated")

	_, err = Parse("empty", encode("", nil))
	assert.ErrorContains(t, err, "no triangles")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, encode("solid", [][9]float32{{0, 0, 0, 1, 0, 0, 0, 1, 0}}), 0o644))
	g, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tri.stl", g.Name)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
