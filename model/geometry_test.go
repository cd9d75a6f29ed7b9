package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxGeometryLayout(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	require.Len(t, g.Vertices, 24)
	assert.Equal(t, 12, g.TriangleCount())

	for _, v := range g.Vertices {
		assert.InDelta(t, 0.5, abs(v.Pos.X), 1e-6)
		assert.InDelta(t, 0.5, abs(v.Pos.Y), 1e-6)
		assert.InDelta(t, 0.5, abs(v.Pos.Z), 1e-6)
	}
	// face 2 is the +Y face
	for i := 4; i <= 5; i++ {
		for _, v := range g.Triangle(i) {
			assert.Equal(t, float32(0.5), v.Pos.Y)
		}
	}
}

func TestBoxGeometrySideUVs(t *testing.T) {
	g := NewBoxGeometry(2, 4, 2)
	// side faces: px, nx, pz, nz
	for _, face := range []int{0, 1, 4, 5} {
		for tri := face * 2; tri <= face*2+1; tri++ {
			for _, v := range g.Triangle(tri) {
				if v.Pos.Y > 0 {
					assert.Equal(t, float32(1), v.UV.Y, "top edge of face %d", face)
				} else {
					assert.Equal(t, float32(0), v.UV.Y, "bottom edge of face %d", face)
				}
			}
		}
	}
}

func TestRemoveTopFace(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	require.NoError(t, g.RemoveFaces(4, 2))
	assert.Equal(t, 10, g.TriangleCount())
	for i := 0; i < g.TriangleCount(); i++ {
		tri := g.Triangle(i)
		onTop := tri[0].Pos.Y == 0.5 && tri[1].Pos.Y == 0.5 && tri[2].Pos.Y == 0.5
		assert.False(t, onTop, "triangle %d lies on the removed face", i)
	}
	assert.Len(t, g.Vertices, 24)
}

func TestRemoveFacesOutOfRange(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	assert.Error(t, g.RemoveFaces(11, 2))
	assert.Error(t, g.RemoveFaces(-1, 1))
	assert.Equal(t, 12, g.TriangleCount())
}

func TestBufferSizes(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1)
	assert.Equal(t, 24*20, g.GetVBufferSize())
	assert.Len(t, g.GetVBufferBytes(), g.GetVBufferSize())
	assert.Equal(t, 36*4, g.GetIdxBufferSize())
	assert.Len(t, g.GetIdxBufferBytes(), g.GetIdxBufferSize())
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
