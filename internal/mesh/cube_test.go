package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCubeVertexCounts(t *testing.T) {
	assert.Equal(t, int32(CubeVertexCount), Box().VertexCount())
	assert.Equal(t, int32(CubeVertexCount), LightCube().VertexCount())
	assert.Zero(t, Mesh{}.VertexCount())
}

func TestLayoutsCoverStride(t *testing.T) {
	for _, layout := range []Layout{BoxLayout, LightLayout} {
		end := 0
		for _, a := range layout.Attributes {
			assert.Equal(t, end, a.Offset)
			end += int(a.Size)
		}
		assert.Equal(t, layout.Stride, end)
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	m := Box()
	for i := 0; i < len(m.Vertices); i += m.Layout.Stride {
		v := m.Vertices[i : i+m.Layout.Stride]
		pos := mgl32.Vec3{v[0], v[1], v[2]}
		normal := mgl32.Vec3{v[3], v[4], v[5]}
		assert.InDelta(t, 1, normal.Len(), 1e-6)
		assert.InDelta(t, 0.5, pos.Dot(normal), 1e-6, "vertex %d lies on the face its normal names", i/m.Layout.Stride)
	}
}

func TestMeshesDoNotShareBacking(t *testing.T) {
	a := Box()
	a.Vertices[0] = 42
	assert.NotEqual(t, float32(42), Box().Vertices[0])
}
