package viewmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointquad-renderer/internal/quadmesh"
)

func verts(ps ...[3]float32) []quadmesh.Vertex {
	out := make([]quadmesh.Vertex, len(ps))
	for i, p := range ps {
		out[i].Position = p
	}
	return out
}

func TestFitCentersAndScales(t *testing.T) {
	t.Parallel()

	vs := verts([3]float32{-1, -1, 0}, [3]float32{1, 1, 0})
	v := Fit(Camera{}, vs, 100, 10)
	assert.InDelta(t, 40.0, v.Scale(), 1e-9)

	px, py, pz := v.Project(vs)
	require.Len(t, px, 2)
	assert.InDelta(t, 10, px[0], 1e-9)
	assert.InDelta(t, 90, py[0], 1e-9)
	assert.InDelta(t, 90, px[1], 1e-9)
	assert.InDelta(t, 10, py[1], 1e-9)
	assert.InDelta(t, 0, pz[0], 1e-9)
}

func TestFitYawTurnsAboutY(t *testing.T) {
	t.Parallel()

	// A 90° yaw maps +X onto -Z, so the nearer vertex (larger depth) is the one at -X.
	vs := verts([3]float32{1, 0, 0}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0})
	v := Fit(Camera{Yaw: 90}, vs, 64, 0)
	_, _, pz := v.Project(vs)
	assert.InDelta(t, -1, pz[0], 1e-9)
	assert.InDelta(t, 1, pz[1], 1e-9)
}

func TestFitSinglePointUsesMinimumSpan(t *testing.T) {
	t.Parallel()

	vs := verts([3]float32{3, 4, 5})
	v := Fit(DefaultCamera(), vs, 64, 8)
	assert.InDelta(t, 48/minSpan, v.Scale(), 1e-6)

	px, py, _ := v.Project(vs)
	assert.InDelta(t, 32, px[0], 1e-6)
	assert.InDelta(t, 32, py[0], 1e-6)
}

func TestPerspectiveEnlargesNearPoints(t *testing.T) {
	t.Parallel()

	vs := verts(
		[3]float32{1, 0, 1}, [3]float32{-1, 0, 1},
		[3]float32{1, 0, -1}, [3]float32{-1, 0, -1},
	)
	v := Fit(Camera{Perspective: true}, vs, 100, 0)
	px, _, _ := v.Project(vs)

	near := px[0] - px[1]
	far := px[2] - px[3]
	assert.Greater(t, near, far)
}

func TestFitEmpty(t *testing.T) {
	t.Parallel()

	v := Fit(DefaultCamera(), nil, 32, 0)
	px, py, pz := v.Project(nil)
	assert.Empty(t, px)
	assert.Empty(t, py)
	assert.Empty(t, pz)
}

func TestFitOversizedMarginKeepsOrientation(t *testing.T) {
	t.Parallel()

	vs := verts([3]float32{-0.1, 0, 0}, [3]float32{0.1, 0, 0})
	v := Fit(Camera{}, vs, 20, 16)
	assert.Greater(t, v.Scale(), 0.0)

	px, _, _ := v.Project(vs)
	assert.Less(t, px[0], px[1])
	for _, x := range px {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 20.0)
	}
}
