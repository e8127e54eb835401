package raster

import (
	"context"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointquad-renderer/internal/material"
	"pointquad-renderer/internal/quadmesh"
	"pointquad-renderer/internal/viewmatrix"
)

func quadRenderable(t *testing.T, centers ...[3]float32) *quadmesh.Renderable {
	t.Helper()
	handle, err := material.ColorResolver{}.Resolve(context.Background(), material.DefaultFill)
	require.NoError(t, err)

	m := &quadmesh.Mesh{Submeshes: []quadmesh.Submesh{{Name: quadmesh.SubmeshName, Material: handle}}}
	const d = float32(quadmesh.PointDelta)
	for i, c := range centers {
		m.Vertices = append(m.Vertices,
			quadmesh.Vertex{Position: [3]float32{c[0], c[1] + d, c[2]}},
			quadmesh.Vertex{Position: [3]float32{c[0] + d, c[1], c[2]}},
			quadmesh.Vertex{Position: [3]float32{c[0], c[1] - d, c[2]}},
			quadmesh.Vertex{Position: [3]float32{c[0] + d, c[1], c[2]}},
		)
		b := uint32(i * 4)
		m.Submeshes[0].Indices = append(m.Submeshes[0].Indices, b, b+1, b+2, b+2, b+3, b)
	}
	r, err := quadmesh.BoundsFinalizer{}.Finalize(context.Background(), m)
	require.NoError(t, err)
	return r
}

func TestRenderMeshNilIsBackground(t *testing.T) {
	t.Parallel()

	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := RenderMesh(nil, viewmatrix.DefaultCamera(), Options{Size: 16, Supersample: 2, Background: bg})
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, bg, img.NRGBAAt(5, 5))
	assert.Zero(t, Coverage(img, bg))
}

func TestRenderMeshSingleQuad(t *testing.T) {
	t.Parallel()

	r := quadRenderable(t, [3]float32{0, 0, 0})
	img := RenderMesh(r, viewmatrix.Camera{}, Options{Size: 64, Supersample: 1})

	cov := Coverage(img, color.NRGBA{})
	assert.Greater(t, cov, 0.15)
	assert.Less(t, cov, 0.4)

	// the diamond's left edge sits on x=0, so the right-centre pixel is covered
	c := img.NRGBAAt(40, 32)
	assert.Equal(t, uint8(255), c.A)
	assert.Greater(t, c.B, c.R, "marker should keep its blue tint")
}

func TestRenderMeshOversizedMarginStillDraws(t *testing.T) {
	t.Parallel()

	r := quadRenderable(t, [3]float32{0, 0, 0})
	img := RenderMesh(r, viewmatrix.Camera{}, Options{Size: 20, Supersample: 1, Margin: 16})
	assert.Greater(t, Coverage(img, color.NRGBA{}), 0.15)
}

func TestRenderMeshManyQuads(t *testing.T) {
	t.Parallel()

	r := quadRenderable(t,
		[3]float32{-0.02, -0.02, -1}, [3]float32{0.02, 0.02, -1},
		[3]float32{0.02, -0.02, -1.01}, [3]float32{-0.02, 0.02, -0.99},
	)
	img := RenderMesh(r, viewmatrix.DefaultCamera(), Options{Size: 128, Supersample: 2, Margin: 8})

	cov := Coverage(img, color.NRGBA{})
	assert.Greater(t, cov, 0.0)
	assert.Less(t, cov, 0.05)
}

func TestRasterizeTriangleDepthTest(t *testing.T) {
	t.Parallel()

	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	px := []float64{0, 8, 0}
	py := []float64{0, 0, 8}
	far := []float64{-1, -1, -1}
	near := []float64{1, 1, 1}

	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	RasterizeTriangle(fb, px, py, near, [3]int{0, 1, 2}, red, &lc)
	RasterizeTriangle(fb, px, py, far, [3]int{0, 1, 2}, green, &lc)

	c := fb.Image().NRGBAAt(1, 1)
	assert.Greater(t, c.R, c.G)
	assert.InDelta(t, 1.0, fb.ZBuf[1*8+1], 1e-9)
}

func TestRasterizeTriangleSkipsBadInput(t *testing.T) {
	t.Parallel()

	fb := NewFrameBuffer(4, 4)
	lc := DefaultLightConfig()
	px := []float64{0, 4, 0}
	py := []float64{0, 0, 4}
	pz := []float64{0, 0, 0}

	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 5}, color.NRGBA{A: 255}, &lc)
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 0, 1}, color.NRGBA{A: 255}, &lc)
	for _, z := range fb.ZBuf {
		assert.True(t, math.IsInf(z, -1))
	}
}

func TestACESTonemapRange(t *testing.T) {
	t.Parallel()

	assert.Zero(t, ACESTonemap(0))
	v := ACESTonemap(1)
	assert.Greater(t, v, 0.5)
	assert.Less(t, v, 1.0)
}
