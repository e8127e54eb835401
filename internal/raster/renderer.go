// Package raster draws finalized point-cloud meshes into images.
package raster

import (
	"image"
	"image/color"

	"pointquad-renderer/internal/quadmesh"
	"pointquad-renderer/internal/viewmatrix"
)

// Options controls a single render.
type Options struct {
	Size        int // output edge length in pixels
	Supersample int // internal resolution multiplier
	Margin      int // border in output pixels
	Background  color.NRGBA
}

// fallbackColor is used for submeshes without a material.
var fallbackColor = color.NRGBA{R: 160, G: 160, B: 170, A: 255}

// RenderMesh rasterizes r at Size×Supersample resolution. A nil renderable
// renders the background only. The caller downsamples when Supersample > 1.
func RenderMesh(r *quadmesh.Renderable, cam viewmatrix.Camera, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := opts.Size * ss

	fb := NewFrameBuffer(renderSize, renderSize)
	fb.Clear(opts.Background)
	if r == nil || r.Mesh == nil || len(r.Mesh.Vertices) == 0 {
		return fb.Image()
	}

	view := viewmatrix.Fit(cam, r.Mesh.Vertices, renderSize, opts.Margin*ss)
	px, py, pz := view.Project(r.Mesh.Vertices)
	lc := DefaultLightConfig()

	for _, sm := range r.Mesh.Submeshes {
		base := fallbackColor
		if sm.Material != nil {
			base = sm.Material.Base
		}
		for t := 0; t+2 < len(sm.Indices); t += 3 {
			vi := [3]int{int(sm.Indices[t]), int(sm.Indices[t+1]), int(sm.Indices[t+2])}
			RasterizeTriangle(fb, px, py, pz, vi, base, &lc)
		}
	}

	return fb.Image()
}

// Coverage returns the fraction of pixels that differ from bg.
func Coverage(img *image.NRGBA, bg color.NRGBA) float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return float64(n) / float64(total)
}
