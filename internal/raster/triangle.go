package raster

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RasterizeTriangle fills one flat-shaded, solid-color triangle with depth
// testing. px/py are screen coordinates and pz depth (larger is nearer).
// Triangles with an out-of-range index, zero area or no on-screen pixels are
// skipped.
//
// The pixel loop does not allocate.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	vi [3]int,
	base color.NRGBA,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Face normal in screen space; y is flipped back so "up" matches world up.
	n := r3.Cross(r3.Vec{X: x1 - x0, Y: y0 - y1, Z: z1 - z0}, r3.Vec{X: x2 - x0, Y: y0 - y2, Z: z2 - z0})
	if r3.Norm(n) < 1e-12 {
		return
	}
	shaded := lc.shadeColor([3]uint8{base.R, base.G, base.B}, lc.Shade(r3.Unit(n)))

	w, h := fb.Width, fb.Height
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))
	if minX < 0 {
		minX = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		// sample at pixel centres
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			p := fb.Color[zIdx*4 : zIdx*4+4]
			p[0], p[1], p[2], p[3] = shaded[0], shaded[1], shaded[2], base.A
		}
	}
}
