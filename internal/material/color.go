// Package material resolves fill colors into opaque material handles.
// Resolution runs in the background; consumers poll a Holder without
// blocking.
package material

import "image/color"

// Color is a linear RGBA fill color with components nominally in [0, 1].
type Color struct {
	R, G, B, A float32
}

// DefaultFill is the point-marker color. Blue is 256/255 and clamps to
// full intensity when quantized.
var DefaultFill = Color{R: 53 / 255.0, G: 174 / 255.0, B: 256 / 255.0, A: 1}

// NRGBA quantizes c to 8 bits per channel, clamping out-of-range values.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: quantize(c.R), G: quantize(c.G), B: quantize(c.B), A: quantize(c.A)}
}

// FromNRGBA converts an 8-bit color back to a Color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
