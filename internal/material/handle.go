package material

import (
	"image"
	"image/color"

	"github.com/google/uuid"
)

// Handle is an opaque, immutable reference to a resolved surface. Renderers
// read Base for solid fills; Texture is kept when the material came from a
// swatch image.
type Handle struct {
	ID      uuid.UUID
	Fill    Color
	Base    color.NRGBA
	Texture *image.NRGBA
}

func newHandle(fill Color, tex *image.NRGBA) *Handle {
	base := fill.NRGBA()
	if tex != nil {
		base = averageColor(tex, base.A)
	}
	return &Handle{
		ID:      uuid.New(),
		Fill:    fill,
		Base:    base,
		Texture: tex,
	}
}

// averageColor returns the mean RGB of tex with the given alpha. An empty
// image yields neutral grey.
func averageColor(tex *image.NRGBA, alpha uint8) color.NRGBA {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{R: 160, G: 160, B: 170, A: alpha}
	}

	var sumR, sumG, sumB float64
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return color.NRGBA{R: uint8(sumR/n + 0.5), G: uint8(sumG/n + 0.5), B: uint8(sumB/n + 0.5), A: alpha}
}
