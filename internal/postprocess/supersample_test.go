package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownsampleFactorOne(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, img, Downsample(img, 1))
}

func TestDownsampleSolid(t *testing.T) {
	t.Parallel()

	c := color.NRGBA{R: 53, G: 174, B: 255, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	out := Downsample(img, 2)
	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, 4, out.Bounds().Dy())
	got := out.NRGBAAt(2, 2)
	assert.InDelta(t, int(c.R), int(got.R), 1)
	assert.InDelta(t, int(c.G), int(got.G), 1)
	assert.InDelta(t, int(c.B), int(got.B), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestDownsampleTransparentStaysTransparent(t *testing.T) {
	t.Parallel()

	out := Downsample(image.NewNRGBA(image.Rect(0, 0, 6, 6)), 3)
	assert.Equal(t, 2, out.Bounds().Dx())
	for _, p := range out.Pix {
		assert.Zero(t, p)
	}
}

func TestDownsampleTooSmall(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, img, Downsample(img, 4))
}
