package material

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
)

// Resolver turns a fill color into a material handle. Implementations may
// block; callers run them off the update path via Resolve.
type Resolver interface {
	Resolve(ctx context.Context, fill Color) (*Handle, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, fill Color) (*Handle, error)

func (f ResolverFunc) Resolve(ctx context.Context, fill Color) (*Handle, error) {
	return f(ctx, fill)
}

// ColorResolver builds an opaque solid-color material.
type ColorResolver struct{}

func (ColorResolver) Resolve(ctx context.Context, fill Color) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fill.A = 1
	return newHandle(fill, nil), nil
}

// TextureResolver builds a material from a swatch image (TGA, PNG or JPEG).
// The swatch's mean color becomes the base fill; the requested color's alpha
// is kept.
type TextureResolver struct {
	Path string
}

func (r TextureResolver) Resolve(ctx context.Context, fill Color) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tex, err := LoadTexture(r.Path)
	if err != nil {
		return nil, err
	}
	return newHandle(fill, tex), nil
}

// LoadTexture decodes an image file into NRGBA.
func LoadTexture(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material: read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("material: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
