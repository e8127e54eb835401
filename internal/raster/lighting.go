package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LightConfig holds precomputed lighting parameters for flat shading.
type LightConfig struct {
	LightDir r3.Vec
	RimDir   r3.Vec
	HalfMain r3.Vec // Blinn-Phong half vector
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig is a soft key/rim setup that keeps camera-facing markers
// close to their material color.
func DefaultLightConfig() LightConfig {
	lightDir := r3.Unit(r3.Vec{X: 180, Y: 260, Z: 140})
	rimDir := r3.Unit(r3.Vec{X: -160, Y: 130, Z: -210})
	viewDir := r3.Unit(r3.Vec{X: 0, Y: -110, Z: -400})

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: r3.Unit(r3.Sub(lightDir, viewDir)),
		Ambient:  0.55,
		Hemi:     0.30,
		Direct:   0.60,
		Rim:      0.20,
		SpecInt:  0.25,
		SpecPow:  12.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the combined lighting scalar for a unit face normal.
// Faces are lit from both sides.
func (lc *LightConfig) Shade(normal r3.Vec) float64 {
	ndlMain := math.Abs(r3.Dot(normal, lc.LightDir))
	ndlRim := math.Abs(r3.Dot(normal, lc.RimDir))

	hemi := (1.0-math.Abs(normal.Y))*0.5 + 0.5

	ndh := r3.Dot(normal, lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// srgbToLinear is a 256-entry decode table.
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// shadeColor lights an sRGB color and returns it re-encoded as sRGB.
func (lc *LightConfig) shadeColor(c [3]uint8, shade float64) [3]uint8 {
	var out [3]uint8
	for k := 0; k < 3; k++ {
		lin := srgbToLinear[c[k]] * shade * lc.Exposure
		out[k] = clamp255(math.Pow(ACESTonemap(lin), lc.InvGamma) * 255)
	}
	return out
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
