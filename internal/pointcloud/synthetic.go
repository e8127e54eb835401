package pointcloud

import (
	"math/rand"
)

// Generator produces deterministic synthetic samples: features scattered on
// a tilted plane in front of the camera, with per-frame jitter.
type Generator struct {
	Features    int     // mean features per frame
	Extent      float32 // half-width of the plane, metres
	Depth       float32 // distance of the plane centre along -Z
	Jitter      float32 // per-frame positional noise
	RepeatEvery int     // every Nth frame re-emits the previous sample (0 = never)
	EmptyEvery  int     // every Nth frame has no features (0 = never)

	rng   *rand.Rand
	frame int
	last  Sample
}

// NewGenerator returns a generator seeded for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Features: 200,
		Extent:   0.5,
		Depth:    1.0,
		Jitter:   0.002,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next sample in the sequence.
func (g *Generator) Next() Sample {
	g.frame++

	if g.RepeatEvery > 0 && g.frame > 1 && g.frame%g.RepeatEvery == 0 {
		return g.last
	}

	id := g.last.ID + 1
	if g.EmptyEvery > 0 && g.frame%g.EmptyEvery == 0 {
		g.last = Sample{ID: id}
		return g.last
	}

	n := g.Features
	if n > 4 {
		// ±25% frame-to-frame variation exercises buffer reuse
		n += g.rng.Intn(n/2+1) - n/4
	}
	pts := make([]float32, 0, n*Stride)
	for i := 0; i < n; i++ {
		x := (g.rng.Float32()*2 - 1) * g.Extent
		y := (g.rng.Float32()*2 - 1) * g.Extent
		z := -g.Depth - 0.3*y
		x += (g.rng.Float32()*2 - 1) * g.Jitter
		y += (g.rng.Float32()*2 - 1) * g.Jitter
		pts = append(pts, x, y, z, g.rng.Float32())
	}
	g.last = Sample{ID: id, Points: pts}
	return g.last
}

// Take returns the next n samples.
func (g *Generator) Take(n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}
