// Package pointcloud holds the feature-point samples produced by an AR
// tracking session and the on-disk stream format they are replayed from.
package pointcloud

import (
	"errors"
	"fmt"
)

// Stride is the number of floats per feature: x, y, z, confidence.
const Stride = 4

// ErrMalformedSample is returned for a sample whose backing length is not a
// multiple of Stride.
var ErrMalformedSample = errors.New("pointcloud: sample length is not a multiple of 4")

// Sample is one point-cloud observation. Points is a flat, read-only sequence
// of (x, y, z, confidence) tuples owned by the producer.
type Sample struct {
	ID     int64
	Points []float32
}

// Feature is a single tracked point. Confidence is carried but unused by the
// mesh builder.
type Feature struct {
	X, Y, Z    float32
	Confidence float32
}

// Validate checks the stride invariant.
func (s Sample) Validate() error {
	if len(s.Points)%Stride != 0 {
		return fmt.Errorf("%w: id %d has %d floats", ErrMalformedSample, s.ID, len(s.Points))
	}
	return nil
}

// FeatureCount returns the number of complete features in the sample.
func (s Sample) FeatureCount() int {
	return len(s.Points) / Stride
}

// Feature returns feature i. It panics if i is out of range, like a slice index.
func (s Sample) Feature(i int) Feature {
	p := s.Points[i*Stride : i*Stride+Stride]
	return Feature{X: p[0], Y: p[1], Z: p[2], Confidence: p[3]}
}
