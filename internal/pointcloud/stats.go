package pointcloud

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one sample for inspection tooling.
type Summary struct {
	ID               int64
	Features         int
	Min, Max         [3]float64
	ConfidenceMean   float64
	ConfidenceStdDev float64
}

// Summarize computes extents and confidence statistics over the complete
// features of s.
func Summarize(s Sample) Summary {
	n := s.FeatureCount()
	sum := Summary{ID: s.ID, Features: n}
	if n == 0 {
		return sum
	}

	axes := [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}
	conf := make([]float64, n)
	for i := 0; i < n; i++ {
		f := s.Feature(i)
		axes[0][i] = float64(f.X)
		axes[1][i] = float64(f.Y)
		axes[2][i] = float64(f.Z)
		conf[i] = float64(f.Confidence)
	}
	for k := 0; k < 3; k++ {
		sum.Min[k] = floats.Min(axes[k])
		sum.Max[k] = floats.Max(axes[k])
	}

	if n == 1 {
		sum.ConfidenceMean = conf[0]
		return sum
	}
	sum.ConfidenceMean, sum.ConfidenceStdDev = stat.MeanStdDev(conf, nil)
	return sum
}
