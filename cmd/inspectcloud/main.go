package main

import (
	"fmt"
	"os"

	"pointquad-renderer/internal/pointcloud"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectcloud <stream.pqc>")
		os.Exit(2)
	}
	path := os.Args[1]
	samples, err := pointcloud.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Samples: %d\n", len(samples))

	var prev int64
	malformed, repeats, empty, peak := 0, 0, 0, 0
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			malformed++
			fmt.Printf("  [%d] id=%d MALFORMED: %d floats\n", i, s.ID, len(s.Points))
			continue
		}
		if i > 0 && s.ID == prev {
			repeats++
		}
		prev = s.ID

		sum := pointcloud.Summarize(s)
		if sum.Features == 0 {
			empty++
		}
		if sum.Features > peak {
			peak = sum.Features
		}
		fmt.Printf("  [%d] id=%d features=%d conf=%.2f±%.2f\n",
			i, sum.ID, sum.Features, sum.ConfidenceMean, sum.ConfidenceStdDev)
		if sum.Features > 0 {
			fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
				sum.Min[0], sum.Max[0], sum.Min[1], sum.Max[1], sum.Min[2], sum.Max[2])
		}
	}

	fmt.Printf("Repeated ids: %d, empty: %d, malformed: %d\n", repeats, empty, malformed)
	fmt.Printf("Peak features: %d (scratch high-water mark: %d vertices, %d indices)\n", peak, peak*4, peak*6)
}
