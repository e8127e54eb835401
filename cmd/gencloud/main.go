package main

import (
	"flag"
	"fmt"
	"os"

	"pointquad-renderer/internal/pointcloud"
)

func main() {
	out := flag.String("o", "cloud.pqc", "Output stream path")
	n := flag.Int("frames", 60, "Number of samples")
	features := flag.Int("features", 200, "Mean features per sample")
	seed := flag.Int64("seed", 1, "Random seed")
	repeat := flag.Int("repeat", 0, "Re-emit the previous sample every N frames (0 = never)")
	empty := flag.Int("empty", 0, "Emit an empty sample every N frames (0 = never)")
	flag.Parse()

	g := pointcloud.NewGenerator(*seed)
	g.Features = *features
	g.RepeatEvery = *repeat
	g.EmptyEvery = *empty

	samples := g.Take(*n)
	if err := pointcloud.WriteFile(*out, samples); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d samples to %s\n", len(samples), *out)
}
