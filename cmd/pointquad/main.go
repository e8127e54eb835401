package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"pointquad-renderer/internal/config"
	"pointquad-renderer/internal/frames"
	"pointquad-renderer/internal/logging"
	"pointquad-renderer/internal/pointcloud"
	"pointquad-renderer/internal/raster"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Point-cloud sample stream (.pqc)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	format := flag.String("format", "", "Frame format: webp or tga (default: webp)")
	size := flag.Int("size", 0, "Frame size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of render goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Replay only the first N samples")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		Input:     *input,
		OutputDir: *outputDir,
		Format:    *format,
		Size:      *size,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	samples, err := pointcloud.ReadFile(cfg.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading samples: %v\n", err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(samples) {
		samples = samples[:*testN]
	}
	if len(samples) == 0 {
		fmt.Println("No samples to replay.")
		os.Exit(0)
	}

	fmt.Printf("Point-cloud quad renderer → %s\n", cfg.Format)
	fmt.Printf("Samples: %d, Workers: %d, Size: %d\n", len(samples), cfg.Workers, cfg.RenderSize)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, runErr := frames.Run(ctx, frames.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Render: raster.Options{
			Size:        cfg.RenderSize,
			Supersample: cfg.Supersample,
			Margin:      *cfg.Margin,
			Background:  cfg.BackgroundColor(),
		},
		Camera:   cfg.Camera(),
		Workers:  cfg.Workers,
		Fill:     cfg.Fill(),
		Resolver: cfg.Resolver(),
		Progress: os.Stdout,
	}, samples)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	if runErr != nil && len(results) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	success, failed := 0, 0
	outcomes := map[string]int{}
	var errors []frames.Result
	for _, r := range results {
		outcomes[r.Outcome]++
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(samples))
	fmt.Printf("Outcomes: built=%d unchanged=%d cleared=%d rejected=%d\n",
		outcomes["built"], outcomes["unchanged"], outcomes["cleared"], outcomes["rejected"])

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d (sample %d): %s\n", e.Frame, e.SampleID, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := frames.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Interrupted: %v\n", runErr)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
