// Package frames replays a point-cloud sample stream through the quad mesh
// builder and writes one rendered image per sample.
package frames

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"pointquad-renderer/internal/logging"
	"pointquad-renderer/internal/material"
	"pointquad-renderer/internal/pointcloud"
	"pointquad-renderer/internal/postprocess"
	"pointquad-renderer/internal/quadmesh"
	"pointquad-renderer/internal/raster"
	"pointquad-renderer/internal/scene"
	"pointquad-renderer/internal/viewmatrix"
)

// Config holds everything a replay needs.
type Config struct {
	OutputDir string
	Format    string // "webp" or "tga"
	Render    raster.Options
	Camera    viewmatrix.Camera
	Workers   int
	Fill      material.Color
	Resolver  material.Resolver
	Finalizer quadmesh.Finalizer // nil means quadmesh.BoundsFinalizer
	Progress  io.Writer // periodic progress lines; nil disables
}

// Result holds the outcome of one frame.
type Result struct {
	Frame    int
	SampleID int64
	Outcome  string
	Features int
	Image    string  // path relative to OutputDir
	Coverage float64 // fraction of pixels covered by markers
	Success  bool
	Error    string
}

type job struct {
	idx        int
	renderable *quadmesh.Renderable
}

// Run feeds samples through a builder one at a time, in order, and renders
// whatever the node displays after each update on a worker pool. It waits for
// the fill material before the first frame. Frames already dispatched are
// finished even if ctx is cancelled; the returned slice then covers only
// those frames.
func Run(ctx context.Context, cfg Config, samples []pointcloud.Sample) ([]Result, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("frames: create %s: %w", cfg.OutputDir, err)
	}

	node := scene.NewNode("pointcloud")
	builder := quadmesh.NewBuilder(node, quadmesh.Options{Resolver: cfg.Resolver, Finalizer: cfg.Finalizer})
	builder.Initialize(ctx, cfg.Fill)

	select {
	case <-builder.Material().Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if _, state := builder.Material().Peek(); state != material.Ready {
		return nil, fmt.Errorf("frames: material: %w", builder.Material().Err())
	}

	total := len(samples)
	results := make([]Result, total)
	var processed atomic.Int64
	start := time.Now()

	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	jobs := make(chan job, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				renderFrame(cfg, &results[j.idx], j.renderable)
				processed.Add(1)
			}
		}()
	}

	sent := 0
	var runErr error
	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		failed := builder.Failures()
		outcome, err := builder.Update(s)
		builder.Wait()
		if err == nil && builder.Failures() != failed {
			err = fmt.Errorf("frames: finalize sample %d: %w", s.ID, builder.Err())
		}

		results[i] = Result{
			Frame:    i,
			SampleID: s.ID,
			Outcome:  outcome.String(),
			Features: s.FeatureCount(),
		}
		sent = i + 1
		if err != nil {
			results[i].Error = err.Error()
			processed.Add(1)
			continue
		}
		jobs <- job{idx: i, renderable: node.Renderable()}
	}
	close(jobs)
	wg.Wait()
	close(done)

	logging.Logger().Info("frames: replay finished",
		"frames", sent, "generation", builder.Generation(), "elapsed", time.Since(start))
	return results[:sent], runErr
}

func renderFrame(cfg Config, res *Result, r *quadmesh.Renderable) {
	img := raster.RenderMesh(r, cfg.Camera, cfg.Render)
	img = postprocess.Downsample(img, cfg.Render.Supersample)
	res.Coverage = raster.Coverage(img, cfg.Render.Background)

	name := FrameName(res.Frame, cfg.Format)
	outPath := filepath.Join(cfg.OutputDir, name)
	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return
	}
	defer f.Close()

	if err := Encode(f, cfg.Format, img); err != nil {
		res.Error = err.Error()
		return
	}
	res.Image = name
	res.Success = true
}

// FrameName returns the file name of frame i.
func FrameName(i int, format string) string {
	return fmt.Sprintf("frame_%05d.%s", i, format)
}

// Encode writes img as WebP or TGA.
func Encode(w io.Writer, format string, img image.Image) error {
	switch format {
	case "tga":
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("TGA encode: %w", err)
		}
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
	default:
		return fmt.Errorf("frames: unknown format %q", format)
	}
	return nil
}
