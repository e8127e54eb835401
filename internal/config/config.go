package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"pointquad-renderer/internal/material"
	"pointquad-renderer/internal/viewmatrix"
)

// Config holds input/output paths and render settings.
type Config struct {
	// Paths
	Input           string `json:"input"`
	OutputDir       string `json:"output_dir"`
	MaterialTexture string `json:"material_texture"`

	// Render settings
	Format      string `json:"format"` // "webp" or "tga"
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Margin      *int   `json:"margin"` // pixels per side; nil means 16
	Workers     int    `json:"workers"`

	// Camera
	Yaw         float64  `json:"yaw"`
	Pitch       *float64 `json:"pitch"`
	Perspective bool     `json:"perspective"`
	FOV         float64  `json:"fov"`

	// Fill color, RGB in [0, 1]. Markers are always opaque. Empty means the
	// default marker color.
	FillColor []float32 `json:"fill_color"`

	// Background, 8-bit RGBA. Empty means transparent.
	Background []int `json:"background"`

	dir string
}

// Load reads a JSON config file. Relative paths inside it resolve against
// the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input     string
	OutputDir string
	Format    string
	Size      int
	Workers   int
}

// Resolve applies flag overrides and fills defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Input != "" {
		c.Input = flags.Input
	} else if c.Input != "" {
		c.Input = c.rel(c.Input)
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	} else if c.OutputDir != "" {
		c.OutputDir = c.rel(c.OutputDir)
	}
	if c.MaterialTexture != "" {
		c.MaterialTexture = c.rel(c.MaterialTexture)
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Margin == nil {
		m := 16
		c.Margin = &m
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Pitch == nil {
		p := viewmatrix.DefaultCamera().Pitch
		c.Pitch = &p
	}
}

// Validate reports settings that Resolve cannot default.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: no input stream")
	}
	switch c.Format {
	case "webp", "tga":
	default:
		return fmt.Errorf("config: unknown format %q (want webp or tga)", c.Format)
	}
	if c.Margin != nil {
		m := *c.Margin
		if m < 0 {
			return fmt.Errorf("config: margin %d is negative", m)
		}
		if 2*m >= c.RenderSize {
			return fmt.Errorf("config: margin %d leaves no room in a %dpx frame", m, c.RenderSize)
		}
	}
	if n := len(c.FillColor); n != 0 && n != 3 {
		return fmt.Errorf("config: fill_color needs 3 components, got %d", n)
	}
	if n := len(c.Background); n != 0 && n != 4 {
		return fmt.Errorf("config: background needs 4 components, got %d", n)
	}
	return nil
}

// Fill returns the configured fill color or material.DefaultFill.
func (c *Config) Fill() material.Color {
	if len(c.FillColor) != 3 {
		return material.DefaultFill
	}
	return material.Color{R: c.FillColor[0], G: c.FillColor[1], B: c.FillColor[2], A: 1}
}

// Resolver returns the material resolver implied by the config.
func (c *Config) Resolver() material.Resolver {
	if c.MaterialTexture != "" {
		return material.TextureResolver{Path: c.MaterialTexture}
	}
	return material.ColorResolver{}
}

// BackgroundColor returns the configured background or transparent black.
func (c *Config) BackgroundColor() color.NRGBA {
	if len(c.Background) != 4 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: byte8(c.Background[0]), G: byte8(c.Background[1]), B: byte8(c.Background[2]), A: byte8(c.Background[3])}
}

// Camera returns the preview camera.
func (c *Config) Camera() viewmatrix.Camera {
	cam := viewmatrix.DefaultCamera()
	cam.Yaw = c.Yaw
	if c.Pitch != nil {
		cam.Pitch = *c.Pitch
	}
	cam.Perspective = c.Perspective
	cam.FOV = c.FOV
	return cam
}

func byte8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (c *Config) rel(p string) string {
	if c.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}
