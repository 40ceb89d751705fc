// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/surface"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Surface  SurfaceConfig  `yaml:"surface"`
	View     ViewConfig     `yaml:"view"`
	Lighting LightingConfig `yaml:"lighting"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SurfaceConfig holds the surface constants and sampling lattice.
type SurfaceConfig struct {
	Shape   surface.Shape `yaml:"shape"`
	Grid    surface.Grid  `yaml:"grid"`
	Workers int           `yaml:"workers"` // Rows evaluated concurrently; 1 is sequential
}

// Builder returns a mesh builder for the configured surface.
func (s SurfaceConfig) Builder(log *zap.Logger) *surface.Builder {
	return surface.NewBuilder(s.Shape, s.Grid,
		surface.WithWorkers(s.Workers),
		surface.WithLogger(log),
	)
}

// ViewConfig holds trackball settings.
type ViewConfig struct {
	DragSensitivity float32 `yaml:"drag_sensitivity"` // Radians per pixel of drag
	Inertia         bool    `yaml:"inertia"`          // Keep spinning after release
}

// LightingConfig holds the orbiting point light settings.
type LightingConfig struct {
	Radius      float64 `yaml:"radius"`
	StepDegrees float64 `yaml:"step_degrees"` // Angle change per arrow key press
	StartAngle  float64 `yaml:"start_angle"`  // Degrees
}

// OutputConfig holds paths for files the viewer writes.
type OutputConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ExportPath    string `yaml:"export_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Surface: SurfaceConfig{
			Shape:   surface.DefaultShape(),
			Grid:    surface.DefaultGrid(),
			Workers: 1,
		},
		View: ViewConfig{
			DragSensitivity: 0.01,
			Inertia:         true,
		},
		Lighting: LightingConfig{
			Radius:      10,
			StepDegrees: 3,
			StartAngle:  0,
		},
		Output: OutputConfig{
			ScreenshotDir: "screenshots",
			ExportPath:    "surface.glb",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings that would otherwise fail deep inside
// mesh generation or window creation.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if err := c.Surface.Shape.Validate(); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	if err := c.Surface.Grid.Validate(); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	if c.Lighting.Radius < 0 {
		return fmt.Errorf("lighting radius %v must not be negative", c.Lighting.Radius)
	}
	return nil
}
