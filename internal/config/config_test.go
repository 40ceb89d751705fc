package config

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/surface"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 800 {
		t.Errorf("expected 800x800, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	shape := cfg.Surface.Shape
	if shape.Radius != 1 || shape.Amplitude != 2 || shape.Frequency != 1 || shape.Scale != 8 {
		t.Errorf("unexpected default shape %+v", shape)
	}
	if shape.Tilt != math.Pi/2 {
		t.Errorf("expected tilt pi/2, got %v", shape.Tilt)
	}
	if shape.Param != 10 || shape.Height != 20 {
		t.Errorf("expected divisors 10/20, got %v/%v", shape.Param, shape.Height)
	}

	grid := cfg.Surface.Grid
	if grid.TMin != -15 || grid.TMax != 15 || grid.AMin != 0 || grid.AMax != 15 || grid.Step != 0.5 {
		t.Errorf("unexpected default grid %+v", grid)
	}
	if grid.TangentStepT != 0.0005 || grid.TangentStepA != 0.0005 || !grid.DegreeScaledTangents {
		t.Errorf("unexpected default tangent settings %+v", grid)
	}

	if cfg.Lighting.Radius != 10 || cfg.Lighting.StepDegrees != 3 {
		t.Errorf("unexpected lighting %+v", cfg.Lighting)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

surface:
  shape:
    amplitude: 3
    frequency: 2
  grid:
    step: 0.25
    degree_scaled_tangents: false
  workers: 8

view:
  inertia: false

lighting:
  step_degrees: 5

logging:
  level: "debug"
  log_file: "surfview.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 || !cfg.Graphics.Fullscreen {
		t.Errorf("graphics not loaded: %+v", cfg.Graphics)
	}
	if cfg.Surface.Shape.Amplitude != 3 || cfg.Surface.Shape.Frequency != 2 {
		t.Errorf("shape not loaded: %+v", cfg.Surface.Shape)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Surface.Shape.Scale != 8 || cfg.Surface.Shape.Param != 10 {
		t.Errorf("shape defaults lost: %+v", cfg.Surface.Shape)
	}
	if cfg.Surface.Grid.Step != 0.25 || cfg.Surface.Grid.DegreeScaledTangents {
		t.Errorf("grid not loaded: %+v", cfg.Surface.Grid)
	}
	if cfg.Surface.Grid.TMin != -15 {
		t.Errorf("grid defaults lost: %+v", cfg.Surface.Grid)
	}
	if cfg.Surface.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Surface.Workers)
	}
	if cfg.View.Inertia {
		t.Error("expected inertia to be disabled")
	}
	if cfg.Lighting.StepDegrees != 5 {
		t.Errorf("expected light step 5, got %v", cfg.Lighting.StepDegrees)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "surfview.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(configPath, []byte("surface:\n  shape:\n    amplitde: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for misspelt key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty file changed config (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, nil},
		{"zero param", func(c *Config) { c.Surface.Shape.Param = 0 }, surface.ErrZeroDivisor},
		{"inverted t range", func(c *Config) { c.Surface.Grid.TMin = 100 }, surface.ErrDegenerateRange},
		{"zero step", func(c *Config) { c.Surface.Grid.Step = 0 }, surface.ErrInvalidStep},
		{"negative light radius", func(c *Config) { c.Lighting.Radius = -1 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Surface.Shape.Amplitude = 4.5
	cfg.Surface.Grid.Step = 0.125
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("saved config differs (-saved +loaded):\n%s", diff)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("graphics:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth, *flagHeight = 1024, 768 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
					t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth, *flagHeight = 0, 0 },
		},
		{
			name:  "workers and step flags",
			setup: func() { *flagWorkers, *flagStep = 4, 0.25 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Surface.Workers != 4 {
					t.Errorf("expected 4 workers, got %d", cfg.Surface.Workers)
				}
				if cfg.Surface.Grid.Step != 0.25 {
					t.Errorf("expected step 0.25, got %v", cfg.Surface.Grid.Step)
				}
			},
			teardown: func() { *flagWorkers, *flagStep = 0, 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidSurface(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("surface:\n  shape:\n    height: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, surface.ErrZeroDivisor) {
		t.Errorf("Load() = %v, want ErrZeroDivisor", err)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
surface:
  workers: 3
  grid:
    step: 1
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flags must not leak into LoadFile.
	*flagWidth = 1920
	defer func() { *flagWidth = 0 }()

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Surface.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Surface.Workers)
	}
	if cfg.Surface.Grid.Step != 1 {
		t.Errorf("step = %v, want 1", cfg.Surface.Grid.Step)
	}
	if cfg.Graphics.Width != Default().Graphics.Width {
		t.Errorf("width = %d, want default %d", cfg.Graphics.Width, Default().Graphics.Width)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestSurfaceBuilder(t *testing.T) {
	sc := Default().Surface
	sc.Workers = 4

	mesh, err := sc.Builder(zap.NewNop()).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := mesh.VertexCount(), sc.Grid.VertexCount(); got != want {
		t.Errorf("vertex count = %d, want %d", got, want)
	}

	want, err := surface.Build(sc.Shape, sc.Grid)
	if err != nil {
		t.Fatalf("surface.Build: %v", err)
	}
	if diff := cmp.Diff(want.Vertices, mesh.Vertices); diff != "" {
		t.Errorf("vertices differ from sequential build (-want +got):\n%s", diff)
	}
}
