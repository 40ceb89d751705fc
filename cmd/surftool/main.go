// surftool is a CLI utility for inspecting and exporting the ruled surface
// without opening a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/surfview/internal/config"
	"github.com/Faultbox/surfview/internal/export"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/surface"
	"github.com/Faultbox/surfview/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "sample":
		cmdSample(args)
	case "export":
		cmdExport(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`surftool - ruled surface utility

Usage:
  surftool <command> [options]

Commands:
  info                       Show grid counts, vertex count and bounds
  sample -t T -a A           Evaluate point, tangents and normal at one sample
  export <out.gltf|out.glb>  Write the mesh as glTF 2.0
  config [out.yaml]          Write the effective config (default: user config dir)

Every command accepts -config <file> and -debug.

Examples:
  surftool info -config surface.yaml
  surftool sample -t 0 -a 1.5
  surftool export surface.glb
  surftool config ./config.yaml`)
}

// commonFlags registers the flags shared by every command.
func commonFlags(fs *flag.FlagSet) (configPath *string, debug *bool) {
	configPath = fs.String("config", "", "Path to config file")
	debug = fs.Bool("debug", false, "Enable debug logging")
	return configPath, debug
}

func loadConfig(configPath string, debug bool) *config.Config {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level := "warn"
	if debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func buildMesh(cfg *config.Config) *surface.Mesh {
	mesh, err := cfg.Surface.Builder(logger.Named("surface")).Build(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return mesh
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	fs.Parse(args)

	cfg := loadConfig(*configPath, *debug)
	defer logger.Sync()

	g := cfg.Surface.Grid
	mesh := buildMesh(cfg)
	b := mesh.Bounds

	fmt.Printf("Grid:       t [%g, %g]  a [%g, %g]  step %g\n", g.TMin, g.TMax, g.AMin, g.AMax, g.Step)
	fmt.Printf("Samples:    %d x %d\n", g.TCount(), g.ACount())
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Bounds min: %s\n", formatVec(b.Min))
	fmt.Printf("Bounds max: %s\n", formatVec(b.Max))
	fmt.Printf("Size:       %s\n", formatVec(b.Size()))
	fmt.Printf("Center:     %s\n", formatVec(b.Center()))
	fmt.Printf("Non-finite: %d\n", mesh.NonFinite())
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	t := fs.Float64("t", 0, "Parameter t")
	a := fs.Float64("a", 0, "Parameter a")
	fs.Parse(args)

	cfg := loadConfig(*configPath, *debug)
	defer logger.Sync()

	shape, grid := cfg.Surface.Shape, cfg.Surface.Grid
	dT, dA := surface.Tangents(shape, grid, *t, *a)

	fmt.Printf("Sample:  t=%g a=%g\n", *t, *a)
	fmt.Printf("Point:   %s\n", formatVec(shape.Point(*t, *a)))
	fmt.Printf("dT:      %s\n", formatVec(dT))
	fmt.Printf("dA:      %s\n", formatVec(dA))
	fmt.Printf("Normal:  %s\n", formatVec(surface.Normal(shape, grid, *t, *a)))
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	fs.Parse(args)

	cfg := loadConfig(*configPath, *debug)
	defer logger.Sync()

	out := cfg.Output.ExportPath
	if fs.NArg() > 0 {
		out = fs.Arg(0)
	}

	mesh := buildMesh(cfg)
	if err := export.WriteGLTF(mesh, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d vertices to %s\n", mesh.VertexCount(), out)
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath, debug := commonFlags(fs)
	fs.Parse(args)

	cfg := loadConfig(*configPath, *debug)
	defer logger.Sync()

	var out string
	var err error
	if fs.NArg() > 0 {
		out = fs.Arg(0)
		err = cfg.SaveTo(out)
	} else {
		out, err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote config to %s\n", out)
}

func formatVec(v math.Vec3d) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
