// Package viewer implements the interactive surface viewer loop.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/config"
	"github.com/Faultbox/surfview/internal/engine/camera"
	"github.com/Faultbox/surfview/internal/engine/debug"
	"github.com/Faultbox/surfview/internal/engine/input"
	"github.com/Faultbox/surfview/internal/engine/lighting"
	"github.com/Faultbox/surfview/internal/engine/picking"
	"github.com/Faultbox/surfview/internal/engine/renderer"
	"github.com/Faultbox/surfview/internal/engine/scene"
	"github.com/Faultbox/surfview/internal/engine/window"
	"github.com/Faultbox/surfview/internal/export"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/surface"
)

// Title is the window title.
const Title = "Ruled Surface"

// defaultFPS times the trackball spring when no frame limit is set.
const defaultFPS = 60

// pickTolerance is how far, in model units, a vertex may lie from the
// cursor ray and still be picked.
const pickTolerance = 0.5

// Viewer owns the window, the render context and the interactive state.
type Viewer struct {
	cfg     *config.Config
	running bool

	window      *window.Window
	rc          *renderer.RenderContext
	input       *input.Input
	trackball   *camera.Trackball
	light       *lighting.CircleLight
	screenshots *debug.ScreenshotCapture

	mesh      *surface.Mesh
	positions []float32 // Float32 copy of mesh vertices for picking
	bounds    picking.AABB
	log       *zap.Logger
}

// New builds the surface mesh, opens the window and uploads the mesh.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		input:       input.New(),
		light:       lighting.NewCircleLight(cfg.Lighting.Radius, cfg.Lighting.StepDegrees, cfg.Lighting.StartAngle),
		screenshots: debug.NewScreenshotCapture(cfg.Output.ScreenshotDir, "surface"),
		log:         logger.Named("viewer"),
	}

	fps := cfg.Graphics.FPSLimit
	if fps <= 0 {
		fps = defaultFPS
	}
	v.trackball = camera.NewTrackball(fps, cfg.View.DragSensitivity, cfg.View.Inertia)

	// Build before opening the window so config errors exit quickly.
	mesh, err := BuildMesh(ctx, cfg.Surface)
	if err != nil {
		return nil, err
	}
	v.mesh = mesh
	v.positions, _ = mesh.Float32()
	v.bounds = picking.NewAABB(mesh.Bounds.Min.Vec3().Array(), mesh.Bounds.Max.Vec3().Array()).Expand(pickTolerance)

	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Render context must be created after the GL context exists.
	w, h := v.window.DrawableSize()
	v.rc, err = renderer.New(renderer.DefaultConfig(w, h))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.rc.Upload(mesh); err != nil {
		v.Close()
		return nil, err
	}

	v.log.Info("viewer initialized", zap.Int32("vertices", v.rc.Count()))
	return v, nil
}

// BuildMesh evaluates the configured surface.
func BuildMesh(ctx context.Context, sc config.SurfaceConfig) (*surface.Mesh, error) {
	mesh, err := sc.Builder(logger.Named("surface")).Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build surface: %w", err)
	}
	if n := mesh.NonFinite(); n > 0 {
		logger.Warn("surface has non-finite values", zap.Int("count", n))
	}
	return mesh, nil
}

// Run starts the main loop and returns when the window is closed or ESC is
// pressed.
func (v *Viewer) Run() error {
	v.running = true

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		v.trackball.Update()
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// Close releases GPU and window resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.rc != nil {
		v.rc.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) frame() scene.Uniforms {
	return scene.Build(scene.Frame{
		View:  v.trackball.ViewMatrix(),
		Light: v.light.PointLight().Position,
	})
}

func (v *Viewer) render() {
	v.rc.Draw(v.frame())
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		// The event carries window points; the viewport needs pixels.
		v.rc.Resize(v.window.DrawableSize())

	case input.EventMouseDown:
		switch event.Button {
		case sdl.BUTTON_LEFT:
			v.trackball.BeginDrag()
		case sdl.BUTTON_RIGHT:
			v.pick(event.MouseX, event.MouseY)
		}
	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			v.trackball.EndDrag()
		}
	case input.EventMouseMove:
		v.trackball.Drag(float32(event.DeltaX), float32(event.DeltaY))

	case input.EventKeyDown:
		v.handleKey(event.Key, event.Repeat)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode, repeat bool) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_LEFT:
		v.light.StepBackward()
		v.logLight()
	case sdl.SCANCODE_RIGHT:
		v.light.StepForward()
		v.logLight()
	case sdl.SCANCODE_R:
		v.trackball.Reset()
	case sdl.SCANCODE_F12:
		if !repeat {
			v.screenshot()
		}
	case sdl.SCANCODE_E:
		if !repeat {
			v.export()
		}
	}
}

func (v *Viewer) logLight() {
	v.window.SetTitle(fmt.Sprintf("%s - light %.0f°", Title, v.light.Angle()))
	p := v.light.Position()
	v.log.Info("light moved",
		zap.Float64("angle", v.light.Angle()),
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y),
	)
}

// pick logs the surface sample under the cursor.
func (v *Viewer) pick(x, y int) {
	w, h := v.window.GetSize()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), v.frame().ModelViewProjection.Inverse())
	if _, ok := ray.IntersectAABB(v.bounds); !ok {
		return
	}
	hit, ok := picking.NearestVertex(ray, v.positions, pickTolerance)
	if !ok {
		return
	}
	s := v.mesh.Samples[hit.Index]
	p, n := v.mesh.Position(hit.Index).Array(), v.mesh.Normal(hit.Index).Array()
	v.log.Info("picked sample",
		zap.Int("vertex", hit.Index),
		zap.Float64("t", s.T),
		zap.Float64("a", s.A),
		zap.Float64s("position", p[:]),
		zap.Float64s("normal", n[:]),
	)
}

func (v *Viewer) screenshot() {
	w, h := v.rc.Size()
	pixels, err := v.rc.Capture(v.frame(), w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) export() {
	path := v.cfg.Output.ExportPath
	if err := export.WriteGLTF(v.mesh, path); err != nil {
		v.log.Error("export failed", zap.Error(err))
		return
	}
	v.log.Info("mesh exported", zap.String("path", path), zap.Int("vertices", v.mesh.VertexCount()))
}
