// Package renderer draws the surface mesh with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/engine/framebuffer"
	"github.com/Faultbox/surfview/internal/engine/renderer/shaders"
	"github.com/Faultbox/surfview/internal/engine/scene"
	"github.com/Faultbox/surfview/internal/engine/shader"
	"github.com/Faultbox/surfview/internal/logger"
	"github.com/Faultbox/surfview/internal/surface"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	CullFace   bool
}

// DefaultConfig returns the default render state: black background and
// back-face culling.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0, 0, 0, 1},
		CullFace:   true,
	}
}

// uniformLocations caches the program's uniform slots. A location of -1 is
// legal: GL ignores writes to uniforms the compiler optimized out.
type uniformLocations struct {
	modelViewProjection   int32
	world                 int32
	worldInverseTranspose int32
	lightWorldPosition    int32
	lightDirection        int32
	viewWorldPosition     int32
	color                 int32
}

// RenderContext owns every GL object used to draw one surface: the program,
// its attribute and uniform locations, and the position and normal buffers.
// Create it after the GL context exists and use it from the GL thread only.
type RenderContext struct {
	config Config

	program      uint32
	attribVertex uint32
	attribNormal uint32
	uniforms     uniformLocations

	vao          uint32
	vertexBuffer uint32
	normalBuffer uint32
	count        int32
}

// New creates the render context.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*RenderContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.CompileProgram(shaders.SurfaceVertexShader, shaders.SurfaceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface program: %w", err)
	}

	rc := &RenderContext{
		config:       cfg,
		program:      program,
		attribVertex: shader.MustGetAttrib(program, "vertex"),
		attribNormal: shader.MustGetAttrib(program, "normal"),
		uniforms: uniformLocations{
			modelViewProjection:   shader.GetUniform(program, "ModelViewProjectionMatrix"),
			world:                 shader.GetUniform(program, "WorldMatrix"),
			worldInverseTranspose: shader.GetUniform(program, "WorldInverseTranspose"),
			lightWorldPosition:    shader.GetUniform(program, "LightWorldPosition"),
			lightDirection:        shader.GetUniform(program, "LightDirection"),
			viewWorldPosition:     shader.GetUniform(program, "ViewWorldPosition"),
			color:                 shader.GetUniform(program, "color"),
		},
	}

	gl.GenVertexArrays(1, &rc.vao)
	gl.GenBuffers(1, &rc.vertexBuffer)
	gl.GenBuffers(1, &rc.normalBuffer)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	logger.Debug("render context created",
		zap.Uint32("program", program),
		zap.Uint32("vao", rc.vao),
	)
	return rc, nil
}

// Upload copies the mesh into GPU buffers and records its vertex count.
// Positions and normals go into separate buffers, 3 floats per vertex. The
// normal attribute is declared normalized; GL ignores that flag for float
// data, so the shaders renormalize explicitly.
func (rc *RenderContext) Upload(m *surface.Mesh) error {
	if m.VertexCount() == 0 {
		return fmt.Errorf("upload: mesh has no vertices")
	}
	vertices, normals := m.Float32()

	gl.BindVertexArray(rc.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, rc.vertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(rc.attribVertex, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(rc.attribVertex)

	gl.BindBuffer(gl.ARRAY_BUFFER, rc.normalBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*4, unsafe.Pointer(&normals[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(rc.attribNormal, 3, gl.FLOAT, true, 0, nil)
	gl.EnableVertexAttribArray(rc.attribNormal)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	rc.count = int32(m.VertexCount())

	logger.Info("surface uploaded",
		zap.Int32("vertices", rc.count),
		zap.Int("bytes", (len(vertices)+len(normals))*4),
	)
	return nil
}

// Count returns the number of uploaded vertices.
func (rc *RenderContext) Count() int32 {
	return rc.count
}

// Draw renders one frame: a single TRIANGLE_STRIP over the whole mesh.
func (rc *RenderContext) Draw(u scene.Uniforms) {
	c := rc.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if rc.config.CullFace {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.UseProgram(rc.program)

	gl.Uniform3fv(rc.uniforms.viewWorldPosition, 1, &u.ViewWorldPosition[0])
	gl.Uniform3fv(rc.uniforms.lightWorldPosition, 1, &u.LightWorldPosition[0])
	gl.Uniform3fv(rc.uniforms.lightDirection, 1, &u.LightDirection[0])
	gl.UniformMatrix4fv(rc.uniforms.worldInverseTranspose, 1, false, u.WorldInverseTranspose.Ptr())
	gl.UniformMatrix4fv(rc.uniforms.modelViewProjection, 1, false, u.ModelViewProjection.Ptr())
	gl.UniformMatrix4fv(rc.uniforms.world, 1, false, u.World.Ptr())
	gl.Uniform4fv(rc.uniforms.color, 1, &u.Color[0])

	if rc.count == 0 {
		return
	}
	gl.BindVertexArray(rc.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, rc.count)
	gl.BindVertexArray(0)
}

// Resize handles window resize.
func (rc *RenderContext) Resize(width, height int) {
	rc.config.Width = width
	rc.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (rc *RenderContext) Size() (int, int) {
	return rc.config.Width, rc.config.Height
}

// Capture draws one frame into an offscreen framebuffer of the given size
// and returns its pixels as bottom-up RGBA rows. The window's back buffer is
// left untouched.
func (rc *RenderContext) Capture(u scene.Uniforms, width, height int) ([]byte, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	defer fb.Destroy()

	restore := fb.Bind()
	rc.Draw(u)
	pixels := fb.ReadPixels()
	restore()
	return pixels, nil
}

// Close releases the GL objects.
func (rc *RenderContext) Close() {
	logger.Info("closing renderer")
	if rc.vertexBuffer != 0 {
		gl.DeleteBuffers(1, &rc.vertexBuffer)
	}
	if rc.normalBuffer != 0 {
		gl.DeleteBuffers(1, &rc.normalBuffer)
	}
	if rc.vao != 0 {
		gl.DeleteVertexArrays(1, &rc.vao)
	}
	if rc.program != 0 {
		gl.DeleteProgram(rc.program)
	}
}
