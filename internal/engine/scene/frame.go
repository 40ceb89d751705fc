// Package scene computes the per-frame transforms and uniform values for
// the surface view. It has no GL dependency.
package scene

import (
	"github.com/Faultbox/surfview/pkg/math"
)

// Orthographic half-extent of the view volume, and the distance the model is
// pushed away from the camera.
const (
	ViewExtent = 20
	ModelDepth = -15
)

// DefaultColor is the base colour of the surface.
var DefaultColor = [4]float32{0.5, 0.9, 0.2, 1}

// Frame is the interactive state that changes between frames.
type Frame struct {
	View  math.Mat4  // Trackball rotation
	Light [3]float32 // Light world position
	Color [4]float32
}

// Uniforms holds every value the surface program consumes.
type Uniforms struct {
	ModelViewProjection   math.Mat4
	World                 math.Mat4
	WorldInverseTranspose math.Mat4
	LightWorldPosition    [3]float32
	LightDirection        [3]float32
	ViewWorldPosition     [3]float32
	Color                 [4]float32
}

// Projection returns the fixed orthographic projection.
func Projection() math.Mat4 {
	return math.Ortho(-ViewExtent, ViewExtent, -ViewExtent, ViewExtent, -ViewExtent, ViewExtent)
}

// Build derives the uniforms for a frame. The world matrix is the model
// translation applied after the view rotation; normals go through its
// inverse transpose.
func Build(f Frame) Uniforms {
	world := math.Translate(0, 0, ModelDepth).Mul(f.View)
	color := f.Color
	if color == ([4]float32{}) {
		color = DefaultColor
	}
	return Uniforms{
		ModelViewProjection:   Projection().Mul(world),
		World:                 world,
		WorldInverseTranspose: world.NormalMatrix(),
		LightWorldPosition:    f.Light,
		LightDirection:        [3]float32{0, 0, 0},
		ViewWorldPosition:     [3]float32{0, 0, 0},
		Color:                 color,
	}
}
