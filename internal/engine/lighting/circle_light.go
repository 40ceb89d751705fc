// Package lighting provides the point light that orbits the surface.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/surfview/pkg/math"
)

// PointLight is a light source ready for uniform upload.
type PointLight struct {
	Position  [3]float32 // World position
	Direction [3]float32 // Zero for an omnidirectional light
}

// CircleLight moves a point light around a circle in the XY plane. The
// angle is kept in degrees and changed in fixed steps.
type CircleLight struct {
	Radius      float64
	StepDegrees float64
	angle       float64
}

// NewCircleLight creates a light at startDegrees on a circle of the given radius.
func NewCircleLight(radius, stepDegrees, startDegrees float64) *CircleLight {
	return &CircleLight{
		Radius:      radius,
		StepDegrees: stepDegrees,
		angle:       startDegrees,
	}
}

// Angle returns the current angle in degrees. It is not wrapped.
func (l *CircleLight) Angle() float64 {
	return l.angle
}

// StepBackward turns the light one step clockwise (left arrow).
func (l *CircleLight) StepBackward() {
	l.angle -= l.StepDegrees
}

// StepForward turns the light one step counter-clockwise (right arrow).
func (l *CircleLight) StepForward() {
	l.angle += l.StepDegrees
}

// Position returns the light's world position.
func (l *CircleLight) Position() math.Vec3d {
	rad := math.DegToRad(l.angle)
	return math.Vec3d{
		X: l.Radius * gomath.Cos(rad),
		Y: l.Radius * gomath.Sin(rad),
		Z: 0,
	}
}

// PointLight returns the light in upload form.
func (l *CircleLight) PointLight() PointLight {
	return PointLight{Position: l.Position().Vec3().Array()}
}
