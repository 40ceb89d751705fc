// Package surface generates the triangle-strip mesh of a ruled parametric
// surface, with vertex normals estimated by forward finite differences.
package surface

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/surfview/pkg/math"
)

// Evaluator defaults for the x/y and z divisors.
const (
	DefaultParam  = 15
	DefaultHeight = 15
)

// Shape holds the constants of the surface field. It is a value type and is
// never mutated after construction.
type Shape struct {
	Radius       float64 `yaml:"radius"`        // r, base circle radius
	InitialAngle float64 `yaml:"initial_angle"` // a0
	Tilt         float64 `yaml:"tilt"`          // teta, radians
	Amplitude    float64 `yaml:"amplitude"`     // c, secondary curve amplitude
	Frequency    float64 `yaml:"frequency"`     // d, secondary curve frequency
	Scale        float64 `yaml:"scale"`

	// Param divides x and y, Height divides z. Point uses them.
	Param  float64 `yaml:"param"`
	Height float64 `yaml:"height"`
}

// DefaultShape returns the shape the viewer renders out of the box.
func DefaultShape() Shape {
	return Shape{
		Radius:       1,
		InitialAngle: 0,
		Tilt:         gomath.Pi / 2,
		Amplitude:    2,
		Frequency:    1,
		Scale:        8,
		Param:        10,
		Height:       20,
	}
}

// WithDefaults returns a copy with zero divisors replaced by DefaultParam
// and DefaultHeight.
func (s Shape) WithDefaults() Shape {
	if s.Param == 0 {
		s.Param = DefaultParam
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	return s
}

// Validate checks that every constant is finite and both divisors are non-zero.
func (s Shape) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"radius", s.Radius},
		{"initial_angle", s.InitialAngle},
		{"tilt", s.Tilt},
		{"amplitude", s.Amplitude},
		{"frequency", s.Frequency},
		{"scale", s.Scale},
		{"param", s.Param},
		{"height", s.Height},
	}
	for _, f := range fields {
		if gomath.IsNaN(f.v) || gomath.IsInf(f.v, 0) {
			return fmt.Errorf("shape %s = %v: %w", f.name, f.v, ErrNonFinite)
		}
	}
	if s.Param == 0 {
		return fmt.Errorf("shape param: %w", ErrZeroDivisor)
	}
	if s.Height == 0 {
		return fmt.Errorf("shape height: %w", ErrZeroDivisor)
	}
	return nil
}

// ruling is the signed distance along the ruling line shared by x and y:
// r·(a0−a) + t·cos(teta) − c·sin(d·t)·sin(teta).
func (s Shape) ruling(t, a float64) float64 {
	return s.Radius*(s.InitialAngle-a) + t*gomath.Cos(s.Tilt) - s.Amplitude*gomath.Sin(s.Frequency*t)*gomath.Sin(s.Tilt)
}

// X evaluates the x coordinate. a is the angular parameter, t the curve
// parameter. It panics if param is zero.
func (s Shape) X(t, a, param float64) float64 {
	mustDivisor("param", param)
	return (s.Radius*gomath.Cos(a) - s.ruling(t, a)*gomath.Sin(a)) / param * s.Scale
}

// Y evaluates the y coordinate. It panics if param is zero.
func (s Shape) Y(t, a, param float64) float64 {
	mustDivisor("param", param)
	return (s.Radius*gomath.Sin(a) + s.ruling(t, a)*gomath.Cos(a)) / param * s.Scale
}

// Z evaluates the z coordinate, which depends on t only. It panics if
// height is zero.
func (s Shape) Z(t, height float64) float64 {
	mustDivisor("height", height)
	return (t*gomath.Sin(s.Tilt) + s.Amplitude*gomath.Sin(s.Frequency*t)*gomath.Cos(s.Tilt)) / (-height) * s.Scale
}

// Point evaluates the surface at (t, a) using the shape's own divisors.
func (s Shape) Point(t, a float64) math.Vec3d {
	return math.Vec3d{
		X: s.X(t, a, s.Param),
		Y: s.Y(t, a, s.Param),
		Z: s.Z(t, s.Height),
	}
}

func mustDivisor(name string, v float64) {
	if v == 0 {
		panic(fmt.Sprintf("surface: %s divisor is zero", name))
	}
}
