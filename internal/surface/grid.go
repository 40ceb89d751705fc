package surface

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/surfview/pkg/math"
)

// stepEpsilon absorbs rounding in (max-min)/step so an endpoint that the
// step lands on exactly is not lost to a quotient like 29.999999999.
const stepEpsilon = 1e-9

// Grid is the parameter lattice the mesh is sampled on, plus the forward
// difference micro-steps used for tangent estimation.
type Grid struct {
	TMin float64 `yaml:"t_min"`
	TMax float64 `yaml:"t_max"`
	AMin float64 `yaml:"a_min"`
	AMax float64 `yaml:"a_max"`
	Step float64 `yaml:"step"`

	TangentStepT float64 `yaml:"tangent_step_t"`
	TangentStepA float64 `yaml:"tangent_step_a"`

	// DegreeScaledTangents divides finite differences by the micro-step
	// converted from degrees to radians instead of by the micro-step itself.
	// Tangents grow by 180/pi; normals by its square.
	DegreeScaledTangents bool `yaml:"degree_scaled_tangents"`
}

// DefaultGrid returns the lattice the viewer renders out of the box.
func DefaultGrid() Grid {
	return Grid{
		TMin:                 -15,
		TMax:                 15,
		AMin:                 0,
		AMax:                 15,
		Step:                 0.5,
		TangentStepT:         0.0005,
		TangentStepA:         0.0005,
		DegreeScaledTangents: true,
	}
}

// Validate rejects a non-positive step, inverted ranges and zero micro-steps.
func (g Grid) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"t_min", g.TMin}, {"t_max", g.TMax},
		{"a_min", g.AMin}, {"a_max", g.AMax},
		{"step", g.Step},
		{"tangent_step_t", g.TangentStepT}, {"tangent_step_a", g.TangentStepA},
	} {
		if gomath.IsNaN(f.v) || gomath.IsInf(f.v, 0) {
			return fmt.Errorf("grid %s = %v: %w", f.name, f.v, ErrNonFinite)
		}
	}
	if g.Step <= 0 {
		return fmt.Errorf("grid step = %v: %w", g.Step, ErrInvalidStep)
	}
	if g.TMin > g.TMax {
		return fmt.Errorf("grid t range [%v, %v]: %w", g.TMin, g.TMax, ErrDegenerateRange)
	}
	if g.AMin > g.AMax {
		return fmt.Errorf("grid a range [%v, %v]: %w", g.AMin, g.AMax, ErrDegenerateRange)
	}
	if g.TangentStepT == 0 {
		return fmt.Errorf("grid tangent_step_t: %w", ErrInvalidTangentStep)
	}
	if g.TangentStepA == 0 {
		return fmt.Errorf("grid tangent_step_a: %w", ErrInvalidTangentStep)
	}
	return nil
}

// TCount returns the number of outer-loop samples, endpoints included.
func (g Grid) TCount() int { return stepCount(g.TMin, g.TMax, g.Step) }

// ACount returns the number of inner-loop samples, endpoints included.
func (g Grid) ACount() int { return stepCount(g.AMin, g.AMax, g.Step) }

// VertexCount returns the number of vertices Build emits: two per grid point.
func (g Grid) VertexCount() int { return 2 * g.TCount() * g.ACount() }

// T returns the i-th outer sample.
func (g Grid) T(i int) float64 { return g.TMin + float64(i)*g.Step }

// A returns the j-th inner sample.
func (g Grid) A(j int) float64 { return g.AMin + float64(j)*g.Step }

// divisor is the denominator of a forward difference taken with micro-step h.
func (g Grid) divisor(h float64) float64 {
	if g.DegreeScaledTangents {
		return math.DegToRad(h)
	}
	return h
}

func stepCount(lo, hi, step float64) int {
	return int(gomath.Floor((hi-lo)/step+stepEpsilon)) + 1
}
