package surface

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/surfview/pkg/math"
)

// Builder evaluates a Shape over a Grid and assembles the Mesh.
type Builder struct {
	shape   Shape
	grid    Grid
	workers int
	log     *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers evaluates up to n outer rows concurrently. Output is identical
// to a sequential build. n <= 1 means sequential.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder creates a builder. Nothing is validated until Build.
func NewBuilder(shape Shape, grid Grid, opts ...Option) *Builder {
	b := &Builder{
		shape:   shape,
		grid:    grid,
		workers: 1,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build generates the mesh with default options and no cancellation.
func Build(shape Shape, grid Grid) (*Mesh, error) {
	return NewBuilder(shape, grid).Build(context.Background())
}

// Build validates the configuration and generates the full mesh. On error
// no partial mesh is returned.
//
// For every grid point (t, a) two vertices are emitted, P(t, a) then
// P(t+step, a), so each outer row is stitched to the next one and a single
// TRIANGLE_STRIP covers the grid.
func (b *Builder) Build(ctx context.Context) (*Mesh, error) {
	if err := b.shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if err := b.grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}

	start := time.Now()
	nT, nA := b.grid.TCount(), b.grid.ACount()
	total := 2 * nT * nA

	m := &Mesh{
		Vertices: make([]float64, 3*total),
		Normals:  make([]float64, 3*total),
		Samples:  make([]Sample, total),
	}

	if b.workers <= 1 {
		for i := 0; i < nT; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			b.fillRow(m, i, nA)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.workers)
		for i := 0; i < nT; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				b.fillRow(m, i, nA)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	m.Bounds = computeBounds(m.Vertices)

	b.log.Debug("surface mesh built",
		zap.Int("rows", nT),
		zap.Int("columns", nA),
		zap.Int("vertices", total),
		zap.Int("workers", max(b.workers, 1)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

// fillRow writes outer row i into its fixed slot. Rows never overlap, so
// concurrent calls for different i are safe.
func (b *Builder) fillRow(m *Mesh, i, nA int) {
	t := b.grid.T(i)
	tNext := t + b.grid.Step
	base := i * 2 * nA
	for j := 0; j < nA; j++ {
		a := b.grid.A(j)
		b.emit(m, base+2*j, t, a)
		b.emit(m, base+2*j+1, tNext, a)
	}
}

func (b *Builder) emit(m *Mesh, k int, t, a float64) {
	p, dT, dA := tangents(b.shape, b.grid, t, a)
	n := dT.Cross(dA)

	m.Vertices[k*3], m.Vertices[k*3+1], m.Vertices[k*3+2] = p.X, p.Y, p.Z
	m.Normals[k*3], m.Normals[k*3+1], m.Normals[k*3+2] = n.X, n.Y, n.Z
	m.Samples[k] = Sample{T: t, A: a}
}

// Tangents returns the forward-difference partial derivatives of the surface
// along t and along a at (t, a).
func Tangents(shape Shape, grid Grid, t, a float64) (dT, dA math.Vec3d) {
	_, dT, dA = tangents(shape, grid, t, a)
	return dT, dA
}

// Normal returns cross(dT, dA) at (t, a), without normalization.
func Normal(shape Shape, grid Grid, t, a float64) math.Vec3d {
	dT, dA := Tangents(shape, grid, t, a)
	return dT.Cross(dA)
}

func tangents(shape Shape, grid Grid, t, a float64) (p, dT, dA math.Vec3d) {
	p = shape.Point(t, a)
	dT = shape.Point(t+grid.TangentStepT, a).Sub(p).Div(grid.divisor(grid.TangentStepT))
	dA = shape.Point(t, a+grid.TangentStepA).Sub(p).Div(grid.divisor(grid.TangentStepA))
	return p, dT, dA
}
