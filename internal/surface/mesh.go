package surface

import (
	gomath "math"

	"github.com/Faultbox/surfview/pkg/math"
)

// Sample is a point of the parameter domain.
type Sample struct {
	T, A float64
}

// Bounds is the axis-aligned box around the mesh positions.
type Bounds struct {
	Min math.Vec3d
	Max math.Vec3d
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3d { return b.Max.Sub(b.Min) }

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3d { return b.Min.Add(b.Max).Scale(0.5) }

// Mesh is the generated vertex stream. Vertices and Normals are flat xyz
// triples in emission order; consecutive vertices form a triangle strip.
// Normals are not normalized.
type Mesh struct {
	Vertices []float64
	Normals  []float64
	Samples  []Sample
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// Position returns vertex i.
func (m *Mesh) Position(i int) math.Vec3d {
	return math.Vec3d{X: m.Vertices[i*3], Y: m.Vertices[i*3+1], Z: m.Vertices[i*3+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) math.Vec3d {
	return math.Vec3d{X: m.Normals[i*3], Y: m.Normals[i*3+1], Z: m.Normals[i*3+2]}
}

// Float32 narrows both streams for GPU upload.
func (m *Mesh) Float32() (vertices, normals []float32) {
	vertices = make([]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = float32(v)
	}
	normals = make([]float32, len(m.Normals))
	for i, n := range m.Normals {
		normals[i] = float32(n)
	}
	return vertices, normals
}

// NonFinite counts vertices whose position or normal has a NaN or Inf
// component.
func (m *Mesh) NonFinite() int {
	n := 0
	for i, cnt := 0, m.VertexCount(); i < cnt; i++ {
		if !m.Position(i).IsFinite() || !m.Normal(i).IsFinite() {
			n++
		}
	}
	return n
}

// computeBounds skips non-finite positions so one bad sample does not
// poison the box.
func computeBounds(vertices []float64) Bounds {
	b := Bounds{
		Min: math.Vec3d{X: gomath.Inf(1), Y: gomath.Inf(1), Z: gomath.Inf(1)},
		Max: math.Vec3d{X: gomath.Inf(-1), Y: gomath.Inf(-1), Z: gomath.Inf(-1)},
	}
	found := false
	for i := 0; i+2 < len(vertices); i += 3 {
		p := math.Vec3d{X: vertices[i], Y: vertices[i+1], Z: vertices[i+2]}
		if !p.IsFinite() {
			continue
		}
		found = true
		b.Min.X = gomath.Min(b.Min.X, p.X)
		b.Min.Y = gomath.Min(b.Min.Y, p.Y)
		b.Min.Z = gomath.Min(b.Min.Z, p.Z)
		b.Max.X = gomath.Max(b.Max.X, p.X)
		b.Max.Y = gomath.Max(b.Max.Y, p.Y)
		b.Max.Z = gomath.Max(b.Max.Z, p.Z)
	}
	if !found {
		return Bounds{}
	}
	return b
}
