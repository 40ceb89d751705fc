// Package picking finds the surface sample under the mouse cursor.
package picking

import (
	gomath "math"

	"github.com/Faultbox/surfview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// ScreenToRay converts pixel coordinates to a ray in the space that
// invMVP maps clip coordinates into. With the inverse of the full
// model-view-projection matrix that is model space, so the ray can be
// tested against mesh positions directly.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invMVP math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := invMVP.TransformPoint([3]float32{ndcX, ndcY, -1})
	far := invMVP.TransformPoint([3]float32{ndcX, ndcY, 1})

	dir := [3]float32{far[0] - near[0], far[1] - near[1], far[2] - near[2]}
	if l := length(dir); l > 0 {
		dir = [3]float32{dir[0] / l, dir[1] / l, dir[2] / l}
	}
	return Ray{Origin: near, Direction: dir}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// Distance returns the distance from p to the ray and the ray parameter of
// the closest point. Points behind the origin measure to the origin.
func (r Ray) Distance(p [3]float32) (dist, t float32) {
	d := [3]float32{p[0] - r.Origin[0], p[1] - r.Origin[1], p[2] - r.Origin[2]}
	t = d[0]*r.Direction[0] + d[1]*r.Direction[1] + d[2]*r.Direction[2]
	if t < 0 {
		t = 0
	}
	c := r.At(t)
	return length([3]float32{p[0] - c[0], p[1] - c[1], p[2] - c[2]}), t
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b [3]float32) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// Expand returns the box grown by margin on every side.
func (b AABB) Expand(margin float32) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] -= margin
		b.Max[i] += margin
	}
	return b
}

// Hit is the result of a vertex pick.
type Hit struct {
	Index    int     // Vertex index
	Distance float32 // Distance from the vertex to the ray
	T        float32 // Ray parameter of the closest point
}

// NearestVertex returns the vertex of positions (x, y, z triples) closest to
// the ray within tolerance. Among vertices within tolerance the one nearest
// the ray origin wins, so the side facing the viewer is picked. Non-finite
// vertices are skipped.
func NearestVertex(r Ray, positions []float32, tolerance float32) (Hit, bool) {
	best := Hit{Index: -1}
	for i := 0; i+2 < len(positions); i += 3 {
		p := [3]float32{positions[i], positions[i+1], positions[i+2]}
		if !finite(p) {
			continue
		}
		d, t := r.Distance(p)
		if d > tolerance {
			continue
		}
		if best.Index < 0 || t < best.T {
			best = Hit{Index: i / 3, Distance: d, T: t}
		}
	}
	return best, best.Index >= 0
}

func length(v [3]float32) float32 {
	return float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

func finite(p [3]float32) bool {
	for _, c := range p {
		f := float64(c)
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return false
		}
	}
	return true
}
