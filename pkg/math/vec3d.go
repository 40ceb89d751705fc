package math

import "math"

// Vec3d is a double-precision 3D vector. Surface evaluation and finite
// differences run in float64; values are narrowed to float32 only for upload.
type Vec3d struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3d) Add(other Vec3d) Vec3d {
	return Vec3d{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3d) Sub(other Vec3d) Vec3d {
	return Vec3d{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vec3d) Scale(s float64) Vec3d {
	return Vec3d{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / s. No guard: a zero s yields Inf/NaN components.
func (v Vec3d) Div(s float64) Vec3d {
	return Vec3d{v.X / s, v.Y / s, v.Z / s}
}

// Cross returns the cross product.
func (v Vec3d) Cross(other Vec3d) Vec3d {
	return Vec3d{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3d) Normalize() Vec3d {
	l := v.Length()
	if l == 0 {
		return Vec3d{}
	}
	return v.Div(l)
}

// IsFinite reports whether no component is NaN or ±Inf.
func (v Vec3d) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Vec3 narrows v to single precision.
func (v Vec3d) Vec3() Vec3 {
	return Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Array returns the components as an array.
func (v Vec3d) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
