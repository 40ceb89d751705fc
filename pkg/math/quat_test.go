package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W))
	if math.Abs(length-1) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()
	if m != Identity() {
		t.Errorf("Identity quat should produce identity matrix, got %v", m)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))
	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMulComposes(t *testing.T) {
	axis := Vec3{X: 0, Y: 0, Z: 1}
	quarter := QuatFromAxisAngle(axis, float32(math.Pi/4))
	half := QuatFromAxisAngle(axis, float32(math.Pi/2))

	got := quarter.Mul(quarter)
	if math.Abs(float64(got.W-half.W)) > 1e-5 || math.Abs(float64(got.Z-half.Z)) > 1e-5 {
		t.Errorf("two 45 degree turns = %v, want %v", got, half)
	}

	// (1,0,0) rotated 90 degrees about Z lands on (0,1,0).
	p := half.ToMat4().TransformPoint([3]float32{1, 0, 0})
	if abs(p[0]) > 1e-5 || abs(p[1]-1) > 1e-5 {
		t.Errorf("rotated point = %v, want (0,1,0)", p)
	}
}
