package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3dCross(t *testing.T) {
	tests := []struct {
		a, b, want Vec3d
	}{
		{Vec3d{1, 0, 0}, Vec3d{0, 1, 0}, Vec3d{0, 0, 1}},
		{Vec3d{0, 1, 0}, Vec3d{1, 0, 0}, Vec3d{0, 0, -1}},
		{Vec3d{1, 2, 3}, Vec3d{4, 5, 6}, Vec3d{-3, 6, -3}},
	}
	for _, tt := range tests {
		if got := tt.a.Cross(tt.b); got != tt.want {
			t.Errorf("%v x %v = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec3dArithmetic(t *testing.T) {
	a := Vec3d{1, 2, 3}
	b := Vec3d{0.5, -1, 2}
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("a + b - b = %v, want %v", got, a)
	}
	if got := a.Scale(2).Div(2); got != a {
		t.Errorf("a * 2 / 2 = %v, want %v", got, a)
	}
}

func TestVec3dIsFinite(t *testing.T) {
	if !(Vec3d{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3d{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN component not detected")
	}
	if (Vec3d{0, math.Inf(-1), 0}).IsFinite() {
		t.Error("-Inf component not detected")
	}
}

func TestDegToRad(t *testing.T) {
	if got := DegToRad(180); got != math.Pi {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
	if got := DegToRad(0.0005); math.Abs(got-8.726646259971648e-06) > 1e-18 {
		t.Errorf("DegToRad(0.0005) = %v", got)
	}
}
