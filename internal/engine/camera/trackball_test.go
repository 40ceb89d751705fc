package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/surfview/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestTrackballStartsAtIdentity(t *testing.T) {
	tb := NewTrackball(60, 0.01, true)
	if tb.ViewMatrix() != math.Identity() {
		t.Errorf("initial view = %v, want identity", tb.ViewMatrix())
	}
}

func TestTrackballHorizontalDrag(t *testing.T) {
	tb := NewTrackball(60, 0.01, false)
	tb.BeginDrag()
	// 157.08 px * 0.01 rad/px = pi/2 about the up axis.
	tb.Drag(float32(gomath.Pi/2/0.01), 0)
	tb.EndDrag()

	p := tb.ViewMatrix().TransformPoint([3]float32{0, 0, 1})
	if !near(p[0], 1) || !near(p[1], 0) || !near(p[2], 0) {
		t.Errorf("+z after quarter turn = %v, want (1, 0, 0)", p)
	}
}

func TestTrackballVerticalDrag(t *testing.T) {
	tb := NewTrackball(60, 0.01, false)
	tb.BeginDrag()
	tb.Drag(0, float32(gomath.Pi/2/0.01))
	tb.EndDrag()

	p := tb.ViewMatrix().TransformPoint([3]float32{0, 1, 0})
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], 1) {
		t.Errorf("+y after quarter turn = %v, want (0, 0, 1)", p)
	}
}

func TestTrackballIgnoresMotionWithoutDrag(t *testing.T) {
	tb := NewTrackball(60, 0.01, true)
	tb.Drag(100, 100)
	if tb.Orientation() != math.QuatIdentity() {
		t.Errorf("orientation changed without a drag: %v", tb.Orientation())
	}
}

func TestTrackballInertiaDecays(t *testing.T) {
	tb := NewTrackball(60, 0.01, true)
	tb.BeginDrag()
	tb.Drag(10, 0)
	tb.EndDrag()

	if !tb.Spinning() {
		t.Fatal("expected spin after release with inertia")
	}
	before := tb.Orientation()
	if !tb.Update() {
		t.Fatal("Update should report a change while spinning")
	}
	if tb.Orientation() == before {
		t.Error("orientation did not change during spin")
	}

	for i := 0; i < 600; i++ {
		tb.Update()
	}
	if tb.Spinning() {
		t.Errorf("still spinning after 10 s: vel = %v", tb.velX)
	}
	if tb.Update() {
		t.Error("Update reported a change at rest")
	}
}

func TestTrackballNoInertia(t *testing.T) {
	tb := NewTrackball(60, 0.01, false)
	tb.BeginDrag()
	tb.Drag(10, 5)
	tb.EndDrag()

	if tb.Spinning() {
		t.Error("spinning without inertia")
	}
	before := tb.Orientation()
	tb.Update()
	if tb.Orientation() != before {
		t.Error("orientation changed after release without inertia")
	}
}

func TestTrackballReset(t *testing.T) {
	tb := NewTrackball(60, 0.01, true)
	tb.BeginDrag()
	tb.Drag(40, -20)
	tb.EndDrag()
	tb.Reset()

	if tb.Orientation() != math.QuatIdentity() || tb.Spinning() || tb.Dragging() {
		t.Errorf("Reset left state: orientation %v spinning %v", tb.Orientation(), tb.Spinning())
	}
}
