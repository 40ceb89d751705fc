// Package camera provides the mouse-driven trackball view.
package camera

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"

	"github.com/Faultbox/surfview/pkg/math"
)

// Screen-space rotation axes. A horizontal drag turns the model about the
// view's up axis, a vertical drag about its right axis.
var (
	axisUp    = math.Vec3{X: 0, Y: 1, Z: 0}
	axisRight = math.Vec3{X: 1, Y: 0, Z: 0}
)

// restVelocity is the angular speed (radians per frame) below which
// inertia stops.
const restVelocity = 1e-5

// Trackball rotates the view about the origin. The view has no translation;
// the renderer places the model in front of the camera.
type Trackball struct {
	orientation math.Quat

	// Sensitivity is radians of rotation per pixel of drag.
	Sensitivity float32
	// Inertia keeps the model spinning after a drag ends, decaying
	// through a critically damped spring.
	Inertia bool

	dragging bool
	velX     float64 // radians per frame about axisUp
	velY     float64 // radians per frame about axisRight
	accelX   float64
	accelY   float64
	spring   harmonica.Spring
}

// NewTrackball creates a trackball at identity orientation. fps is the
// expected frame rate used to time the inertia spring.
func NewTrackball(fps int, sensitivity float32, inertia bool) *Trackball {
	return &Trackball{
		orientation: math.QuatIdentity(),
		Sensitivity: sensitivity,
		Inertia:     inertia,
		spring:      harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// BeginDrag starts a drag and cancels any spin.
func (t *Trackball) BeginDrag() {
	t.dragging = true
	t.stop()
}

// Drag rotates by a mouse motion of (dx, dy) pixels. It is ignored unless a
// drag is in progress.
func (t *Trackball) Drag(dx, dy float32) {
	if !t.dragging {
		return
	}
	ax := float64(dx * t.Sensitivity)
	ay := float64(dy * t.Sensitivity)
	t.rotate(ax, ay)
	t.velX, t.velY = ax, ay
	t.accelX, t.accelY = 0, 0
}

// EndDrag finishes a drag. With inertia the last drag velocity carries on.
func (t *Trackball) EndDrag() {
	t.dragging = false
	if !t.Inertia {
		t.stop()
	}
}

// Dragging reports whether a drag is in progress.
func (t *Trackball) Dragging() bool {
	return t.dragging
}

// Spinning reports whether inertia is still rotating the view.
func (t *Trackball) Spinning() bool {
	return !t.dragging && (gomath.Abs(t.velX) > restVelocity || gomath.Abs(t.velY) > restVelocity)
}

// Update advances inertia by one frame. It reports whether the orientation
// changed, so callers can skip redrawing a still image.
func (t *Trackball) Update() bool {
	if !t.Spinning() {
		t.stop()
		return false
	}
	t.rotate(t.velX, t.velY)
	t.velX, t.accelX = t.spring.Update(t.velX, t.accelX, 0)
	t.velY, t.accelY = t.spring.Update(t.velY, t.accelY, 0)
	return true
}

// Reset returns to the identity orientation.
func (t *Trackball) Reset() {
	t.orientation = math.QuatIdentity()
	t.dragging = false
	t.stop()
}

// Orientation returns the current rotation.
func (t *Trackball) Orientation() math.Quat {
	return t.orientation
}

// ViewMatrix returns the rotation-only view matrix.
func (t *Trackball) ViewMatrix() math.Mat4 {
	return t.orientation.ToMat4()
}

// rotate applies screen-space rotations on top of the current orientation.
func (t *Trackball) rotate(aboutUp, aboutRight float64) {
	qUp := math.QuatFromAxisAngle(axisUp, float32(aboutUp))
	qRight := math.QuatFromAxisAngle(axisRight, float32(aboutRight))
	t.orientation = qRight.Mul(qUp).Mul(t.orientation).Normalize()
}

func (t *Trackball) stop() {
	t.velX, t.velY = 0, 0
	t.accelX, t.accelY = 0, 0
}
