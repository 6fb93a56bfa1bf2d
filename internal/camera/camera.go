// Package camera orbits a view around a body on a sphere of variable radius.
//
// The controller has two modes. In ModeOrbitFree it circles the sun and ignores
// body motion. In ModeFollowBody its anchor is dragged along by every rotation and
// revolution of the followed body, so the view stays fixed relative to it.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"solar-system/internal/body"
	"solar-system/internal/transform"
)

// Mode is the camera state.
type Mode int

const (
	ModeOrbitFree Mode = iota
	ModeFollowBody
)

func (m Mode) String() string {
	switch m {
	case ModeOrbitFree:
		return "orbit"
	case ModeFollowBody:
		return "follow"
	default:
		return "unknown"
	}
}

// Bounds is an inclusive distance range.
type Bounds struct {
	Min, Max float32
}

// Contains reports whether d lies within the bounds.
func (b Bounds) Contains(d float32) bool {
	return d >= b.Min && d <= b.Max
}

// Mode defaults, applied on every transition.
var (
	OrbitBounds    = Bounds{Min: 10, Max: 50}
	FollowBounds   = Bounds{Min: 1, Max: 50}
	OrbitDistance  = float32(20)
	FollowDistance = float32(2)
)

// Projection parameters.
const (
	FieldOfView = 45
	Near        = 0.2
	Far         = 500
)

// Controller holds the camera state. View is re-derived after every mutation and
// is a pure function of the other fields.
type Controller struct {
	Distance   float32
	Horizontal float32
	Vertical   float32
	Anchor     mgl32.Mat4

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	View     mgl32.Mat4

	mode   Mode
	sun    *body.Body
	lookAt *body.Body
	bounds Bounds
}

// New returns a controller orbiting sun.
func New(sun *body.Body) *Controller {
	c := &Controller{sun: sun}
	c.FocusSun()
	return c
}

// Mode is the active camera mode.
func (c *Controller) Mode() Mode { return c.mode }

// LookAt is the body the camera points at.
func (c *Controller) LookAt() *body.Body { return c.lookAt }

// Bounds is the active distance range.
func (c *Controller) Bounds() Bounds { return c.bounds }

// FocusSun switches to ModeOrbitFree around the sun.
func (c *Controller) FocusSun() {
	c.reset(ModeOrbitFree, c.sun, OrbitDistance, OrbitBounds)
}

// FocusBody switches to ModeFollowBody on b.
func (c *Controller) FocusBody(b *body.Body) {
	c.reset(ModeFollowBody, b, FollowDistance, FollowBounds)
}

func (c *Controller) reset(mode Mode, target *body.Body, distance float32, bounds Bounds) {
	c.mode = mode
	c.lookAt = target
	c.bounds = bounds
	c.Distance = distance
	c.Horizontal, c.Vertical = 0, 0
	c.Anchor = transform.Translate(target.Center)
	c.Derive()
}

// AdjustDistance moves the camera along its radius. A change that would leave the
// active bounds is dropped and AdjustDistance returns false.
func (c *Controller) AdjustDistance(delta float32) bool {
	d := c.Distance + delta
	if !c.bounds.Contains(d) {
		return false
	}
	c.Distance = d
	c.Derive()
	return true
}

// AdjustAngles turns the camera. The horizontal change is mirrored while the camera
// is upside down so dragging keeps its on-screen direction. Vertical is not clamped.
func (c *Controller) AdjustAngles(dh, dv float32) {
	c.Horizontal += flip(c.Vertical) * dh
	c.Vertical += dv
	c.Derive()
}

// flip is +1 while the camera is upright and -1 once it has gone over a pole.
func flip(vertical float32) float32 {
	return math32.Pow(-1, math32.Floor((vertical+math32.Pi/2)/math32.Pi))
}

// Derive recomputes position, target, up and view from the spherical coordinates,
// the anchor and the looked-at body.
func (c *Controller) Derive() {
	local := transform.RotateY(c.Horizontal).Mul4(transform.RotateX(c.Vertical))
	c.Position = transform.Point(c.Anchor.Mul4(local), mgl32.Vec3{0, 0, c.Distance})
	c.Target = c.lookAt.Center

	forward := c.Target.Sub(c.Position).Normalize()
	worldUp := mgl32.Vec3{0, flip(c.Vertical), 0}
	right := forward.Cross(worldUp)
	if right.Len() < 1e-6 {
		// straight over a pole
		right = c.Anchor.Mul4(transform.RotateY(c.Horizontal)).Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	}
	c.Up = right.Cross(forward)
	c.View = transform.LookAt(c.Position, c.Target, c.Up)
}

// BodyMoved drags the anchor with b when b is the followed body.
func (c *Controller) BodyMoved(b *body.Body, composite mgl32.Mat4) {
	if c.mode != ModeFollowBody || b != c.lookAt {
		return
	}
	c.Anchor = composite.Mul4(c.Anchor)
	c.Derive()
}

// Projection is the perspective matrix. The window aspect ratio is applied
// separately through Distort.
func (c *Controller) Projection() mgl32.Mat4 {
	return transform.Perspective(FieldOfView, 1, Near, Far)
}

// Distort squeezes x by height/width so a square viewport maps onto the window.
func Distort(width, height int) mgl32.Mat4 {
	if width <= 0 || height <= 0 {
		return mgl32.Ident4()
	}
	return mgl32.Diag4(mgl32.Vec4{float32(height) / float32(width), 1, 1, 1})
}
