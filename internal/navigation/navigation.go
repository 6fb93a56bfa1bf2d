// Package navigation turns pointer, wheel and key input into camera moves and scene
// actions. It knows nothing about the windowing library; the graphics loop feeds it.
package navigation

import (
	"github.com/chewxy/math32"
)

// ScrollStep is the camera distance change per wheel notch.
const ScrollStep = 0.1

// DragScale converts a canonical pointer delta into radians; a full-width drag
// (2 units) turns the camera by π.
const DragScale = math32.Pi / 2

// Viewport describes the window in both pixel spaces. On high-DPI displays the
// framebuffer is larger than the window.
type Viewport struct {
	FramebufferWidth, FramebufferHeight int
	WindowWidth, WindowHeight           int
}

// Canonical converts a window-space pointer position into [-1, 1] device coordinates
// with +Y up.
func Canonical(x, y float32, vp Viewport) (float32, float32) {
	if vp.FramebufferWidth <= 0 || vp.FramebufferHeight <= 0 || vp.WindowWidth <= 0 {
		return 0, 0
	}
	w, h := float32(vp.FramebufferWidth), float32(vp.FramebufferHeight)
	dpi := w / float32(vp.WindowWidth)
	cx := (x*dpi/w)*2 - 1
	cy := ((h-1-y*dpi)/h)*2 - 1
	return cx, cy
}

// Key is a key the scene reacts to.
type Key int

const (
	KeyOne Key = iota + 1
	KeyTwo
	KeySpace
)

// Action is what a key press asks the scene to do.
type Action int

const (
	ActionNone Action = iota
	ActionFocusSun
	ActionFocusBody
	ActionTogglePause
)

func (a Action) String() string {
	switch a {
	case ActionFocusSun:
		return "focus sun"
	case ActionFocusBody:
		return "focus body"
	case ActionTogglePause:
		return "toggle pause"
	default:
		return "none"
	}
}

// DefaultBindings maps 1, 2 and space.
func DefaultBindings() map[Key]Action {
	return map[Key]Action{
		KeyOne:   ActionFocusSun,
		KeyTwo:   ActionFocusBody,
		KeySpace: ActionTogglePause,
	}
}

// Camera is the part of the camera controller input drives directly.
type Camera interface {
	AdjustAngles(dh, dv float32)
	AdjustDistance(delta float32) bool
}

// Navigator tracks the drag state and dispatches input.
type Navigator struct {
	Bindings map[Key]Action

	cam     Camera
	actions func(Action)

	dragging     bool
	lastX, lastY float32
}

// New returns a navigator driving cam and reporting key actions to actions.
func New(cam Camera, actions func(Action)) *Navigator {
	if actions == nil {
		actions = func(Action) {}
	}
	return &Navigator{
		Bindings: DefaultBindings(),
		cam:      cam,
		actions:  actions,
	}
}

// Dragging reports whether the left button is held.
func (n *Navigator) Dragging() bool { return n.dragging }

// Press starts a drag at the canonical position.
func (n *Navigator) Press(x, y float32) {
	n.dragging = true
	n.lastX, n.lastY = x, y
}

// Release ends the drag.
func (n *Navigator) Release() {
	n.dragging = false
}

// Move turns the camera by the pointer travel since the last position while
// dragging. Dragging right turns the camera left around its target.
func (n *Navigator) Move(x, y float32) {
	if !n.dragging {
		return
	}
	dh := (n.lastX - x) * DragScale
	dv := (y - n.lastY) * DragScale
	n.lastX, n.lastY = x, y
	if dh == 0 && dv == 0 {
		return
	}
	n.cam.AdjustAngles(dh, dv)
}

// Scroll zooms by ScrollStep per notch. It returns false when the camera refused
// the new distance.
func (n *Navigator) Scroll(notches float32) bool {
	if notches == 0 {
		return true
	}
	return n.cam.AdjustDistance(ScrollStep * notches)
}

// KeyPressed dispatches the bound action, if any, and returns it.
func (n *Navigator) KeyPressed(k Key) Action {
	a, ok := n.Bindings[k]
	if !ok || a == ActionNone {
		return ActionNone
	}
	n.actions(a)
	return a
}
