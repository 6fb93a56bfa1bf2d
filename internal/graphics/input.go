package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-system/internal/navigation"
)

var keys = map[int32]navigation.Key{
	rl.KeyOne:   navigation.KeyOne,
	rl.KeyTwo:   navigation.KeyTwo,
	rl.KeySpace: navigation.KeySpace,
}

// Viewport reports the current window and framebuffer sizes.
func Viewport() navigation.Viewport {
	fw, fh := FramebufferSize()
	return navigation.Viewport{
		FramebufferWidth:  fw,
		FramebufferHeight: fh,
		WindowWidth:       rl.GetScreenWidth(),
		WindowHeight:      rl.GetScreenHeight(),
	}
}

// PollInput feeds this frame's pointer, wheel and key events to nav.
func PollInput(nav *navigation.Navigator) {
	vp := Viewport()
	pos := rl.GetMousePosition()
	x, y := navigation.Canonical(pos.X, pos.Y, vp)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		nav.Press(x, y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		nav.Release()
	}
	nav.Move(x, y)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		nav.Scroll(wheel)
	}

	for rk, k := range keys {
		if rl.IsKeyPressed(rk) {
			nav.KeyPressed(k)
		}
	}
}
