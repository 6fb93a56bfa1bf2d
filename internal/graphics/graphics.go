package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-system/internal/config"
)

// Run opens the window described by prefs and runs the frame loop until the window is
// closed. Each frame it calls draw between BeginDrawing and EndDrawing on a black
// background, then update (input polling and the simulation step). setup runs once
// after the OpenGL context exists and before the first frame; a setup error aborts
// the loop and is returned. teardown runs before the window closes.
func Run(prefs config.Prefs, setup func() error, update, draw func(), teardown func()) error {
	flags := uint32(rl.FlagWindowHighdpi)
	if prefs.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(prefs.WindowWidth), int32(prefs.WindowHeight), prefs.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // close via the window button only
	rl.SetTargetFPS(int32(prefs.FPS))

	if setup != nil {
		if err := setup(); err != nil {
			return err
		}
	}
	if teardown != nil {
		defer teardown()
	}

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()

		update()
	}
	return nil
}

// FramebufferSize returns the drawable size in pixels, larger than the window on
// high-DPI displays.
func FramebufferSize() (int, int) {
	return rl.GetRenderWidth(), rl.GetRenderHeight()
}
