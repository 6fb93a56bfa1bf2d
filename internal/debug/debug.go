package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Status is what the overlay shows about the scene.
type Status struct {
	Mode     string
	Target   string
	Distance float32
	Paused   bool
}

// Debug draws the FPS counter (top-right) and a scene status line (top-left).
// Both are off by default.
type Debug struct {
	ShowFPS     bool
	ShowOverlay bool

	frameCount  uint32
	lastFPS     string
	lastStatus  string
	statusValue Status
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowOverlay sets whether the scene status line is drawn.
func (d *Debug) SetShowOverlay(show bool) {
	d.ShowOverlay = show
}

// StatusText formats s for the overlay.
func StatusText(s Status) string {
	text := fmt.Sprintf("%s %s  distance %.1f", s.Mode, s.Target, s.Distance)
	if s.Paused {
		text += "  [paused]"
	}
	return text
}

// Draw renders the enabled overlays. Call last in the draw loop. The status text is
// rebuilt as soon as it changes; FPS only every updateInterval frames.
func (d *Debug) Draw(s Status) {
	d.frameCount++
	if d.ShowFPS && (d.lastFPS == "" || d.frameCount%updateInterval == 0) {
		d.lastFPS = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	if d.ShowOverlay && (d.lastStatus == "" || s != d.statusValue) {
		d.statusValue = s
		d.lastStatus = StatusText(s)
	}

	if d.ShowFPS && d.lastFPS != "" {
		w := rl.MeasureText(d.lastFPS, fontSize)
		x := int32(rl.GetScreenWidth()) - w - padding
		rl.DrawText(d.lastFPS, x, padding, fontSize, rl.Green)
	}
	if d.ShowOverlay && d.lastStatus != "" {
		rl.DrawText(d.lastStatus, padding, padding, fontSize, rl.RayWhite)
		if s.Paused {
			rl.DrawText("space to resume", padding, padding+lineHeight, fontSize, rl.Gray)
		}
	}
}
