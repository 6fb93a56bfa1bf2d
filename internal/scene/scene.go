// Package scene owns everything that changes while the solar system runs: the body
// registry, the camera, the motion model, pause and the cloud layer. It has no GPU
// code; each frame it hands the renderer a Frame with every matrix already computed.
package scene

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"solar-system/internal/body"
	"solar-system/internal/camera"
	"solar-system/internal/logger"
	"solar-system/internal/motion"
	"solar-system/internal/navigation"
	"solar-system/internal/transform"
)

// cloudSlowdown stretches the cloud layer's turn relative to the earth's spin.
const cloudSlowdown = 1000

// State is the scene aggregate. It is used from the frame loop only.
type State struct {
	Registry *body.Registry
	Camera   *camera.Controller
	Motion   *motion.Model
	Clock    *Clock

	// Focus is the body key 2 follows.
	Focus  *body.Body
	Paused bool

	// CloudModel spins the noise layer drawn over bodies with Clouds set.
	CloudModel mgl32.Mat4

	log *logger.Logger
}

// New wires the camera to the motion model and starts orbiting the sun. focus names
// the planet the camera follows on request.
func New(reg *body.Registry, focus string, fps int, start time.Time, log *logger.Logger) (*State, error) {
	f, err := reg.ByName(focus)
	if err != nil {
		return nil, fmt.Errorf("scene: focus: %w", err)
	}
	s := &State{
		Registry:   reg,
		Camera:     camera.New(reg.Sun),
		Motion:     motion.NewModel(reg),
		Clock:      NewClock(fps, start),
		Focus:      f,
		CloudModel: mgl32.Ident4(),
		log:        log,
	}
	s.Motion.AddObserver(s.Camera)
	return s, nil
}

func (s *State) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}

// Do applies a key action.
func (s *State) Do(a navigation.Action) {
	switch a {
	case navigation.ActionFocusSun:
		s.Camera.FocusSun()
		s.logf("Camera orbiting %s.", s.Camera.LookAt().Name)
	case navigation.ActionFocusBody:
		s.Camera.FocusBody(s.Focus)
		s.logf("Camera following %s.", s.Focus.Name)
	case navigation.ActionTogglePause:
		s.Paused = !s.Paused
		if s.Paused {
			s.logf("Paused.")
		} else {
			s.logf("Resumed.")
		}
	}
}

// Update advances the simulation when the clock is due. The clock is reset even
// while paused so resuming does not jump. It reports whether bodies moved.
func (s *State) Update(now time.Time) bool {
	elapsed, due := s.Clock.Tick(now)
	if !due || s.Paused {
		return false
	}
	s.Step(elapsed)
	return true
}

// Step moves every body and the cloud layer by elapsed seconds.
func (s *State) Step(elapsed float32) {
	s.Motion.Step(elapsed)
	if cycle := s.cloudCycle(); cycle != 0 {
		s.CloudModel = transform.RotateY(-math32.Pi * elapsed / cycle).Mul4(s.CloudModel)
	}
}

// cloudCycle is derived from the rotation of the first body that carries clouds.
func (s *State) cloudCycle() float32 {
	for _, p := range s.Registry.Planets {
		if p.Clouds {
			return cloudSlowdown * p.RotationCycle
		}
	}
	return 0
}
