package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"solar-system/internal/body"
	"solar-system/internal/camera"
	"solar-system/internal/transform"
)

// Light box: an orthographic volume the size of the sun, looking from the sun at
// the receiving body.
const (
	lightHalfExtent = 5
	lightNear       = 0
	lightFar        = 50
)

// LightProjection is the orthographic projection used for every depth pass.
func LightProjection() mgl32.Mat4 {
	return transform.Orthographic(lightHalfExtent, -lightHalfExtent, lightHalfExtent, -lightHalfExtent, lightNear, lightFar)
}

// Caster is one body drawn into a depth map.
type Caster struct {
	Body *body.Body
	MVP  mgl32.Mat4
}

// ShadowPass fills the depth map of Receiver.
type ShadowPass struct {
	Receiver *body.Body
	Casters  []Caster
}

// Draw is one body drawn in the color pass.
type Draw struct {
	Body     *body.Body
	Model    mgl32.Mat4
	LightMVP mgl32.Mat4 // zero for unlit bodies
	Clouds   bool
}

// Frame is everything the renderer needs for one frame, in draw order.
type Frame struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	Distort        mgl32.Mat4
	CameraPosition mgl32.Vec3
	LightPosition  mgl32.Vec3
	CloudModel     mgl32.Mat4

	Shadows []ShadowPass
	Lit     []Draw
	Unlit   []Draw
}

// Plan computes the frame for a window of width×height framebuffer pixels.
// It does not modify the state.
func (s *State) Plan(width, height int) Frame {
	reg := s.Registry
	proj := LightProjection()
	f := Frame{
		View:           s.Camera.View,
		Projection:     s.Camera.Projection(),
		Distort:        camera.Distort(width, height),
		CameraPosition: s.Camera.Position,
		LightPosition:  reg.Sun.Center,
		CloudModel:     s.CloudModel,
		Shadows:        make([]ShadowPass, 0, len(reg.Planets)),
		Lit:            make([]Draw, 0, len(reg.Planets)),
	}
	for _, p := range reg.Planets {
		light := proj.Mul4(transform.LookAt(reg.Sun.Center, p.Center, transform.WorldUp))
		pass := ShadowPass{Receiver: p, Casters: make([]Caster, 0, len(p.Casters))}
		for _, c := range p.Casters {
			pass.Casters = append(pass.Casters, Caster{Body: c, MVP: light.Mul4(c.Model)})
		}
		f.Shadows = append(f.Shadows, pass)
		f.Lit = append(f.Lit, Draw{
			Body:     p,
			Model:    p.Model,
			LightMVP: light.Mul4(p.Model),
			Clouds:   p.Clouds,
		})
	}
	f.Unlit = []Draw{
		{Body: reg.Sun, Model: reg.Sun.Model},
		{Body: reg.Universe, Model: reg.Universe.Model},
	}
	return f
}
