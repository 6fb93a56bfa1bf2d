// Package motion spins and orbits the bodies of a registry at fixed angular velocity.
package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"solar-system/internal/body"
	"solar-system/internal/transform"
)

// Observer is told about every composite transform applied to a body, after it has
// been applied. The camera uses it to follow a moving body.
type Observer interface {
	BodyMoved(b *body.Body, composite mgl32.Mat4)
}

// angle is the turn made in elapsed seconds by something completing a turn every cycle seconds.
func angle(elapsed, cycle float32) float32 {
	return 2 * math32.Pi * elapsed / cycle
}

// Rotate spins b about the vertical axis through its own center. A negative cycle
// spins the other way. The center does not move. A zero cycle leaves b untouched and
// returns the identity.
func Rotate(b *body.Body, elapsed, cycle float32) mgl32.Mat4 {
	if cycle == 0 {
		return mgl32.Ident4()
	}
	m := transform.RotateAbout(b.Center, angle(elapsed, cycle))
	b.Model = m.Mul4(b.Model)
	return m
}

// Revolve moves b around the vertical axis through pivot, carrying its satellites
// along with the same transform. A zero cycle leaves everything untouched and
// returns the identity.
func Revolve(b *body.Body, elapsed, cycle float32, pivot mgl32.Vec3) mgl32.Mat4 {
	if cycle == 0 {
		return mgl32.Ident4()
	}
	m := transform.RotateAbout(pivot, angle(elapsed, cycle))
	applyTree(b, m)
	return m
}

func applyTree(b *body.Body, m mgl32.Mat4) {
	b.Apply(m)
	for _, s := range b.Satellites {
		applyTree(s, m)
	}
}

// Model advances a registry through time. Bodies keep registry order: all rotations
// first (sun, then planets), then all revolutions.
type Model struct {
	reg       *body.Registry
	observers []Observer
}

// NewModel returns a motion model driving reg.
func NewModel(reg *body.Registry) *Model {
	return &Model{reg: reg}
}

// AddObserver registers o to be notified after each body moves.
func (m *Model) AddObserver(o Observer) {
	m.observers = append(m.observers, o)
}

// Step advances every body by elapsed seconds. Zero elapsed is a no-op in effect
// since every composite is then the identity.
func (m *Model) Step(elapsed float32) {
	m.rotate(m.reg.Sun, elapsed)
	for _, p := range m.reg.Planets {
		m.rotate(p, elapsed)
	}
	for _, p := range m.reg.Planets {
		if p.RevolutionCycle == 0 {
			continue
		}
		pivot := mgl32.Vec3{}
		if p.Parent != nil {
			pivot = p.Parent.Center
		}
		m.notify(p, Revolve(p, elapsed, p.RevolutionCycle, pivot))
	}
}

func (m *Model) rotate(b *body.Body, elapsed float32) {
	if b.RotationCycle == 0 {
		return
	}
	m.notify(b, Rotate(b, elapsed, b.RotationCycle))
}

func (m *Model) notify(b *body.Body, composite mgl32.Mat4) {
	for _, o := range m.observers {
		o.BodyMoved(b, composite)
	}
}
