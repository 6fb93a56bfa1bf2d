package body

import (
	"github.com/go-gl/mathgl/mgl32"

	"solar-system/internal/assets"
	"solar-system/internal/transform"
)

// TemplateRadius is the radius of the unit-sphere template every body mesh is cut from.
const TemplateRadius = 0.5

// Body is one textured sphere in the scene. Mesh is its own copy of the template sphere; Model and
// Center are the only fields that change after construction.
type Body struct {
	Name  string
	Index int // position in Registry.Planets; -1 for the sun and the universe
	Mesh  *assets.Mesh

	Model  mgl32.Mat4
	Center mgl32.Vec3

	Radius          float32
	Distance        float32
	RotationCycle   float32
	RevolutionCycle float32

	Parent     *Body
	Satellites []*Body
	// Casters are the bodies drawn into this body's depth map, in draw order.
	Casters []*Body

	TexturePath string
	Clouds      bool
}

// New returns a body scaled to radius and placed at (distance, 0, 0).
// mesh may be nil in tests that only exercise transforms.
func New(name string, mesh *assets.Mesh, radius, distance float32) *Body {
	b := &Body{
		Name:     name,
		Index:    -1,
		Mesh:     mesh,
		Radius:   radius,
		Distance: distance,
	}
	scale := radius / TemplateRadius
	m := transform.Translate(mgl32.Vec3{distance, 0, 0}).Mul4(mgl32.Scale3D(scale, scale, scale))
	b.Model = m
	b.Center = transform.Origin(m)
	return b
}

// Apply left-multiplies m into the model matrix and moves the center with it.
func (b *Body) Apply(m mgl32.Mat4) {
	b.Model = m.Mul4(b.Model)
	b.Center = transform.Point(m, b.Center)
}

// HasSatellites reports whether any body orbits b.
func (b *Body) HasSatellites() bool {
	return len(b.Satellites) > 0
}

func (b *Body) String() string {
	return b.Name
}
