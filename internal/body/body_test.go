package body

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-system/internal/transform"
)

func names(bs []*Body) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

// solarSystem builds the default ten planets with the moon attached to the earth.
func solarSystem(t *testing.T) *Registry {
	t.Helper()
	sun := New("sun", nil, 5, 0)
	universe := New("universe", nil, 250, 0)
	var planets []*Body
	for _, n := range []string{"mercury", "venus", "earth", "moon", "mars", "jupiter", "saturn", "uranus", "neptune", "pluto"} {
		planets = append(planets, New(n, nil, 0.5, 10))
	}
	planets[3].Parent = planets[2]
	r, err := NewRegistry(sun, universe, planets)
	require.NoError(t, err)
	return r
}

func TestNewPlacesBodyOnXAxis(t *testing.T) {
	b := New("earth", nil, 0.5, 15.76)
	assert.Equal(t, mgl32.Vec3{15.76, 0, 0}, b.Center)
	assert.Equal(t, b.Center, transform.Origin(b.Model))

	big := New("jupiter", nil, 2, 22.66)
	// a template vertex on the +X surface lands radius away from the center
	surface := transform.Point(big.Model, mgl32.Vec3{TemplateRadius, 0, 0})
	assert.InDelta(t, 24.66, surface.X(), 1e-5)
}

func TestApplyMovesCenterWithModel(t *testing.T) {
	b := New("mars", nil, 0.45, 18.71)
	m := transform.RotateAbout(mgl32.Vec3{}, 0.8)
	b.Apply(m)
	assertVec3Near(t, b.Center, transform.Origin(b.Model), 1e-5)
	assert.InDelta(t, 18.71, b.Center.Len(), 1e-4)
}

func TestRegistryIndexesAndSatellites(t *testing.T) {
	r := solarSystem(t)

	earth, err := r.ByName("earth")
	require.NoError(t, err)
	assert.Equal(t, 2, earth.Index)
	assert.Equal(t, []string{"moon"}, names(earth.Satellites))

	moon, err := r.Planet(3)
	require.NoError(t, err)
	assert.Same(t, earth, moon.Parent)

	assert.Equal(t, -1, r.Sun.Index)
	assert.Equal(t, -1, r.Universe.Index)

	sun, err := r.ByName("sun")
	require.NoError(t, err)
	assert.Same(t, r.Sun, sun)

	_, err = r.ByName("vulcan")
	assert.ErrorIs(t, err, ErrUnknownBody)
	_, err = r.Planet(10)
	assert.ErrorIs(t, err, ErrUnknownBody)
	_, err = r.Planet(-1)
	assert.ErrorIs(t, err, ErrUnknownBody)

	assert.Len(t, r.All(), 12)
}

func TestCasterLists(t *testing.T) {
	r := solarSystem(t)

	assert.Equal(t, []string{"mercury"}, names(r.Planets[0].Casters))
	assert.Equal(t, []string{"mercury", "venus"}, names(r.Planets[1].Casters))
	assert.Equal(t, []string{"mercury", "venus", "moon"}, names(r.Planets[2].Casters))
	assert.Equal(t, []string{"mercury", "venus", "earth", "moon"}, names(r.Planets[3].Casters))
	assert.Equal(t, []string{"mercury", "venus", "earth", "moon", "mars"}, names(r.Planets[4].Casters))
	assert.Len(t, r.Planets[9].Casters, 10)

	assert.Empty(t, r.Sun.Casters)
	assert.Empty(t, r.Universe.Casters)
}

func TestRegistryRejectsBadParents(t *testing.T) {
	a := New("a", nil, 1, 1)
	a.Parent = a
	_, err := NewRegistry(New("sun", nil, 5, 0), New("universe", nil, 250, 0), []*Body{a})
	assert.Error(t, err)

	stray := New("stray", nil, 1, 1)
	b := New("b", nil, 1, 1)
	b.Parent = stray
	_, err = NewRegistry(New("sun", nil, 5, 0), New("universe", nil, 250, 0), []*Body{b})
	assert.ErrorIs(t, err, ErrUnknownBody)

	_, err = NewRegistry(New("sun", nil, 5, 0), New("universe", nil, 250, 0), []*Body{New("x", nil, 1, 1), New("x", nil, 1, 2)})
	assert.Error(t, err)
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
