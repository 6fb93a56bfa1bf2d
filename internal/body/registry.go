package body

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownBody is returned by lookups for a name or index that is not registered.
var ErrUnknownBody = errors.New("unknown body")

// Registry holds every body in the scene. Planets keeps load order, which is also
// shadow precedence: a planet receives shadows from every planet at or before it.
type Registry struct {
	Sun      *Body
	Universe *Body
	Planets  []*Body

	byName map[string]*Body
}

// NewRegistry indexes the bodies and resolves satellites and caster lists. Parent
// pointers must already be set on the planets; a parent must itself be a planet.
func NewRegistry(sun, universe *Body, planets []*Body) (*Registry, error) {
	if sun == nil || universe == nil {
		return nil, errors.New("body: registry needs a sun and a universe")
	}
	r := &Registry{
		Sun:      sun,
		Universe: universe,
		Planets:  planets,
		byName:   make(map[string]*Body, len(planets)+2),
	}
	for _, b := range append([]*Body{sun, universe}, planets...) {
		if _, dup := r.byName[b.Name]; dup {
			return nil, fmt.Errorf("body: duplicate name %q", b.Name)
		}
		r.byName[b.Name] = b
	}
	sun.Index, universe.Index = -1, -1
	for i, p := range planets {
		p.Index = i
		p.Satellites = nil
	}
	for _, p := range planets {
		if p.Parent == nil {
			continue
		}
		if p.Parent == p {
			return nil, fmt.Errorf("body: %s orbits itself", p.Name)
		}
		if got, ok := r.byName[p.Parent.Name]; !ok || got != p.Parent || p.Parent.Index < 0 {
			return nil, fmt.Errorf("body: parent of %s: %w", p.Name, ErrUnknownBody)
		}
		p.Parent.Satellites = append(p.Parent.Satellites, p)
	}
	for _, p := range planets {
		p.Casters = casters(planets, p.Index)
	}
	return r, nil
}

// casters lists the planets that shadow planets[i]. A planet with satellites is
// replaced in its own list by those satellites.
func casters(planets []*Body, i int) []*Body {
	self := planets[i]
	out := make([]*Body, 0, i+1+len(self.Satellites))
	for _, c := range planets[:i+1] {
		if c == self && self.HasSatellites() {
			continue
		}
		out = append(out, c)
	}
	if self.HasSatellites() {
		for _, s := range self.Satellites {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// Planet returns the planet at index i.
func (r *Registry) Planet(i int) (*Body, error) {
	if i < 0 || i >= len(r.Planets) {
		return nil, fmt.Errorf("body: planet %d: %w", i, ErrUnknownBody)
	}
	return r.Planets[i], nil
}

// ByName looks a body up by name, including the sun and the universe.
func (r *Registry) ByName(name string) (*Body, error) {
	b, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("body: %q: %w", name, ErrUnknownBody)
	}
	return b, nil
}

// All returns the planets followed by the sun and the universe.
func (r *Registry) All() []*Body {
	out := make([]*Body, 0, len(r.Planets)+2)
	out = append(out, r.Planets...)
	return append(out, r.Sun, r.Universe)
}
