// Package catalog describes the bodies of the scene: sizes, orbits, spin and textures.
// The default table is embedded; a different one can be parsed from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"solar-system/internal/assets"
	"solar-system/internal/body"
)

//go:embed bodies.yaml
var defaultYAML []byte

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Entry is one body as written in the catalog.
type Entry struct {
	Name            string  `yaml:"name"`
	Radius          float32 `yaml:"radius"`
	Distance        float32 `yaml:"distance,omitempty"`
	RotationCycle   float32 `yaml:"rotation_cycle,omitempty"`
	RevolutionCycle float32 `yaml:"revolution_cycle,omitempty"`
	Texture         string  `yaml:"texture"`
	Parent          string  `yaml:"parent,omitempty"`
	Clouds          bool    `yaml:"clouds,omitempty"`
	Focus           bool    `yaml:"focus,omitempty"`
}

// Catalog is the full scene table. Planet order is load order and shadow precedence.
type Catalog struct {
	Sun      Entry   `yaml:"sun"`
	Universe Entry   `yaml:"universe"`
	Planets  []Entry `yaml:"planets"`
}

// MeshSource hands out a private copy of the template sphere per body.
type MeshSource interface {
	Sphere() (*assets.Mesh, error)
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return Parse(defaultYAML)
}

// OverrideFile replaces the embedded table when present in the data directory.
const OverrideFile = "bodies.yaml"

// Load reads OverrideFile from fsys, falling back to the embedded catalog when the
// file does not exist.
func Load(fsys fs.FS) (Catalog, error) {
	data, err := fs.ReadFile(fsys, OverrideFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Default()
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w: %w", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks names are unique, radii positive and that every parent is a planet
// listed before its satellite.
func (c Catalog) Validate() error {
	seen := map[string]bool{}
	check := func(e Entry) error {
		if e.Name == "" {
			return fmt.Errorf("catalog: unnamed body: %w", ErrInvalidCatalog)
		}
		if seen[e.Name] {
			return fmt.Errorf("catalog: duplicate body %q: %w", e.Name, ErrInvalidCatalog)
		}
		if e.Radius <= 0 {
			return fmt.Errorf("catalog: %s radius %v: %w", e.Name, e.Radius, ErrInvalidCatalog)
		}
		if e.Texture == "" {
			return fmt.Errorf("catalog: %s has no texture: %w", e.Name, ErrInvalidCatalog)
		}
		return nil
	}
	if err := check(c.Sun); err != nil {
		return err
	}
	seen[c.Sun.Name] = true
	if err := check(c.Universe); err != nil {
		return err
	}
	seen[c.Universe.Name] = true
	if len(c.Planets) == 0 {
		return fmt.Errorf("catalog: no planets: %w", ErrInvalidCatalog)
	}
	planets := map[string]bool{}
	for _, p := range c.Planets {
		if err := check(p); err != nil {
			return err
		}
		if p.Parent != "" && !planets[p.Parent] {
			return fmt.Errorf("catalog: %s orbits %q, which is not an earlier planet: %w", p.Name, p.Parent, ErrInvalidCatalog)
		}
		seen[p.Name] = true
		planets[p.Name] = true
	}
	return nil
}

// FocusName is the planet the camera follows on request, or the first planet when
// none is flagged.
func (c Catalog) FocusName() string {
	for _, p := range c.Planets {
		if p.Focus {
			return p.Name
		}
	}
	return c.Planets[0].Name
}

// Build creates every body from src and returns the resolved registry. loaded, when
// not nil, is called after each body is created, sun first and universe last.
func (c Catalog) Build(src MeshSource, loaded func(*body.Body)) (*body.Registry, error) {
	if loaded == nil {
		loaded = func(*body.Body) {}
	}
	create := func(e Entry) (*body.Body, error) {
		mesh, err := src.Sphere()
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", e.Name, err)
		}
		b := body.New(e.Name, mesh, e.Radius, e.Distance)
		b.RotationCycle = e.RotationCycle
		b.RevolutionCycle = e.RevolutionCycle
		b.TexturePath = e.Texture
		b.Clouds = e.Clouds
		return b, nil
	}

	sun, err := create(c.Sun)
	if err != nil {
		return nil, err
	}
	loaded(sun)

	byName := make(map[string]*body.Body, len(c.Planets))
	planets := make([]*body.Body, 0, len(c.Planets))
	for _, e := range c.Planets {
		b, err := create(e)
		if err != nil {
			return nil, err
		}
		if e.Parent != "" {
			b.Parent = byName[e.Parent]
		}
		byName[e.Name] = b
		planets = append(planets, b)
		loaded(b)
	}

	universe, err := create(c.Universe)
	if err != nil {
		return nil, err
	}
	loaded(universe)

	return body.NewRegistry(sun, universe, planets)
}
