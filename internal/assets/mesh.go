package assets

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereRadius is the radius every template sphere is normalized to.
const SphereRadius = 0.5

// Mesh is a non-indexed triangle list: three consecutive vertices form a face.
// Vertices and Normals hold xyz triples, Texcoords holds uv pairs.
type Mesh struct {
	Vertices  []float32
	Normals   []float32
	Texcoords []float32
}

// VertexCount is the number of vertices (three per triangle).
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount is the number of faces.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Vertex returns vertex i as a vector.
func (m *Mesh) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// BuildSphere expands an indexed OFF mesh into a triangle list centered on the origin
// with radius SphereRadius. Vertex normals are the normalized sum of the face normals
// around each shared vertex. Texture coordinates are generated by SphereTexcoords.
func BuildSphere(off *OFF) (*Mesh, error) {
	if len(off.Faces) == 0 || len(off.Vertices) == 0 {
		return nil, fmt.Errorf("assets: empty sphere: %w", ErrMalformedMesh)
	}

	acc := make([]mgl32.Vec3, len(off.Vertices))
	for _, f := range off.Faces {
		v1, v2, v3 := off.Vertices[f[0]], off.Vertices[f[1]], off.Vertices[f[2]]
		n := v2.Sub(v1).Cross(v3.Sub(v1))
		if n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		for _, idx := range f {
			acc[idx] = acc[idx].Add(n)
		}
	}

	center, radius := bounds(off.Vertices)
	if radius == 0 {
		return nil, fmt.Errorf("assets: degenerate sphere: %w", ErrMalformedMesh)
	}
	scale := SphereRadius / radius

	m := &Mesh{
		Vertices: make([]float32, 0, 9*len(off.Faces)),
		Normals:  make([]float32, 0, 9*len(off.Faces)),
	}
	for _, f := range off.Faces {
		for _, idx := range f {
			v := off.Vertices[idx].Sub(center).Mul(scale)
			m.Vertices = append(m.Vertices, v.X(), v.Y(), v.Z())
			n := acc[idx]
			if n.Len() > 0 {
				n = n.Normalize()
			}
			m.Normals = append(m.Normals, n.X(), n.Y(), n.Z())
		}
	}
	m.Texcoords = SphereTexcoords(m.Vertices)
	FixSeam(m.Texcoords)
	return m, nil
}

// bounds returns the bounding box center and half of its largest extent.
func bounds(vs []mgl32.Vec3) (mgl32.Vec3, float32) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	size := hi.Sub(lo)
	return lo.Add(hi).Mul(0.5), max(size.X(), size.Y(), size.Z()) / 2
}

// SphereTexcoords maps every vertex of an origin-centered sphere to (u, v).
// v is the angle from the south pole (-Y) over π. u is the angle in the XZ plane
// from -X, measured the long way round when z > 0, over 2π.
func SphereTexcoords(vertices []float32) []float32 {
	bottom := mgl32.Vec3{0, -1, 0}
	left := mgl32.Vec3{-1, 0, 0}
	n := len(vertices) / 3
	uv := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		p := mgl32.Vec3{vertices[3*i], vertices[3*i+1], vertices[3*i+2]}
		v := angle(bottom, p) / math32.Pi
		u := angle(left, mgl32.Vec3{p.X(), 0, p.Z()})
		if p.Z() > 0 {
			u = 2*math32.Pi - u
		}
		uv[2*i] = u / (2 * math32.Pi)
		uv[2*i+1] = v
	}
	return uv
}

// angle between a and b in radians; 0 when b has no length (the poles in XZ).
func angle(a, b mgl32.Vec3) float32 {
	l := a.Len() * b.Len()
	if l == 0 {
		return 0
	}
	c := a.Dot(b) / l
	return math32.Acos(mgl32.Clamp(c, -1, 1))
}

// FixSeam repairs triangles that straddle the u=0/u=1 seam: when a triangle has u
// values both in [0, 0.5) and in (0.5, 1], the low ones are moved past 1 so the
// texture is not interpolated backwards across the whole image.
func FixSeam(uv []float32) {
	for t := 0; t+5 < len(uv); t += 6 {
		var low, high bool
		for k := 0; k < 3; k++ {
			u := uv[t+2*k]
			low = low || (u >= 0 && u < 0.5)
			high = high || (u > 0.5 && u <= 1)
		}
		if !low || !high {
			continue
		}
		for k := 0; k < 3; k++ {
			if u := uv[t+2*k]; u >= 0 && u < 0.5 {
				uv[t+2*k] = u + 1
			}
		}
	}
}
