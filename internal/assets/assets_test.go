package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// octahedron centered on (3, 0, 0) with radius 1.
const octahedronOFF = `OFF
# test octahedron
6 8 12
4 0 0
2 0 0
3 1 0
3 -1 0
3 0 1
3 0 -1
3 0 2 4
3 2 1 4
3 1 3 4
3 3 0 4
3 2 0 5
3 1 2 5
3 3 1 5
3 0 3 5
`

func TestLoadOFF(t *testing.T) {
	off, err := LoadOFF(strings.NewReader(octahedronOFF))
	require.NoError(t, err)
	assert.Len(t, off.Vertices, 6)
	assert.Len(t, off.Faces, 8)
	assert.Equal(t, mgl32.Vec3{3, -1, 0}, off.Vertices[3])
	assert.Equal(t, [3]int{0, 3, 5}, off.Faces[7])
}

func TestLoadOFFScientificNotation(t *testing.T) {
	off, err := LoadOFF(strings.NewReader("OFF\n3 1 0\n1e-1 0 0\n0 -2.5E1 0\n0 0 .5\n3 0 1 2\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.1, off.Vertices[0].X(), 1e-6)
	assert.InDelta(t, -25, off.Vertices[1].Y(), 1e-6)
	assert.InDelta(t, 0.5, off.Vertices[2].Z(), 1e-6)
}

func TestLoadOFFMalformed(t *testing.T) {
	cases := map[string]string{
		"no header":      "3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n",
		"short vertices": "OFF\n3 1 0\n0 0 0\n1 0 0\n",
		"quad face":      "OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n",
		"bad index":      "OFF\n3 1 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n",
		"missing faces":  "OFF\n3 2 0\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n",
		"junk number":    "OFF\n3 1 0\n0 0 x\n1 0 0\n0 1 0\n3 0 1 2\n",
		"empty":          "",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadOFF(strings.NewReader(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMesh), err.Error())
		})
	}
}

func TestBuildSphereNormalizesAndAveragesNormals(t *testing.T) {
	off, err := LoadOFF(strings.NewReader(octahedronOFF))
	require.NoError(t, err)
	m, err := BuildSphere(off)
	require.NoError(t, err)

	require.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 8, m.TriangleCount())
	assert.Len(t, m.Normals, len(m.Vertices))
	assert.Len(t, m.Texcoords, 2*m.VertexCount())

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		assert.InDelta(t, SphereRadius, v.Len(), 1e-5)
		n := mgl32.Vec3{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
		assertVec3Near(t, v.Normalize(), n, 1e-5, "vertex %v normal %v", v, n)
	}
}

func TestBuildSphereRejectsEmpty(t *testing.T) {
	_, err := BuildSphere(&OFF{})
	assert.ErrorIs(t, err, ErrMalformedMesh)
}

func TestSphereTexcoords(t *testing.T) {
	uv := SphereTexcoords([]float32{
		-0.5, 0, 0,
		0, 0, -0.5,
		0.5, 0, 0,
		0, 0, 0.5,
		0, -0.5, 0,
		0, 0.5, 0,
	})
	want := []float32{
		0, 0.5,
		0.25, 0.5,
		0.5, 0.5,
		0.75, 0.5,
		0, 0,
		0, 1,
	}
	assert.InDeltaSlice(t, want, uv, 1e-5)
}

func TestFixSeam(t *testing.T) {
	uv := []float32{0.1, 0, 0.6, 0, 0.6, 0}
	FixSeam(uv)
	assert.InDeltaSlice(t, []float32{1.1, 0, 0.6, 0, 0.6, 0}, uv, 1e-6)

	sameSide := []float32{0.1, 0, 0.2, 0, 0.3, 0}
	FixSeam(sameSide)
	assert.Equal(t, []float32{0.1, 0, 0.2, 0, 0.3, 0}, sameSide)

	// 0.5 belongs to neither side
	middle := []float32{0.5, 0, 0.7, 0, 0.9, 0}
	FixSeam(middle)
	assert.Equal(t, []float32{0.5, 0, 0.7, 0, 0.9, 0}, middle)
}

func twoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImageFlipsRows(t *testing.T) {
	img, err := DecodeImage(bytes.NewReader(twoRowPNG(t)))
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 1, img.Width())
	assert.Equal(t, 2, img.Height())
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 1))
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrImageLoad)

	_, err = LoadImage("does/not/exist.png")
	assert.ErrorIs(t, err, ErrImageLoad)
}

func TestLibrarySphereIsCachedAndCopied(t *testing.T) {
	fsys := fstest.MapFS{
		SpherePath:         {Data: []byte(octahedronOFF)},
		"textures/sun.png": {Data: twoRowPNG(t)},
	}
	lib := NewLibrary(fsys)

	a, err := lib.Sphere()
	require.NoError(t, err)
	b, err := lib.Sphere()
	require.NoError(t, err)
	require.Equal(t, a.Vertices, b.Vertices)

	a.Vertices[0] = 42
	assert.NotEqual(t, float32(42), b.Vertices[0])
	c, err := lib.Sphere()
	require.NoError(t, err)
	assert.NotEqual(t, float32(42), c.Vertices[0])

	img, err := lib.Image("textures/sun.png")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Height())

	_, err = lib.Image("textures/missing.png")
	assert.ErrorIs(t, err, ErrImageLoad)
}

func TestLibraryMissingSphere(t *testing.T) {
	_, err := NewLibrary(fstest.MapFS{}).Sphere()
	assert.Error(t, err)
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
