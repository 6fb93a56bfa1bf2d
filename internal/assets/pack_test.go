package assets

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestOpenDataDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SpherePath), []byte(octahedronOFF), 0644))

	fsys, closer, err := OpenData(dir)
	require.NoError(t, err)
	defer closer.Close()

	m, err := NewLibrary(fsys).Sphere()
	require.NoError(t, err)
	assert.Equal(t, 24, m.VertexCount())
}

func TestOpenDataZip(t *testing.T) {
	cases := map[string]string{
		"flat":   SpherePath,
		"nested": "solar-data/" + SpherePath,
	}
	for name, entry := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeZip(t, map[string]string{entry: octahedronOFF})
			fsys, closer, err := OpenData(path)
			require.NoError(t, err)
			defer closer.Close()

			data, err := fs.ReadFile(fsys, SpherePath)
			require.NoError(t, err)
			assert.Equal(t, octahedronOFF, string(data))
		})
	}
}

func TestOpenDataRejects(t *testing.T) {
	_, _, err := OpenData(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	txt := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))
	_, _, err = OpenData(txt)
	assert.Error(t, err)
}
