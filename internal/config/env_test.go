package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	p, err := ApplyEnv(Default(), lookupFrom(map[string]string{
		EnvDataDir:   "/srv/solar.zip",
		EnvFPS:       " 60 ",
		EnvShadowMap: "2048",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/srv/solar.zip", p.DataDir)
	assert.Equal(t, 60, p.FPS)
	assert.Equal(t, 2048, p.ShadowMap)
	assert.Equal(t, 640, p.WindowWidth)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"not a number": {EnvFPS: "fast"},
		"invalid":      {EnvWidth: "0"},
		"empty dir":    {EnvDataDir: ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := ApplyEnv(Default(), lookupFrom(env))
			assert.ErrorIs(t, err, ErrInvalidPrefs)
			assert.Equal(t, Default(), p)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
SOLAR_TEST_A="quoted value"
SOLAR_TEST_B = plain
not a pair
SOLAR_TEST_C=from file
`), 0644))
	t.Setenv("SOLAR_TEST_C", "from env")
	t.Setenv("SOLAR_TEST_A", "")
	os.Unsetenv("SOLAR_TEST_A")
	t.Setenv("SOLAR_TEST_B", "")
	os.Unsetenv("SOLAR_TEST_B")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "quoted value", os.Getenv("SOLAR_TEST_A"))
	assert.Equal(t, "plain", os.Getenv("SOLAR_TEST_B"))
	assert.Equal(t, "from env", os.Getenv("SOLAR_TEST_C"))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadWithAppliesEnvOverRejectedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fps": -5}`), 0644))

	p, err := LoadWith(path, lookupFrom(map[string]string{EnvDataDir: "pack.zip", EnvFPS: "60"}))
	assert.ErrorIs(t, err, ErrInvalidPrefs)
	assert.Equal(t, "pack.zip", p.DataDir)
	assert.Equal(t, 60, p.FPS)
	assert.Equal(t, Default().ShadowMap, p.ShadowMap)
}

func TestLoadWithValidFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fps": 24}`), 0644))

	p, err := LoadWith(path, lookupFrom(map[string]string{EnvShadowMap: "512"}))
	require.NoError(t, err)
	assert.Equal(t, 24, p.FPS)
	assert.Equal(t, 512, p.ShadowMap)
}
