package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvFile is read before the environment overrides are applied. It may be missing.
const EnvFile = ".env"

// Environment variables that override the config file.
const (
	EnvDataDir   = "SOLAR_DATA_DIR"
	EnvLogFile   = "SOLAR_LOG_FILE"
	EnvFPS       = "SOLAR_FPS"
	EnvShadowMap = "SOLAR_SHADOW_MAP"
	EnvWidth     = "SOLAR_WINDOW_WIDTH"
	EnvHeight    = "SOLAR_WINDOW_HEIGHT"
)

// LoadEnvFile sets an environment variable for every KEY=VALUE line of path. Blank
// lines and # comments are skipped, surrounding quotes are removed, and variables
// already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, unquote(strings.TrimSpace(value)))
	}
	return scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// ApplyEnv overrides fields of p from lookup (os.LookupEnv in production). On a
// malformed or invalid value p is returned unchanged with the error.
func ApplyEnv(p Prefs, lookup func(string) (string, bool)) (Prefs, error) {
	out := p
	if v, ok := lookup(EnvDataDir); ok {
		out.DataDir = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		out.LogFile = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvFPS, &out.FPS},
		{EnvShadowMap, &out.ShadowMap},
		{EnvWidth, &out.WindowWidth},
		{EnvHeight, &out.WindowHeight},
	}
	for _, f := range ints {
		v, ok := lookup(f.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return p, fmt.Errorf("config: %s=%q: %w", f.name, v, ErrInvalidPrefs)
		}
		*f.dst = n
	}
	if err := out.Validate(); err != nil {
		return p, err
	}
	return out, nil
}
