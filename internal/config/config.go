package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Path is the engine config file, relative to the process working directory.
const Path = "config/engine.json"

// ErrInvalidPrefs is returned by Validate.
var ErrInvalidPrefs = errors.New("invalid preferences")

// Prefs holds window and renderer preferences. Persisted across runs; simulation
// state is not.
type Prefs struct {
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	Title        string `json:"title"`
	FPS          int    `json:"fps"`
	ShadowMap    int    `json:"shadow_map_size"`
	MSAA         bool   `json:"msaa"`
	DataDir      string `json:"data_dir"`
	LogFile      string `json:"log_file"`
	ShowFPS      bool   `json:"show_fps"`
	ShowOverlay  bool   `json:"show_overlay"`
}

// Default returns default preferences: a 640×640 window at 30 FPS with 1024² shadow maps.
func Default() Prefs {
	return Prefs{
		WindowWidth:  640,
		WindowHeight: 640,
		Title:        "Solar System",
		FPS:          30,
		ShadowMap:    1024,
		MSAA:         true,
		DataDir:      "data",
		LogFile:      "logs/solar.txt",
		ShowFPS:      true,
		ShowOverlay:  true,
	}
}

// Validate rejects sizes and rates that cannot open a window or allocate a depth map.
func (p Prefs) Validate() error {
	switch {
	case p.WindowWidth <= 0 || p.WindowHeight <= 0:
		return fmt.Errorf("config: window %dx%d: %w", p.WindowWidth, p.WindowHeight, ErrInvalidPrefs)
	case p.FPS <= 0:
		return fmt.Errorf("config: fps %d: %w", p.FPS, ErrInvalidPrefs)
	case p.ShadowMap <= 0:
		return fmt.Errorf("config: shadow map size %d: %w", p.ShadowMap, ErrInvalidPrefs)
	case p.DataDir == "":
		return fmt.Errorf("config: empty data dir: %w", ErrInvalidPrefs)
	}
	return nil
}

// Load reads preferences from Path, then applies EnvFile and the environment on top.
// Errors are reported alongside usable preferences.
func Load() (Prefs, error) {
	dotErr := LoadEnvFile(EnvFile)
	if dotErr != nil {
		dotErr = fmt.Errorf("config: %w", dotErr)
	}
	p, err := LoadWith(Path, os.LookupEnv)
	return p, errors.Join(err, dotErr)
}

// LoadWith reads preferences from path and applies the overrides found by lookup.
// Overrides apply even when the file is rejected, on top of the defaults LoadFrom
// falls back to; both errors are reported.
func LoadWith(path string, lookup func(string) (string, bool)) (Prefs, error) {
	p, fileErr := LoadFrom(path)
	p, envErr := ApplyEnv(p, lookup)
	return p, errors.Join(fileErr, envErr)
}

// LoadFrom reads preferences from path. If the file is missing or invalid, returns
// Default() and does not create a file. Fields absent from the file keep their defaults.
func LoadFrom(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes preferences to Path.
func Save(p Prefs) error {
	return SaveTo(Path, p)
}

// SaveTo writes preferences to path, creating the directory if needed.
func SaveTo(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
