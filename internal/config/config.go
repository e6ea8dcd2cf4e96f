// Package config handles persistent user configuration for sigdata.
//
// Configuration is stored as JSON at ~/.config/sigdata/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). Command-line flags
// take precedence over stored values, which take precedence over the
// built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "sigdata"
	fileName = "config.json"
)

// Built-in defaults, relative to the working directory.
const (
	DefaultSourceDir = "SIG"
	DefaultOutputDir = "converted_sig_data"
	DefaultAssetsDir = "test/assets/sig_data"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	SourceDir      string `json:"source_dir,omitempty"`
	OutputDir      string `json:"output_dir,omitempty"`
	AssetsDir      string `json:"assets_dir,omitempty"`
	Workers        int    `json:"workers,omitempty"`
	AppearanceKeys string `json:"appearance_keys,omitempty"`
}

// WithDefaults returns a copy of c with every unset directory replaced by
// its built-in default. Workers and AppearanceKeys stay zero when unset so
// the converter applies its own defaults.
func (c *Config) WithDefaults() Config {
	out := *c
	if out.SourceDir == "" {
		out.SourceDir = DefaultSourceDir
	}
	if out.OutputDir == "" {
		out.OutputDir = DefaultOutputDir
	}
	if out.AssetsDir == "" {
		out.AssetsDir = DefaultAssetsDir
	}
	return out
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}
