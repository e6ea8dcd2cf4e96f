package config

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/sigdata/internal/normalize"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "output-dir").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Validate rejects values Set cannot store. Nil accepts any non-empty
	// value.
	Validate func(value string) error

	// Set applies a validated value for this key to the given Config (in
	// memory only; the caller is responsible for calling Save).
	Set func(cfg *Config, value string)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "source-dir",
		Description: "Directory holding the SIG YAML tables (default " + DefaultSourceDir + ")",
		Get:         func(cfg *Config) string { return cfg.SourceDir },
		Set:         func(cfg *Config, v string) { cfg.SourceDir = v },
	},
	{
		Name:        "output-dir",
		Description: "Directory converted JSON files are written to (default " + DefaultOutputDir + ")",
		Get:         func(cfg *Config) string { return cfg.OutputDir },
		Set:         func(cfg *Config, v string) { cfg.OutputDir = v },
	},
	{
		Name:        "assets-dir",
		Description: "Directory deploy copies files into (default " + DefaultAssetsDir + ")",
		Get:         func(cfg *Config) string { return cfg.AssetsDir },
		Set:         func(cfg *Config, v string) { cfg.AssetsDir = v },
	},
	{
		Name:        "workers",
		Description: "Number of files converted in parallel",
		Get: func(cfg *Config) string {
			if cfg.Workers == 0 {
				return ""
			}
			return strconv.Itoa(cfg.Workers)
		},
		Validate: validateWorkers,
		Set: func(cfg *Config, v string) {
			cfg.Workers, _ = strconv.Atoi(v)
		},
	},
	{
		Name:        "appearance-keys",
		Description: "Appearance subcategory key scheme: composite or flat",
		Get:         func(cfg *Config) string { return cfg.AppearanceKeys },
		Validate: func(v string) error {
			_, err := normalize.ParseAppearanceScheme(v)
			return err
		},
		Set: func(cfg *Config, v string) { cfg.AppearanceKeys = strings.ToLower(v) },
	},
}

func validateWorkers(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("workers must be a positive integer, got %q", v)
	}
	return nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// Apply validates value and stores it in cfg.
func (k *KeySpec) Apply(cfg *Config, value string) error {
	if value == "" {
		return fmt.Errorf("value for %s cannot be empty", k.Name)
	}
	if k.Validate != nil {
		if err := k.Validate(value); err != nil {
			return err
		}
	}
	k.Set(cfg, value)
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
