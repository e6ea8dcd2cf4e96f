// Package sigyaml loads Bluetooth SIG assigned-numbers YAML files into
// generic values (mappings, sequences and scalars) for normalization.
package sigyaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"nathanbeddoewebdev/sigdata/internal/domain"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the YAML file at path.
//
// A missing file wraps domain.ErrMissingSourceFile, any other read failure
// wraps domain.ErrUnreadableSource, and invalid or empty documents wrap
// domain.ErrMalformedYAML.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sigyaml: %s: %w", path, domain.ErrMissingSourceFile)
		}
		return nil, fmt.Errorf("sigyaml: failed to read %s: %w: %w", path, domain.ErrUnreadableSource, err)
	}

	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sigyaml: %s: %w", path, err)
	}
	return v, nil
}

// Parse parses a YAML document into a generic value.
func Parse(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedYAML, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrMalformedYAML)
	}
	return v, nil
}
