package normalize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"nathanbeddoewebdev/sigdata/internal/domain"
)

// ReadDictionary loads a converted JSON file. A missing file wraps
// domain.ErrMissingOutput; content that is not a flat object of strings
// wraps domain.ErrInvalidOutput.
func ReadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrMissingOutput)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	d := NewDictionary()
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, domain.ErrInvalidOutput, err)
	}
	return d, nil
}
