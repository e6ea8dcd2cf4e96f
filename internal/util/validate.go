package util

import (
	"fmt"
	"path"
	"strings"
)

// ValidateRelativePath checks that a slash-separated manifest path stays
// inside the directory it is resolved against:
//   - not empty
//   - not absolute (no leading slash, no drive letter)
//   - no ".." element after cleaning
func ValidateRelativePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path must not be empty")
	}
	if strings.Contains(p, `\`) {
		return fmt.Errorf("path %q must use forward slashes", p)
	}
	if path.IsAbs(p) || hasDriveLetter(p) {
		return fmt.Errorf("path %q must be relative", p)
	}

	cleaned := path.Clean(p)
	if cleaned == "." {
		return fmt.Errorf("path %q does not name a file", p)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path %q escapes its directory", p)
	}
	return nil
}

func hasDriveLetter(p string) bool {
	return len(p) >= 2 && p[1] == ':' && isLetter(p[0])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
