package domain

import "errors"

// Sentinel errors for classifying conversion failures.
// Packages wrap these so the CLI can report skips and failures uniformly
// without inspecting error strings.
//
//	return fmt.Errorf("sigyaml: %s: %w", path, domain.ErrMissingSourceFile)
var (
	// ErrMissingSourceFile indicates a manifest source file does not exist.
	ErrMissingSourceFile = errors.New("source file not found")

	// ErrUnreadableSource indicates a source file exists but could not be
	// read.
	ErrUnreadableSource = errors.New("source file unreadable")

	// ErrMalformedYAML indicates a source file is not valid YAML or holds
	// an empty document.
	ErrMalformedYAML = errors.New("malformed YAML")

	// ErrMissingOutput indicates a converted file that a later step depends
	// on has not been produced.
	ErrMissingOutput = errors.New("converted file not found")

	// ErrInvalidOutput indicates a converted file is not a flat JSON object
	// of strings.
	ErrInvalidOutput = errors.New("converted file is not a JSON dictionary")

	// ErrOutputDir indicates an output or target directory could not be
	// created.
	ErrOutputDir = errors.New("cannot create output directory")

	// ErrSameFile indicates a copy whose source and destination are the
	// same file.
	ErrSameFile = errors.New("source and destination are the same file")

	// ErrDuplicateTarget indicates two manifest entries write the same file.
	ErrDuplicateTarget = errors.New("duplicate target file")

	// ErrInvalidManifest indicates a manifest entry is incomplete.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// IsSkip reports whether err describes a source file that should be skipped
// rather than treated as a conversion failure.
func IsSkip(err error) bool {
	return errors.Is(err, ErrMissingSourceFile) ||
		errors.Is(err, ErrUnreadableSource) ||
		errors.Is(err, ErrMalformedYAML)
}
