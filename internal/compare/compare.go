// Package compare reports how much the converted SIG data extends the
// lookup tables the app shipped with before conversion.
package compare

import (
	"errors"
	"fmt"
	"path/filepath"

	"nathanbeddoewebdev/sigdata/internal/normalize"
)

// MaxExamples is the number of new entries listed per section.
const MaxExamples = 5

// Section is the comparison result for one category.
type Section struct {
	Category string `json:"category"`
	File     string `json:"file"`

	Baseline  int `json:"baseline"`
	Converted int `json:"converted"`
	Increase  int `json:"increase"`

	// PercentIncrease is nil when the category has no baseline.
	PercentIncrease *float64 `json:"percent_increase,omitempty"`

	// New is the number of converted keys missing from the baseline.
	New       int               `json:"new"`
	Examples  []normalize.Entry `json:"examples,omitempty"`
	Remaining int               `json:"remaining"`

	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
}

// NewCapability reports whether the category had no baseline at all.
func (s Section) NewCapability() bool {
	return s.PercentIncrease == nil
}

// Report is a full comparison across all categories.
type Report struct {
	OutputDir string    `json:"output_dir"`
	Sections  []Section `json:"sections"`
}

// Err joins the errors of every section that could not be compared.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Sections {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

// Compare builds the section for cat against a converted dictionary.
// New keys are listed in converted order.
func Compare(cat Category, converted *normalize.Dictionary) Section {
	s := Section{
		Category:  cat.Name,
		File:      cat.File,
		Baseline:  len(cat.Baseline),
		Converted: converted.Len(),
	}
	s.Increase = s.Converted - s.Baseline

	if s.Baseline > 0 {
		pct := (float64(s.Converted)/float64(s.Baseline) - 1) * 100
		s.PercentIncrease = &pct
	}

	known := make(map[string]struct{}, len(cat.Baseline))
	for _, k := range cat.Baseline {
		known[k] = struct{}{}
	}

	for _, e := range converted.Entries() {
		if _, ok := known[e.Key]; ok {
			continue
		}
		s.New++
		if len(s.Examples) < MaxExamples {
			s.Examples = append(s.Examples, e)
		}
	}
	s.Remaining = max(s.New-MaxExamples, 0)

	return s
}

// Run compares every category against the files in outputDir. Sections for
// files that cannot be loaded carry an error; the others are still filled
// in. The returned error is Report.Err.
func Run(outputDir string) (*Report, error) {
	r := &Report{OutputDir: outputDir}

	for _, cat := range Categories() {
		dict, err := normalize.ReadDictionary(filepath.Join(outputDir, cat.File))
		if err != nil {
			r.Sections = append(r.Sections, Section{
				Category: cat.Name,
				File:     cat.File,
				Baseline: len(cat.Baseline),
				Error:    err.Error(),
				Err:      fmt.Errorf("compare: %s: %w", cat.Name, err),
			})
			continue
		}
		r.Sections = append(r.Sections, Compare(cat, dict))
	}

	return r, r.Err()
}
