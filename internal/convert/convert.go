// Package convert runs the manifest: each source table is loaded, normalized
// and written to its JSON target. A source that cannot be loaded is skipped
// and the run continues; only a missing output directory stops it.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"nathanbeddoewebdev/sigdata/internal/domain"
	"nathanbeddoewebdev/sigdata/internal/manifest"
	"nathanbeddoewebdev/sigdata/internal/normalize"
	"nathanbeddoewebdev/sigdata/internal/sigyaml"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of entries converted concurrently when
// Converter.Workers is not set.
const DefaultWorkers = 4

// Status is the outcome of converting one manifest entry.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result describes one manifest entry after a run.
type Result struct {
	Entry      manifest.Entry
	SourcePath string
	TargetPath string
	Status     Status

	// Entries is the number of key/name pairs written. Zero unless
	// Status is StatusConverted.
	Entries int

	// Err explains a skip or failure.
	Err error
}

// Summary collects the results of a run in manifest order.
type Summary struct {
	Results   []Result
	Converted int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// Total returns the number of manifest entries processed.
func (s *Summary) Total() int { return len(s.Results) }

// TotalEntries returns the number of key/name pairs written across all files.
func (s *Summary) TotalEntries() int {
	n := 0
	for _, r := range s.Results {
		n += r.Entries
	}
	return n
}

// Created returns the paths of the files written, in manifest order.
func (s *Summary) Created() []string {
	var paths []string
	for _, r := range s.Results {
		if r.Status == StatusConverted {
			paths = append(paths, r.TargetPath)
		}
	}
	return paths
}

// Converter converts SIG YAML tables to JSON dictionaries.
type Converter struct {
	SourceDir string
	OutputDir string

	// Workers bounds how many entries are converted at once.
	Workers int

	Options normalize.Options
	Logger  *slog.Logger
}

// Run converts every entry. The returned error is non-nil only when the
// manifest is invalid, the output directory cannot be created, or ctx is
// cancelled; per-file problems are reported in the Summary.
func (c *Converter) Run(ctx context.Context, entries []manifest.Entry) (*Summary, error) {
	start := time.Now()
	log := c.logger()

	if err := manifest.Validate(entries); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("convert: %w %s: %w", domain.ErrOutputDir, c.OutputDir, err)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.convertOne(entry)
			log.Debug("converted entry",
				"source", results[i].SourcePath,
				"target", results[i].TargetPath,
				"status", results[i].Status,
				"entries", results[i].Entries,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	s := &Summary{Results: results, Duration: time.Since(start)}
	for _, r := range results {
		switch r.Status {
		case StatusConverted:
			s.Converted++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s, nil
}

func (c *Converter) convertOne(entry manifest.Entry) Result {
	r := Result{
		Entry:      entry,
		SourcePath: filepath.Join(c.SourceDir, filepath.FromSlash(entry.Source)),
		TargetPath: filepath.Join(c.OutputDir, filepath.FromSlash(entry.Target)),
	}

	data, err := sigyaml.Load(r.SourcePath)
	if err != nil {
		r.Status = StatusSkipped
		if !domain.IsSkip(err) {
			r.Status = StatusFailed
		}
		r.Err = err
		return r
	}

	dict := entry.Schema.Apply(data, c.Options)
	payload, err := dict.MarshalIndent()
	if err != nil {
		r.Status = StatusFailed
		r.Err = fmt.Errorf("convert: failed to encode %s: %w", entry.Target, err)
		return r
	}

	if err := writeFile(r.TargetPath, payload); err != nil {
		r.Status = StatusFailed
		r.Err = fmt.Errorf("convert: failed to write %s: %w", r.TargetPath, err)
		return r
	}

	r.Status = StatusConverted
	r.Entries = dict.Len()
	return r
}

// writeFile replaces path with data via a temporary file in the same
// directory, so readers never observe a partially written file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
