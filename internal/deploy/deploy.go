// Package deploy copies converted lookup files into the app's test assets.
package deploy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"nathanbeddoewebdev/sigdata/internal/domain"
	"nathanbeddoewebdev/sigdata/internal/normalize"
)

// DefaultFiles are the converted files the app loads at startup.
var DefaultFiles = []string{
	"sig_services.json",
	"sig_characteristics.json",
	"sig_descriptors.json",
	"sig_company_identifiers.json",
}

// Status is the outcome of deploying one file.
type Status string

const (
	StatusCopied Status = "copied"

	// StatusMissing means the converted file did not exist. Nothing was
	// copied.
	StatusMissing Status = "missing"

	// StatusInvalid means the file was copied but the copy is not a valid
	// dictionary.
	StatusInvalid Status = "invalid"

	// StatusFailed means the file could not be copied. The other files are
	// still attempted.
	StatusFailed Status = "failed"
)

// Result describes one deployed file.
type Result struct {
	File       string
	SourcePath string
	TargetPath string
	Status     Status
	Entries    int
	Err        error
}

// Warning reports whether the result needs the user's attention.
func (r Result) Warning() bool { return r.Status != StatusCopied }

// Deployer copies Files from SourceDir to TargetDir.
type Deployer struct {
	SourceDir string
	TargetDir string

	// Files defaults to DefaultFiles.
	Files []string

	Logger *slog.Logger
}

// Run copies every file. Missing, unparsable and uncopyable files are
// reported in the results; only failing to create the target directory
// returns an error.
func (d *Deployer) Run() ([]Result, error) {
	log := d.logger()

	if err := os.MkdirAll(d.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("deploy: %w %s: %w", domain.ErrOutputDir, d.TargetDir, err)
	}

	files := d.Files
	if len(files) == 0 {
		files = DefaultFiles
	}

	results := make([]Result, 0, len(files))
	for _, name := range files {
		r := Result{
			File:       name,
			SourcePath: filepath.Join(d.SourceDir, name),
			TargetPath: filepath.Join(d.TargetDir, name),
		}

		err := copyFile(r.SourcePath, r.TargetPath)
		if errors.Is(err, fs.ErrNotExist) {
			r.Status = StatusMissing
			r.Err = fmt.Errorf("deploy: %s: %w", r.SourcePath, domain.ErrMissingOutput)
			log.Warn("converted file missing", "file", name)
			results = append(results, r)
			continue
		}
		if err != nil {
			r.Status = StatusFailed
			r.Err = fmt.Errorf("deploy: failed to copy %s: %w", name, err)
			log.Warn("failed to copy file", "file", name, "error", err)
			results = append(results, r)
			continue
		}

		dict, err := normalize.ReadDictionary(r.TargetPath)
		if err != nil {
			r.Status = StatusInvalid
			r.Err = fmt.Errorf("deploy: %w", err)
			log.Warn("deployed file is not a dictionary", "file", name, "error", err)
			results = append(results, r)
			continue
		}

		r.Status = StatusCopied
		r.Entries = dict.Len()
		log.Debug("deployed file", "file", name, "entries", r.Entries)
		results = append(results, r)
	}

	return results, nil
}

// copyFile copies src to dst byte for byte, carrying over the permission
// bits and modification time. dst must not be src itself.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("%w: %s", domain.ErrSameFile, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func (d *Deployer) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
