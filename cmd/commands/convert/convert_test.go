package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sigdata/internal/config"
	"nathanbeddoewebdev/sigdata/internal/database"
	"nathanbeddoewebdev/sigdata/internal/history"
)

// setupTest points config and history at temp files and returns a SIG
// source tree with a services table.
func setupTest(t *testing.T) (configPath, dbPath, source string) {
	t.Helper()
	dir := t.TempDir()

	configPath = filepath.Join(dir, "config.json")
	config.SetPath(configPath)
	t.Cleanup(config.ResetPath)

	dbPath = filepath.Join(dir, "sigdata.db")
	database.SetPath(dbPath)
	t.Cleanup(database.ResetPath)

	source = filepath.Join(dir, "SIG")
	if err := os.MkdirAll(filepath.Join(source, "uuids"), 0o755); err != nil {
		t.Fatalf("failed to create source tree: %v", err)
	}
	services := "uuids:\n  - uuid: 0x1800\n    name: Generic Access\n  - uuid: 0x1801\n    name: Generic Attribute\n"
	if err := os.WriteFile(filepath.Join(source, "uuids", "service_uuids.yaml"), []byte(services), 0o644); err != nil {
		t.Fatalf("failed to write services: %v", err)
	}
	return configPath, dbPath, source
}

func writeManifest(t *testing.T, withMissing bool) string {
	t.Helper()
	content := "entries:\n  - source: uuids/service_uuids.yaml\n    target: sig_services.json\n    schema: uuid_list\n"
	if withMissing {
		content += "  - source: uuids/descriptors.yaml\n    target: sig_descriptors.json\n    schema: uuid_list\n"
	}
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func execConvert(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestConvert_WritesFilesAndSummary(t *testing.T) {
	_, _, source := setupTest(t)
	output := filepath.Join(t.TempDir(), "out")

	stdout, _, err := execConvert(t,
		"--source-dir", source, "--output-dir", output, "--manifest", writeManifest(t, false))
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(output, "sig_services.json")); err != nil {
		t.Errorf("expected sig_services.json to be written: %v", err)
	}
	for _, want := range []string{
		"uuids/service_uuids.yaml -> sig_services.json (2 entries)",
		"Summary: 1 converted, 0 skipped, 0 failed (2 entries)",
		"sigdata compare",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stdout to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestConvert_SkipsMissingWithoutStrict(t *testing.T) {
	_, _, source := setupTest(t)
	output := t.TempDir()

	stdout, _, err := execConvert(t,
		"--source-dir", source, "--output-dir", output, "--manifest", writeManifest(t, true))
	if err != nil {
		t.Fatalf("expected success without --strict, got %v", err)
	}
	if !strings.Contains(stdout, "Summary: 1 converted, 1 skipped, 0 failed") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}
	if !strings.Contains(stdout, "uuids/descriptors.yaml") {
		t.Errorf("expected skipped source to be listed:\n%s", stdout)
	}
}

func TestConvert_StrictFailsOnSkip(t *testing.T) {
	_, _, source := setupTest(t)

	_, stderr, err := execConvert(t,
		"--source-dir", source, "--output-dir", t.TempDir(), "--manifest", writeManifest(t, true), "--strict")
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if !strings.Contains(stderr, "conversion incomplete") {
		t.Errorf("expected error on stderr, got: %s", stderr)
	}
}

func TestConvert_UsesConfigDirectories(t *testing.T) {
	configPath, _, source := setupTest(t)
	output := filepath.Join(t.TempDir(), "from-config")

	cfg := &config.Config{SourceDir: source, OutputDir: output}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, _, err := execConvert(t, "--manifest", writeManifest(t, false)); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "sig_services.json")); err != nil {
		t.Errorf("expected output in configured directory: %v", err)
	}
}

func TestConvert_RecordsHistory(t *testing.T) {
	_, dbPath, source := setupTest(t)

	if _, _, err := execConvert(t,
		"--source-dir", source, "--output-dir", t.TempDir(), "--manifest", writeManifest(t, true)); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	repo, err := history.OpenAt(dbPath)
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	defer repo.Close()

	runs, err := repo.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	run := runs[0]
	if run.Converted != 1 || run.Skipped != 1 || run.Entries != 2 {
		t.Errorf("unexpected counts: %+v", run)
	}
	if run.Outcome != history.OutcomeWarning {
		t.Errorf("expected warning outcome, got %q", run.Outcome)
	}
}

func TestConvert_InvalidFlags(t *testing.T) {
	setupTest(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero workers", []string{"--workers", "0"}, "--workers must be greater than 0"},
		{"bad appearance scheme", []string{"--appearance-keys", "nested"}, "unknown appearance key scheme"},
		{"missing manifest", []string{"--manifest", filepath.Join(t.TempDir(), "nope.yaml")}, "manifest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execConvert(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
