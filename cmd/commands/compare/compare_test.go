package compare

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sigdata/internal/config"
	"nathanbeddoewebdev/sigdata/internal/domain"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

func writeOutputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func allOutputs(t *testing.T) string {
	return writeOutputs(t, map[string]string{
		"sig_services.json":            `{"1800": "Generic Access", "183b": "Binary Sensor"}`,
		"sig_characteristics.json":     `{"2a00": "Device Name"}`,
		"sig_descriptors.json":         `{"2900": "Characteristic Extended Properties"}`,
		"sig_company_identifiers.json": `{"004c": "Apple, Inc."}`,
	})
}

func execCompare(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCompare_Text(t *testing.T) {
	setupTestConfig(t)

	stdout, _, err := execCompare(t, "--output-dir", allOutputs(t))
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{
		"SIG Database Comparison",
		"Well-known: 39",
		"0x183B: Binary Sensor",
		"company identifiers (new capability)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stdout to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestCompare_JSON(t *testing.T) {
	setupTestConfig(t)

	stdout, _, err := execCompare(t, "--output-dir", allOutputs(t), "-o", "json")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	var report struct {
		Sections []struct {
			Category  string `json:"category"`
			Converted int    `json:"converted"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(report.Sections) != 4 || report.Sections[0].Category != "services" || report.Sections[0].Converted != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestCompare_MissingFileStillRendersOthers(t *testing.T) {
	setupTestConfig(t)
	dir := writeOutputs(t, map[string]string{
		"sig_services.json": `{"1800": "Generic Access"}`,
	})

	stdout, _, err := execCompare(t, "--output-dir", dir)
	if !errors.Is(err, domain.ErrMissingOutput) {
		t.Fatalf("expected ErrMissingOutput, got %v", err)
	}
	if !strings.Contains(stdout, "Well-known: 39") {
		t.Errorf("expected services section to render, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "converted file not found") {
		t.Errorf("expected missing files to be reported, got:\n%s", stdout)
	}
}

func TestCompare_UsesConfiguredOutputDir(t *testing.T) {
	path := setupTestConfig(t)
	cfg := &config.Config{OutputDir: allOutputs(t)}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, _, err := execCompare(t); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
}

func TestCompare_OutputFlagSelectsFormat(t *testing.T) {
	setupTestConfig(t)

	stdout, _, err := execCompare(t, "--output-dir", allOutputs(t), "--output", "json")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !json.Valid([]byte(stdout)) {
		t.Errorf("expected JSON with --output json, got:\n%s", stdout)
	}

	if f := NewCommand().Flags().Lookup("format"); f != nil {
		t.Error("expected no --format flag; -o/--output selects the format")
	}
}

func TestCompare_UnsupportedFormat(t *testing.T) {
	setupTestConfig(t)

	_, _, err := execCompare(t, "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
