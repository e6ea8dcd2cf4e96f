package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sigdata", "config.json")

	want := &Config{
		SourceDir:      "/data/SIG",
		OutputDir:      "out",
		Workers:        8,
		AppearanceKeys: "flat",
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{OutputDir: "out"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	first := &Config{OutputDir: "first"}
	if err := first.SaveTo(path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := &Config{OutputDir: "second"}
	if err := second.SaveTo(path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.OutputDir != "second" {
		t.Errorf("expected OutputDir %q, got %q", "second", got.OutputDir)
	}
}

func TestSave_OmitsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	if err := (&Config{Workers: 2}).SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if diff := cmp.Diff("{\n  \"workers\": 2\n}\n", string(data)); diff != "" {
		t.Errorf("file content mismatch (-want +got):\n%s", diff)
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := &Config{OutputDir: "custom"}

	got := cfg.WithDefaults()
	want := Config{
		SourceDir: DefaultSourceDir,
		OutputDir: "custom",
		AssetsDir: DefaultAssetsDir,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.SourceDir != "" {
		t.Error("WithDefaults modified the receiver")
	}
}
