package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/sigdata/internal/manifest"

	"github.com/google/go-cmp/cmp"
)

func execManifest(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func TestManifest_Table(t *testing.T) {
	stdout, err := execManifest(t)
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != len(manifest.Default())+2 {
		t.Errorf("expected header plus %d rows, got %d lines", len(manifest.Default()), len(lines))
	}
	for _, want := range []string{"uuids/service_uuids.yaml", "sig_ad_types.json", "generic_value_name_list", "ad_types"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected table to contain %q", want)
		}
	}
}

func TestManifest_YAMLRoundTrip(t *testing.T) {
	stdout, err := execManifest(t, "-o", "yaml")
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(stdout), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	got, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("printed manifest does not load: %v", err)
	}
	if diff := cmp.Diff(manifest.Default(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := "entries:\n  - source: core/diacs.yaml\n    target: sig_diacs.json\n    schema: generic_value_name_list\n    list_key: diacs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	stdout, err := execManifest(t, "--manifest", path)
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}
	if !strings.Contains(stdout, "core/diacs.yaml") || strings.Contains(stdout, "sig_services.json") {
		t.Errorf("expected only the file's entries, got:\n%s", stdout)
	}
}

func TestManifest_UnsupportedFormat(t *testing.T) {
	if _, err := execManifest(t, "-o", "json"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
