package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nathanbeddoewebdev/sigdata/internal/domain"
	"nathanbeddoewebdev/sigdata/internal/normalize"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_IsValid(t *testing.T) {
	entries := Default()
	if err := Validate(entries); err != nil {
		t.Fatalf("default manifest invalid: %v", err)
	}
	if len(entries) != 28 {
		t.Errorf("expected 28 default entries, got %d", len(entries))
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	first := Default()
	first[0].Target = "changed.json"

	if Default()[0].Target != "sig_services.json" {
		t.Error("modifying the returned slice changed the built-in manifest")
	}
}

func TestDefault_CoreTargets(t *testing.T) {
	want := map[string]normalize.Kind{
		"sig_services.json":            normalize.KindUUIDList,
		"sig_characteristics.json":     normalize.KindUUIDList,
		"sig_descriptors.json":         normalize.KindUUIDList,
		"sig_company_identifiers.json": normalize.KindCompanyIdentifiers,
		"sig_appearance_values.json":   normalize.KindAppearanceValues,
		"sig_mesh_models.json":         normalize.KindMeshModelUUIDs,
		"sig_class_of_device.json":     normalize.KindClassOfDeviceBits,
	}

	got := make(map[string]normalize.Kind)
	for _, e := range Default() {
		if _, ok := want[e.Target]; ok {
			got[e.Target] = e.Kind
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("core targets mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_ADTypesUseByteKeys(t *testing.T) {
	for _, e := range Default() {
		if e.Target == "sig_ad_types.json" {
			if e.KeyWidth != normalize.ByteKeyWidth {
				t.Errorf("expected AD types key width %d, got %d", normalize.ByteKeyWidth, e.KeyWidth)
			}
			return
		}
	}
	t.Fatal("sig_ad_types.json not in default manifest")
}

func TestParse(t *testing.T) {
	data := []byte(`
entries:
  - source: uuids/service_uuids.yaml
    target: sig_services.json
    schema: uuid_list
  - source: core/ad_types.yaml
    target: sig_ad_types.json
    schema: generic_value_name_list
    list_key: ad_types
    key_width: 2
`)

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Entry{
		{Source: "uuids/service_uuids.yaml", Target: "sig_services.json", Schema: normalize.UUIDList()},
		{Source: "core/ad_types.yaml", Target: "sig_ad_types.json", Schema: normalize.ByteValueNameList("ad_types")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownSchema(t *testing.T) {
	data := []byte("entries:\n  - source: a.yaml\n    target: a.json\n    schema: nope\n")
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unknown schema")
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := "entries:\n  - source: core/diacs.yaml\n    target: sig_diacs.json\n    schema: generic_value_name_list\n    list_key: diacs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ListKey != "diacs" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestValidate(t *testing.T) {
	valid := Entry{Source: "a.yaml", Target: "a.json", Schema: normalize.UUIDList()}

	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"empty", nil, domain.ErrInvalidManifest},
		{"no source", []Entry{{Target: "a.json", Schema: normalize.UUIDList()}}, domain.ErrInvalidManifest},
		{"no target", []Entry{{Source: "a.yaml", Schema: normalize.UUIDList()}}, domain.ErrInvalidManifest},
		{"bad schema", []Entry{{Source: "a.yaml", Target: "a.json"}}, domain.ErrInvalidManifest},
		{"absolute source", []Entry{{Source: "/etc/a.yaml", Target: "a.json", Schema: normalize.UUIDList()}}, domain.ErrInvalidManifest},
		{"escaping target", []Entry{{Source: "a.yaml", Target: "../a.json", Schema: normalize.UUIDList()}}, domain.ErrInvalidManifest},
		{"duplicate target", []Entry{valid, {Source: "b.yaml", Target: "./a.json", Schema: normalize.UUIDList()}}, domain.ErrDuplicateTarget},
		{"valid", []Entry{valid}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
