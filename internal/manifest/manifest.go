// Package manifest lists the SIG source tables to convert, the JSON file each
// one produces, and the schema used to normalize it.
package manifest

import (
	"fmt"
	"os"
	"path"
	"strings"

	"nathanbeddoewebdev/sigdata/internal/domain"
	"nathanbeddoewebdev/sigdata/internal/normalize"
	"nathanbeddoewebdev/sigdata/internal/util"

	"gopkg.in/yaml.v3"
)

// Entry pairs a source table with its output file and schema.
// Source is relative to the SIG source directory and Target to the output
// directory; both use forward slashes.
type Entry struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	normalize.Schema `yaml:",inline"`
}

// File is the on-disk manifest layout.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// Default returns the built-in manifest.
func Default() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

var defaultEntries = []Entry{
	// Lookup tables the app has always shipped.
	{Source: "uuids/service_uuids.yaml", Target: "sig_services.json", Schema: normalize.UUIDList()},
	{Source: "uuids/characteristic_uuids.yaml", Target: "sig_characteristics.json", Schema: normalize.UUIDList()},
	{Source: "uuids/descriptors.yaml", Target: "sig_descriptors.json", Schema: normalize.UUIDList()},
	{Source: "company_identifiers/company_identifiers.yaml", Target: "sig_company_identifiers.json", Schema: normalize.CompanyIdentifiers()},
	{Source: "uuids/member_uuids.yaml", Target: "sig_member_uuids.json", Schema: normalize.UUIDList()},

	// Core
	{Source: "core/appearance_values.yaml", Target: "sig_appearance_values.json", Schema: normalize.AppearanceValues()},
	{Source: "core/ad_types.yaml", Target: "sig_ad_types.json", Schema: normalize.ByteValueNameList("ad_types")},
	{Source: "core/coding_format.yaml", Target: "sig_coding_formats.json", Schema: normalize.ValueNameList("coding_formats")},
	{Source: "core/uri_schemes.yaml", Target: "sig_uri_schemes.json", Schema: normalize.ValueNameList("uri_schemes")},
	{Source: "core/diacs.yaml", Target: "sig_diacs.json", Schema: normalize.ValueNameList("diacs")},
	{Source: "core/class_of_device.yaml", Target: "sig_class_of_device.json", Schema: normalize.ClassOfDeviceBits()},
	{Source: "core/pcm_data_format.yaml", Target: "sig_pcm_formats.json", Schema: normalize.ValueNameList("pcm_data_formats")},
	{Source: "core/formattypes.yaml", Target: "sig_format_types.json", Schema: normalize.ValueNameList("formattypes")},
	{Source: "core/transport_layers.yaml", Target: "sig_transport_layers.json", Schema: normalize.ValueNameList("transport_layers")},
	{Source: "core/namespace.yaml", Target: "sig_namespaces.json", Schema: normalize.ValueNameList("namespaces")},
	{Source: "core/psm.yaml", Target: "sig_psm.json", Schema: normalize.ValueNameList("psm")},

	// UUID tables
	{Source: "uuids/protocol_identifiers.yaml", Target: "sig_protocol_identifiers.json", Schema: normalize.UUIDList()},
	{Source: "uuids/units.yaml", Target: "sig_units.json", Schema: normalize.UUIDList()},
	{Source: "uuids/declarations.yaml", Target: "sig_declarations.json", Schema: normalize.UUIDList()},
	{Source: "uuids/object_types.yaml", Target: "sig_object_types.json", Schema: normalize.UUIDList()},
	{Source: "uuids/browse_group_identifiers.yaml", Target: "sig_browse_groups.json", Schema: normalize.UUIDList()},
	{Source: "uuids/service_class.yaml", Target: "sig_service_classes.json", Schema: normalize.UUIDList()},
	{Source: "uuids/mesh_profile_uuids.yaml", Target: "sig_mesh_profile_uuids.json", Schema: normalize.UUIDList()},

	// Mesh
	{Source: "mesh/mesh_beacon_types.yaml", Target: "sig_mesh_beacons.json", Schema: normalize.ValueNameList("mesh_beacon_types")},
	{Source: "mesh/mesh_model_uuids.yaml", Target: "sig_mesh_models.json", Schema: normalize.MeshModelUUIDs()},
	{Source: "mesh/mesh_opcodes.yaml", Target: "sig_mesh_opcodes.json", Schema: normalize.ValueNameList("mesh_opcodes")},
	{Source: "mesh/mesh_health_faults.yaml", Target: "sig_mesh_health_faults.json", Schema: normalize.ValueNameList("mesh_health_faults")},

	// Service discovery
	{Source: "service_discovery/protocol_parameters.yaml", Target: "sig_protocol_parameters.json", Schema: normalize.ValueNameList("protocol_parameters")},
}

// Load reads a manifest file. The entries are validated before returning.
func Load(filename string) ([]Entry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to read %s: %w", filename, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", filename, err)
	}
	return entries, nil
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	if err := Validate(f.Entries); err != nil {
		return nil, err
	}
	return f.Entries, nil
}

// Marshal encodes entries in the manifest file layout.
func Marshal(entries []Entry) ([]byte, error) {
	return yaml.Marshal(File{Entries: entries})
}

// Validate checks that every entry is complete and that no two entries
// write the same target file.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries", domain.ErrInvalidManifest)
	}

	seen := make(map[string]string, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Source) == "" {
			return fmt.Errorf("%w: entry %d has no source", domain.ErrInvalidManifest, i+1)
		}
		if strings.TrimSpace(e.Target) == "" {
			return fmt.Errorf("%w: entry %d (%s) has no target", domain.ErrInvalidManifest, i+1, e.Source)
		}
		if err := util.ValidateRelativePath(e.Source); err != nil {
			return fmt.Errorf("%w: entry %d source: %v", domain.ErrInvalidManifest, i+1, err)
		}
		if err := util.ValidateRelativePath(e.Target); err != nil {
			return fmt.Errorf("%w: entry %d target: %v", domain.ErrInvalidManifest, i+1, err)
		}
		if err := e.Schema.Validate(); err != nil {
			return fmt.Errorf("%w: entry %d (%s): %v", domain.ErrInvalidManifest, i+1, e.Source, err)
		}

		target := path.Clean(e.Target)
		if prev, ok := seen[target]; ok {
			return fmt.Errorf("%w: %s is written by both %s and %s", domain.ErrDuplicateTarget, target, prev, e.Source)
		}
		seen[target] = e.Source
	}
	return nil
}
