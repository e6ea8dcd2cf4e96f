// Package normalize turns parsed Bluetooth SIG YAML tables into flat
// key→name dictionaries.
//
// Every source table has one of a small, closed set of shapes. Each shape is
// a Kind; a Schema pairs a Kind with the few parameters some shapes need
// (the list key and hex width of generic value/name lists). Normalizers never
// fail: records with missing or unsupported fields are dropped, and a
// document without the expected list yields an empty dictionary.
package normalize

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a source table.
type Kind int

const (
	// KindUUIDList is a "uuids" list of uuid/name records.
	KindUUIDList Kind = iota + 1

	// KindCompanyIdentifiers is a bare list, or a "company_identifiers"
	// list, of value/name records.
	KindCompanyIdentifiers

	// KindAppearanceValues is an "appearance_values" list of category/name
	// records with optional subcategory lists.
	KindAppearanceValues

	// KindValueNameList is a list of value/name (or id/name) records under
	// a schema-specific key.
	KindValueNameList

	// KindMeshModelUUIDs is a "mesh_model_uuids" list of uuid/name/type
	// records.
	KindMeshModelUUIDs

	// KindClassOfDeviceBits is a "cod_services" list of bit/name records.
	KindClassOfDeviceBits
)

var kindNames = map[Kind]string{
	KindUUIDList:           "uuid_list",
	KindCompanyIdentifiers: "company_identifier_list",
	KindAppearanceValues:   "appearance_values",
	KindValueNameList:      "generic_value_name_list",
	KindMeshModelUUIDs:     "mesh_model_uuid_list",
	KindClassOfDeviceBits:  "class_of_device_bit_list",
}

// String returns the manifest name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind with the given manifest name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown schema %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown schema kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Schema describes how to normalize one source table.
type Schema struct {
	Kind Kind `yaml:"schema"`

	// ListKey names the list for KindValueNameList.
	ListKey string `yaml:"list_key,omitempty"`

	// KeyWidth is the hex width of integer keys. Zero means ShortKeyWidth.
	KeyWidth int `yaml:"key_width,omitempty"`
}

// UUIDList returns the schema for "uuids" tables.
func UUIDList() Schema { return Schema{Kind: KindUUIDList} }

// CompanyIdentifiers returns the schema for the company identifier table.
func CompanyIdentifiers() Schema { return Schema{Kind: KindCompanyIdentifiers} }

// AppearanceValues returns the schema for the appearance values table.
func AppearanceValues() Schema { return Schema{Kind: KindAppearanceValues} }

// ValueNameList returns the schema for a value/name list stored under
// listKey, with 16-bit keys.
func ValueNameList(listKey string) Schema {
	return Schema{Kind: KindValueNameList, ListKey: listKey}
}

// ByteValueNameList is like ValueNameList but formats keys as single bytes.
func ByteValueNameList(listKey string) Schema {
	return Schema{Kind: KindValueNameList, ListKey: listKey, KeyWidth: ByteKeyWidth}
}

// MeshModelUUIDs returns the schema for the mesh model table.
func MeshModelUUIDs() Schema { return Schema{Kind: KindMeshModelUUIDs} }

// ClassOfDeviceBits returns the schema for the class of device table.
func ClassOfDeviceBits() Schema { return Schema{Kind: KindClassOfDeviceBits} }

// Validate reports whether the schema can be applied.
func (s Schema) Validate() error {
	if _, ok := kindNames[s.Kind]; !ok {
		return fmt.Errorf("unknown schema kind %d", int(s.Kind))
	}
	if s.Kind == KindValueNameList && strings.TrimSpace(s.ListKey) == "" {
		return fmt.Errorf("schema %s requires a list key", s.Kind)
	}
	if s.KeyWidth < 0 {
		return fmt.Errorf("key width must not be negative, got %d", s.KeyWidth)
	}
	return nil
}

func (s Schema) width() int {
	if s.KeyWidth <= 0 {
		return ShortKeyWidth
	}
	return s.KeyWidth
}

// Options carries settings shared by all schemas.
type Options struct {
	Appearance AppearanceScheme
}

// Apply normalizes a parsed YAML document according to the schema.
func (s Schema) Apply(data any, opts Options) *Dictionary {
	switch s.Kind {
	case KindUUIDList:
		return uuidList(data)
	case KindCompanyIdentifiers:
		return companyIdentifiers(data)
	case KindAppearanceValues:
		return appearanceValues(data, opts.Appearance)
	case KindValueNameList:
		return valueNameList(data, s.ListKey, s.width())
	case KindMeshModelUUIDs:
		return meshModelUUIDs(data)
	case KindClassOfDeviceBits:
		return classOfDeviceBits(data)
	}
	return NewDictionary()
}
