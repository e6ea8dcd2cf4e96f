package normalize

import "fmt"

// record is one mapping item of a source list.
type record map[string]any

func records(items []any) []record {
	out := make([]record, 0, len(items))
	for _, item := range items {
		if m, ok := asMap(item); ok {
			out = append(out, record(m))
		}
	}
	return out
}

// pair adds key/name to d when both format to non-empty strings.
func (r record) pair(d *Dictionary, keyField string, width int) bool {
	key, ok := FormatKey(r[keyField], width)
	if !ok {
		return false
	}
	name, ok := text(r["name"])
	if !ok {
		return false
	}
	d.Set(key, name)
	return true
}

func uuidList(data any) *Dictionary {
	d := NewDictionary()
	for _, r := range records(listAt(data, "uuids")) {
		r.pair(d, "uuid", ShortKeyWidth)
	}
	return d
}

func companyIdentifiers(data any) *Dictionary {
	items, ok := asList(data)
	if !ok {
		items = listAt(data, "company_identifiers")
	}

	d := NewDictionary()
	for _, r := range records(items) {
		r.pair(d, "value", ShortKeyWidth)
	}
	return d
}

func valueNameList(data any, listKey string, width int) *Dictionary {
	d := NewDictionary()
	for _, r := range records(listAt(data, listKey)) {
		keyField := "value"
		if _, ok := r[keyField]; !ok {
			keyField = "id"
		}
		r.pair(d, keyField, width)
	}
	return d
}

func meshModelUUIDs(data any) *Dictionary {
	d := NewDictionary()
	for _, r := range records(listAt(data, "mesh_model_uuids")) {
		key, ok := FormatKey(r["uuid"], ShortKeyWidth)
		if !ok {
			continue
		}
		name, ok := text(r["name"])
		if !ok {
			continue
		}
		if modelType, ok := text(r["type"]); ok {
			name = fmt.Sprintf("%s (%s)", name, modelType)
		}
		d.Set(key, name)
	}
	return d
}

// classOfDeviceBits keys entries by the decimal bit position rather than a
// hex value.
func classOfDeviceBits(data any) *Dictionary {
	d := NewDictionary()
	for _, r := range records(listAt(data, "cod_services")) {
		key, ok := text(r["bit"])
		if !ok {
			continue
		}
		name, ok := text(r["name"])
		if !ok {
			continue
		}
		d.Set(key, name)
	}
	return d
}
