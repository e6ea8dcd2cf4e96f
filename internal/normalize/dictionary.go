package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is a single normalized key/name pair.
type Entry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Dictionary is a flat key→name lookup table that remembers insertion order.
// Setting an existing key replaces its name but keeps its original position.
// The zero value is ready to use.
type Dictionary struct {
	keys  []string
	names map[string]string
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{names: make(map[string]string)}
}

// Set stores name under key.
func (d *Dictionary) Set(key, name string) {
	if d.names == nil {
		d.names = make(map[string]string)
	}
	if _, ok := d.names[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.names[key] = name
}

// Get returns the name stored under key.
func (d *Dictionary) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	name, ok := d.names[key]
	return name, ok
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Entries returns the key/name pairs in insertion order.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, Entry{Key: k, Name: d.names[k]})
	}
	return out
}

// Map returns a copy of the dictionary as a plain map.
func (d *Dictionary) Map() map[string]string {
	out := make(map[string]string, d.Len())
	if d == nil {
		return out
	}
	for k, v := range d.names {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the dictionary as a compact JSON object in insertion
// order. HTML characters and non-ASCII text, including U+2028 and U+2029,
// are written literally. Invalid UTF-8 is replaced with U+FFFD.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, d.names[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent encodes the dictionary with two-space indentation, the layout
// used for every converted file.
func (d *Dictionary) MarshalIndent() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object of strings, keeping the order in
// which keys appear in the document.
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	d.keys = nil
	d.names = make(map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("value for key %q: %w", key, err)
		}
		d.Set(key, name)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var enc bytes.Buffer
	e := json.NewEncoder(&enc)
	e.SetEscapeHTML(false)
	if err := e.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	out := enc.Bytes()[:enc.Len()-1]
	if !strings.ContainsAny(s, "\u2028\u2029") {
		buf.Write(out)
		return nil
	}

	// The encoder always escapes U+2028 and U+2029; write them literally.
	for i := 0; i < len(out); i++ {
		if out[i] != '\\' {
			buf.WriteByte(out[i])
			continue
		}
		switch string(out[i:min(i+6, len(out))]) {
		case `\u2028`:
			buf.WriteRune('\u2028')
			i += 5
			continue
		case `\u2029`:
			buf.WriteRune('\u2029')
			i += 5
			continue
		}
		buf.Write(out[i : i+2])
		i++
	}
	return nil
}
