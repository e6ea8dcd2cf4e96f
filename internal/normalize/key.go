package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ShortKeyWidth is the hex width of 16-bit assigned numbers.
	ShortKeyWidth = 4

	// ByteKeyWidth is the hex width of single-byte codes such as AD types.
	ByteKeyWidth = 2
)

// FormatKey converts a raw YAML key value into a lookup key.
//
// Integers become lowercase hex zero-padded to width digits. Strings lose one
// leading "0x"/"0X" and are lowercased. Every other type, and negative
// integers, report ok == false and the record must be skipped. Formatting an
// already-normalized key returns it unchanged.
func FormatKey(raw any, width int) (key string, ok bool) {
	if width <= 0 {
		width = ShortKeyWidth
	}

	if n, isInt := toUint(raw); isInt {
		return fmt.Sprintf("%0*x", width, n), true
	}

	s, isString := raw.(string)
	if !isString {
		return "", false
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	s = strings.ToLower(s)
	return s, s != ""
}

// parseHex reads an integer key value, accepting integers and hex strings
// with or without the "0x" prefix.
func parseHex(raw any) (uint64, bool) {
	if n, ok := toUint(raw); ok {
		return n, true
	}
	s, ok := FormatKey(raw, ShortKeyWidth)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// toUint returns non-negative integers of any width as uint64.
func toUint(raw any) (uint64, bool) {
	switch v := raw.(type) {
	case int:
		return signed(int64(v))
	case int8:
		return signed(int64(v))
	case int16:
		return signed(int64(v))
	case int32:
		return signed(int64(v))
	case int64:
		return signed(v)
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}

func signed(v int64) (uint64, bool) {
	if v < 0 {
		return 0, false
	}
	return uint64(v), true
}

// text renders a scalar name value. Strings are returned as-is; numbers use
// their decimal form. Anything else is rejected.
func text(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(v), true
	}
	return "", false
}

// asMap returns v as a string-keyed mapping. The YAML decoder produces
// map[string]any for ordinary documents and map[any]any when a mapping has
// non-string keys.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// listAt returns the sequence stored under key in a top-level mapping.
func listAt(data any, key string) []any {
	m, ok := asMap(data)
	if !ok {
		return nil
	}
	l, _ := asList(m[key])
	return l
}
