package normalize

import (
	"fmt"
	"strings"
)

// AppearanceScheme selects how appearance subcategory keys are built.
type AppearanceScheme string

const (
	// AppearanceComposite keys a subcategory by its parent category as four
	// hex digits followed by the sub-value as two, e.g. "000301".
	AppearanceComposite AppearanceScheme = "composite"

	// AppearanceFlat keys a subcategory by its own value alone, formatted
	// like any other 16-bit key. Sub-values may collide with categories.
	AppearanceFlat AppearanceScheme = "flat"
)

// AppearanceSchemes lists the accepted scheme names.
var AppearanceSchemes = []AppearanceScheme{AppearanceComposite, AppearanceFlat}

// ParseAppearanceScheme returns the scheme with the given name. An empty
// name selects AppearanceComposite.
func ParseAppearanceScheme(name string) (AppearanceScheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AppearanceComposite, nil
	}
	for _, s := range AppearanceSchemes {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown appearance key scheme %q (valid: composite, flat)", name)
}

func appearanceValues(data any, scheme AppearanceScheme) *Dictionary {
	if scheme == "" {
		scheme = AppearanceComposite
	}

	d := NewDictionary()
	for _, r := range records(listAt(data, "appearance_values")) {
		catKey, ok := FormatKey(r["category"], ShortKeyWidth)
		if !ok {
			continue
		}
		name, _ := text(r["name"])
		if name != "" {
			d.Set(catKey, name)
		}

		subs, ok := asList(r["subcategory"])
		if !ok {
			continue
		}
		category, catIsHex := parseHex(r["category"])
		for _, sub := range records(subs) {
			subName, ok := text(sub["name"])
			if !ok {
				continue
			}

			var subKey string
			switch scheme {
			case AppearanceFlat:
				subKey, ok = FormatKey(sub["value"], ShortKeyWidth)
			default:
				var value uint64
				value, ok = parseHex(sub["value"])
				ok = ok && catIsHex
				subKey = fmt.Sprintf("%04x%02x", category, value)
			}
			if !ok {
				continue
			}
			d.Set(subKey, name+" - "+subName)
		}
	}
	return d
}
