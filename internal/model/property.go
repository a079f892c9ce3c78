package model

import "sort"

// UnknownPropertyName is the display name for property codes the directory
// does not know about.
const UnknownPropertyName = "Unknown Property"

// builtinProperties maps property codes to display names.
var builtinProperties = map[string]string{
	"NY198": "Comfort Inn & Suites",
	"NY345": "Quality Inn & Suites",
}

// Property pairs a property code with its display name.
type Property struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PropertyDirectory resolves property codes to display names. Entries from
// config extend (and may override) the built-in table.
type PropertyDirectory struct {
	names map[string]string
}

// NewPropertyDirectory builds a directory from the built-in table plus
// extra entries.
func NewPropertyDirectory(extra map[string]string) *PropertyDirectory {
	names := make(map[string]string, len(builtinProperties)+len(extra))
	for code, name := range builtinProperties {
		names[code] = name
	}
	for code, name := range extra {
		if code == "" || name == "" {
			continue
		}
		names[code] = name
	}
	return &PropertyDirectory{names: names}
}

// Name returns the display name for a code, or UnknownPropertyName.
func (d *PropertyDirectory) Name(code string) string {
	if name, ok := d.names[code]; ok {
		return name
	}
	return UnknownPropertyName
}

// All returns every known property sorted by code.
func (d *PropertyDirectory) All() []Property {
	out := make([]Property, 0, len(d.names))
	for code, name := range d.names {
		out = append(out, Property{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
