// Package jsonpath provides tolerant dotted-path lookups into decoded JSON
// documents. Provider payloads omit fields inconsistently (a flight with no
// assigned gate simply has no "gate" key), so missing intermediate keys are
// never an error.
package jsonpath

import "strings"

// Get returns the value at the dotted path inside doc, or nil when any
// step is missing or the current value is not a JSON object.
func Get(doc interface{}, path string) interface{} {
	return GetDefault(doc, path, nil)
}

// GetDefault is Get with a caller-supplied fallback value.
func GetDefault(doc interface{}, path string, def interface{}) interface{} {
	current := doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return def
		}
		current, ok = obj[key]
		if !ok {
			return def
		}
	}
	if current == nil {
		return def
	}
	return current
}
