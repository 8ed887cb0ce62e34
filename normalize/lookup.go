package normalize

import (
	"strings"
)

// Get returns the value of the first key present in v. v must be a JSON object.
func Get(v any, keys ...string) (any, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	for _, k := range keys {
		if x, ok := m[k]; ok {
			return x, true
		}
	}
	return nil, false
}

// GetObject returns the first value among keys that is a JSON object.
// Keys are aliases for one concept, listed in order of preference.
func GetObject(v any, keys ...string) (map[string]any, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	for _, k := range keys {
		if x, ok := asMap(m[k]); ok {
			return x, true
		}
	}
	return nil, false
}

// GetArray returns the first value among keys that is a JSON array.
func GetArray(v any, keys ...string) ([]any, bool) {
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	for _, k := range keys {
		if x, ok := asSlice(m[k]); ok {
			return x, true
		}
	}
	return nil, false
}

// GetBool returns the first value among keys that is a JSON boolean.
func GetBool(v any, keys ...string) (bool, bool) {
	m, ok := asMap(v)
	if !ok {
		return false, false
	}
	for _, k := range keys {
		if x, ok := m[k].(bool); ok {
			return x, true
		}
	}
	return false, false
}

// GetString returns the first value among keys that is a JSON string.
func GetString(v any, keys ...string) (string, bool) {
	m, ok := asMap(v)
	if !ok {
		return "", false
	}
	for _, k := range keys {
		if x, ok := m[k].(string); ok {
			return x, true
		}
	}
	return "", false
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func pathOrRoot(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func ptrJoin(prefix, next string) string {
	if next == "" {
		return prefix
	}
	if strings.HasPrefix(next, "[") || strings.HasPrefix(next, ".") {
		return prefix + next
	}
	return prefix + "." + next
}
