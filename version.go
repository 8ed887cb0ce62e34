package smi

import (
	"encoding/json"
	"fmt"
	"math"
)

// Bytecode interface schema versions this module understands.
const (
	MinSupportedSchemaVersion = 1
	MaxTestedSchemaVersion    = 1
)

// SupportedSchemaRange returns the minimum and maximum bytecode schema versions supported.
func SupportedSchemaRange() (min, max int) {
	return MinSupportedSchemaVersion, MaxTestedSchemaVersion
}

// IsSupportedSchemaVersion reports whether v is within the supported range.
func IsSupportedSchemaVersion(v int) bool {
	return v >= MinSupportedSchemaVersion && v <= MaxTestedSchemaVersion
}

// SchemaVersion reads the top-level schema_version of a decoded bytecode interface document.
func SchemaVersion(doc any) (int, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("schema_version: document is not an object")
	}
	v, ok := m["schema_version"]
	if !ok {
		return 0, fmt.Errorf("schema_version: required")
	}
	return parseSchemaVersion(v)
}

func parseSchemaVersion(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && n >= 0 && n <= math.MaxInt32 {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil && i >= 0 && i <= math.MaxInt32 {
			return int(i), nil
		}
	}
	return 0, fmt.Errorf("schema_version: invalid value %v", v)
}
