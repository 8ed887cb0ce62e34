package canonicaljson

import (
	"encoding/json"
	"sort"
)

// Canonicalize returns a deep copy of v in which
//   - every number is a json.Number in JCS form (so 3, 3.0, int(3) and json.Number("3") agree),
//   - arrays stored under any of the unordered member names are sorted by their JCS encoding,
//   - values that are not plain decoded JSON (structs, typed slices) are round-tripped through
//     encoding/json first.
//
// The input is never modified.
func Canonicalize(v any, unordered ...string) any {
	set := make(map[string]struct{}, len(unordered))
	for _, k := range unordered {
		set[k] = struct{}{}
	}
	return canonicalize(v, set)
}

func canonicalize(v any, unordered map[string]struct{}) any {
	switch x := v.(type) {
	case nil, bool, string:
		return x
	case json.Number:
		return number(x.String(), x)
	case float64:
		return floatNumber(x)
	case float32:
		return floatNumber(float64(x))
	case int:
		return floatNumber(float64(x))
	case int64:
		return floatNumber(float64(x))
	case uint64:
		return floatNumber(float64(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			c := canonicalize(item, unordered)
			if _, ok := unordered[k]; ok {
				if arr, ok := c.([]any); ok {
					sortByEncoding(arr)
				}
			}
			out[k] = c
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = canonicalize(item, unordered)
		}
		return out
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return x
		}
		decoded, err := decode(b)
		if err != nil {
			return x
		}
		return canonicalize(decoded, unordered)
	}
}

func number(raw string, fallback any) any {
	s, err := formatNumber(raw)
	if err != nil {
		return fallback
	}
	return json.Number(s)
}

func floatNumber(f float64) any {
	s, err := formatFloat64(f)
	if err != nil {
		return f
	}
	return json.Number(s)
}

func sortByEncoding(arr []any) {
	keys := make([]string, len(arr))
	for i, item := range arr {
		s, err := String(item)
		if err != nil {
			s = "\uffff"
		}
		keys[i] = s
	}
	idx := make([]int, len(arr))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return keys[idx[i]] < keys[idx[j]] })
	sorted := make([]any, len(arr))
	for i, j := range idx {
		sorted[i] = arr[j]
	}
	copy(arr, sorted)
}
