package normalize

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"
)

// Move abilities.
const (
	AbilityCopy  = "copy"
	AbilityDrop  = "drop"
	AbilityStore = "store"
	AbilityKey   = "key"
)

// AbilitySet is a sorted, duplicate-free list of lowercase ability tokens.
// The zero value is the empty set.
type AbilitySet []string

// Equal reports whether both sets hold the same tokens.
func (s AbilitySet) Equal(o AbilitySet) bool {
	return slices.Equal(s, o)
}

// Has reports whether the set contains ability a (case-insensitive).
func (s AbilitySet) Has(a string) bool {
	_, ok := slices.BinarySearch(s, strings.ToLower(a))
	return ok
}

// MarshalJSON always encodes an array, never null.
func (s AbilitySet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// AbilitiesFromValue normalizes either schema's ability list:
//
//	["store", "key"]                 bytecode struct abilities, type param constraints
//	{"abilities": ["Store", "Key"]}  RPC struct abilities, type param constraints
//
// Tokens are lowercased, deduplicated and sorted. Non-string entries are skipped;
// any other shape is the empty set.
func AbilitiesFromValue(v any) AbilitySet {
	if m, ok := asMap(v); ok {
		inner, ok := m["abilities"]
		if !ok {
			return AbilitySet{}
		}
		v = inner
	}
	arr, ok := asSlice(v)
	if !ok {
		return AbilitySet{}
	}
	set := map[string]struct{}{}
	for _, it := range arr {
		s, ok := it.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	out := make(AbilitySet, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
