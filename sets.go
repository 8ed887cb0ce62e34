package smi

import (
	"sort"
)

// SetDiff is the result of reconciling two name collections.
type SetDiff struct {
	LeftCount      int      `json:"left_count"`
	RightCount     int      `json:"right_count"`
	MissingInRight []string `json:"missing_in_right"`
	ExtraInRight   []string `json:"extra_in_right"`
}

// Equal reports whether both sides hold the same names.
func (d SetDiff) Equal() bool {
	return len(d.MissingInRight) == 0 && len(d.ExtraInRight) == 0
}

// ModuleSetDiff returns the names present only in left and only in right, each sorted and
// deduplicated. Counts are the input lengths. Comparison is exact and case-sensitive.
func ModuleSetDiff(left, right []string) SetDiff {
	return SetDiff{
		LeftCount:      len(left),
		RightCount:     len(right),
		MissingInRight: difference(left, right),
		ExtraInRight:   difference(right, left),
	}
}

// ModuleCheck compares the module names an RPC node reports for a package against the
// modules present in the package's BCS bytes.
type ModuleCheck struct {
	NormalizedModules int      `json:"normalized_modules"`
	BCSModules        int      `json:"bcs_modules"`
	MissingInBCS      []string `json:"missing_in_bcs"`
	ExtraInBCS        []string `json:"extra_in_bcs"`
}

// BytecodeModuleCheck reconciles RPC-normalized module names against BCS module names.
func BytecodeModuleCheck(normalized, bcs []string) ModuleCheck {
	d := ModuleSetDiff(normalized, bcs)
	return ModuleCheck{
		NormalizedModules: d.LeftCount,
		BCSModules:        d.RightCount,
		MissingInBCS:      d.MissingInRight,
		ExtraInBCS:        d.ExtraInRight,
	}
}

// difference returns the sorted, unique elements of a not in b.
func difference(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, s := range b {
		in[s] = struct{}{}
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, s := range a {
		if _, ok := in[s]; ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
