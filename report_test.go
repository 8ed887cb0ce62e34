package smi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Headline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name:   "match",
			report: Report{PackageID: "0x2", Summary: Summary{ModulesCompared: 2, StructsCompared: 3, FunctionsCompared: 4}},
			want:   "0x2: interfaces match (2 modules, 3 structs, 4 functions compared)",
		},
		{
			name:   "single issue",
			report: Report{Summary: Summary{MismatchesTotal: 1}, Mismatches: []Mismatch{{}}},
			want:   "package: 1 issue found",
		},
		{
			name:   "truncated",
			report: Report{PackageID: "0xabc", Summary: Summary{MismatchesTotal: 7}, Mismatches: []Mismatch{{}, {}}},
			want:   "0xabc: 7 issues found, showing first 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.report.Headline())
		})
	}
}

func TestCompareReport(t *testing.T) {
	t.Parallel()
	rpc, bc := coinPair(t)
	fields := at(t, bc, "modules", "coin", "structs", "Coin")["fields"].([]any)
	fields[1].(map[string]any)["type"] = map[string]any{"kind": "u128"}

	r := CompareReport("0x2", rpc, bc, WithMaxMismatches(5))

	assert.False(t, r.OK())
	assert.False(t, r.Truncated())
	require.Len(t, r.Mismatches, 1)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "0x2", decoded["package_id"])
	assert.Contains(t, decoded["summary"], "mismatches_total")
	assert.Contains(t, decoded["summary"], "modules_missing_in_bytecode")
}

func TestReport_WriteText(t *testing.T) {
	t.Parallel()
	rpc, bc := coinPair(t)
	at(t, rpc, "modules", "coin", "exposedFunctions", "value")["parameters"] = []any{
		map[string]any{"MutableReference": map[string]any{"Struct": map[string]any{
			"address": "0x2", "module": "coin", "name": "Coin",
			"typeArguments": []any{map[string]any{"TypeParameter": 0}},
		}}},
	}
	at(t, bc, "modules", "coin", "structs", "Coin")["abilities"] = []any{"key"}

	var sb strings.Builder
	require.NoError(t, CompareReport("0x2", rpc, bc).WriteText(&sb))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "0x2: 2 issues found\n"), out)
	assert.Contains(t, out, "- modules/coin/functions/value/params[0]: param type mismatch\n")
	assert.Contains(t, out, "rpc:      &mut 0x2::coin::Coin<T0>\n")
	assert.Contains(t, out, "bytecode: &0x2::coin::Coin<T0>\n")
	assert.Contains(t, out, `rpc:      {"abilities":["Store","Key"]}`)
	assert.Contains(t, out, `bytecode: ["key"]`)
}
