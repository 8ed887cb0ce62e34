package canonicaljson

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_DeterministicAcrossKeyOrder(t *testing.T) {
	t.Parallel()
	inA := []byte(`{"kind":"datatype","module":"coin","name":"Coin","type_args":[{"kind":"u64"}],"address":"0x2"}`)
	inB := []byte(`{"address":"0x2","type_args":[{"kind":"u64"}],"name":"Coin","module":"coin","kind":"datatype"}`)

	ca, err := Marshal(json.RawMessage(inA))
	require.NoError(t, err)
	cb, err := Marshal(json.RawMessage(inB))
	require.NoError(t, err)
	assert.Equal(t, string(ca), string(cb))
	assert.Equal(t, `{"address":"0x2","kind":"datatype","module":"coin","name":"Coin","type_args":[{"kind":"u64"}]}`, string(ca))
}

func TestMarshal_ControlCharShorthandEscapes(t *testing.T) {
	t.Parallel()
	out, err := Marshal(map[string]string{"tab": "\t", "nul": "\x00", "esc": "\x1b"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tab":"\t"`)
	assert.Contains(t, string(out), `\u0000`)
	assert.Contains(t, string(out), `\u001b`)
	assert.NotContains(t, string(out), `\u0009`)
}

func TestMarshal_NumberExponentPaddingNormalized(t *testing.T) {
	t.Parallel()
	out, err := Marshal(json.RawMessage(`{"n":1e-6,"m":1e-7,"z":-0}`))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"n":0.000001`)
	assert.Contains(t, string(out), `"m":1e-7`)
	assert.Contains(t, string(out), `"z":0`)
}

func TestMarshal_RejectsTrailingData(t *testing.T) {
	t.Parallel()
	_, err := Marshal(json.RawMessage(`{} {}`))
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	t.Parallel()
	assert.True(t, Equal(map[string]any{"index": 1}, map[string]any{"index": 1.0}))
	assert.True(t, Equal(map[string]any{"index": json.Number("2")}, map[string]any{"index": 2}))
	assert.False(t, Equal(map[string]any{"kind": "u64"}, map[string]any{"kind": "u128"}))
	assert.False(t, Equal([]any{"a", "b"}, []any{"b", "a"}))
}

func TestCanonicalize_SortsUnorderedMembersOnly(t *testing.T) {
	t.Parallel()
	in := map[string]any{
		"abilities": []any{"store", "copy", "key"},
		"type_args": []any{map[string]any{"kind": "u8"}, map[string]any{"kind": "bool"}},
	}
	out := Canonicalize(in, "abilities").(map[string]any)

	assert.Equal(t, []any{"copy", "key", "store"}, out["abilities"])
	assert.Equal(t, []any{map[string]any{"kind": "u8"}, map[string]any{"kind": "bool"}}, out["type_args"])
	// input untouched
	assert.Equal(t, []any{"store", "copy", "key"}, in["abilities"])
}

func TestCanonicalize_NestedUnorderedArrays(t *testing.T) {
	t.Parallel()
	a := map[string]any{"params": []any{map[string]any{"constraints": []any{"drop", "copy"}}}}
	b := map[string]any{"params": []any{map[string]any{"constraints": []any{"copy", "drop"}}}}

	ca := Canonicalize(a, "constraints")
	cb := Canonicalize(b, "constraints")
	assert.True(t, reflect.DeepEqual(ca, cb))
}

func TestCanonicalize_NumbersAgreeAcrossGoTypes(t *testing.T) {
	t.Parallel()
	values := []any{3, int64(3), uint64(3), 3.0, json.Number("3"), json.Number("3.0")}
	want := Canonicalize(values[0])
	for _, v := range values[1:] {
		assert.Equal(t, want, Canonicalize(v), "value %#v", v)
	}
	assert.Equal(t, json.Number("3"), want)
}

func TestCanonicalize_StructValuesRoundTrip(t *testing.T) {
	t.Parallel()
	type pair struct {
		Constraints []string `json:"constraints"`
		IsPhantom   bool     `json:"is_phantom"`
	}
	out := Canonicalize(pair{Constraints: []string{"store", "drop"}, IsPhantom: true}, "constraints")
	assert.Equal(t, map[string]any{"constraints": []any{"drop", "store"}, "is_phantom": true}, out)
}
