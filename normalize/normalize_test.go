package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/canonicaljson"
)

const suiFramework = "0x0000000000000000000000000000000000000000000000000000000000000002"

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestAbilitiesFromValue(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want AbilitySet
	}{
		{"bytecode list", `["store","key"]`, AbilitySet{"key", "store"}},
		{"rpc object", `{"abilities":["Store","Key"]}`, AbilitySet{"key", "store"}},
		{"duplicates and case", `["Copy","copy","DROP"]`, AbilitySet{"copy", "drop"}},
		{"non-strings skipped", `["drop",1,null,""]`, AbilitySet{"drop"}},
		{"object without abilities", `{"other":["copy"]}`, AbilitySet{}},
		{"scalar", `"copy"`, AbilitySet{}},
		{"null", `null`, AbilitySet{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AbilitiesFromValue(decode(t, c.in))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestAbilitySet(t *testing.T) {
	t.Parallel()
	rpc := AbilitiesFromValue(decode(t, `{"abilities":["Key","Store"]}`))
	bc := AbilitiesFromValue(decode(t, `["store","key"]`))
	assert.True(t, rpc.Equal(bc))
	assert.True(t, rpc.Has("Key"))
	assert.False(t, rpc.Has(AbilityCopy))

	b, err := json.Marshal(AbilitySet(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestRPCVisibilityToString(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{"Public": "public", "Private": "private", "Friend": "friend", "public": "public"} {
		got, ok := RPCVisibilityToString(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []any{"Package", "", nil, 1, map[string]any{"Public": nil}} {
		_, ok := RPCVisibilityToString(in)
		assert.False(t, ok, "%#v", in)
	}
}

func TestGetObject_FirstMatchWins(t *testing.T) {
	t.Parallel()
	mod := decode(t, `{"exposedFunctions":{"a":{}},"exposed_functions":{"b":{}}}`)
	got, ok := GetObject(mod, "exposedFunctions", "exposed_functions")
	require.True(t, ok)
	assert.Contains(t, got, "a")

	mod = decode(t, `{"exposed_functions":{"b":{}}}`)
	got, ok = GetObject(mod, "exposedFunctions", "exposed_functions")
	require.True(t, ok)
	assert.Contains(t, got, "b")

	// a non-object under the preferred key falls through to the alias
	mod = decode(t, `{"exposedFunctions":[],"exposed_functions":{"c":{}}}`)
	got, ok = GetObject(mod, "exposedFunctions", "exposed_functions")
	require.True(t, ok)
	assert.Contains(t, got, "c")

	_, ok = GetObject("not an object", "structs")
	assert.False(t, ok)
	_, ok = GetObject(decode(t, `{}`), "structs")
	assert.False(t, ok)
}

func TestScalarLookups(t *testing.T) {
	t.Parallel()
	v := decode(t, `{"isEntry":true,"visibility":"Public","params":[1],"n":null}`)

	b, ok := GetBool(v, "is_entry", "isEntry")
	assert.True(t, ok)
	assert.True(t, b)
	_, ok = GetBool(v, "visibility")
	assert.False(t, ok)

	s, ok := GetString(v, "visibility")
	assert.True(t, ok)
	assert.Equal(t, "Public", s)

	arr, ok := GetArray(v, "params")
	assert.True(t, ok)
	assert.Len(t, arr, 1)

	raw, ok := Get(v, "missing", "n")
	assert.True(t, ok)
	assert.Nil(t, raw)
}

func TestRPCTypeToCanonical(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"primitive", `"U64"`, `{"kind":"u64"}`},
		{"address", `"Address"`, `{"kind":"address"}`},
		{"vector", `{"Vector":"U8"}`, `{"kind":"vector","type":{"kind":"u8"}}`},
		{"ref", `{"Reference":{"TypeParameter":0}}`, `{"kind":"ref","mutable":false,"to":{"kind":"type_param","index":0}}`},
		{"mut ref", `{"MutableReference":"Bool"}`, `{"kind":"ref","mutable":true,"to":{"kind":"bool"}}`},
		{
			"struct",
			`{"Struct":{"address":"0x2","module":"coin","name":"Coin","typeArguments":[{"Struct":{"address":"0x2","module":"sui","name":"SUI","typeArguments":[]}}]}}`,
			`{"kind":"datatype","address":"` + suiFramework + `","module":"coin","name":"Coin","type_args":[{"kind":"datatype","address":"` + suiFramework + `","module":"sui","name":"SUI","type_args":[]}]}`,
		},
		{
			"struct snake alias, no args",
			`{"Struct":{"address":"0x2","module":"object","name":"UID","type_arguments":[]}}`,
			`{"kind":"datatype","address":"` + suiFramework + `","module":"object","name":"UID","type_args":[]}`,
		},
		{
			"struct args absent",
			`{"Struct":{"address":"0x2","module":"object","name":"ID"}}`,
			`{"kind":"datatype","address":"` + suiFramework + `","module":"object","name":"ID","type_args":[]}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := RPCTypeToCanonical(decode(t, c.in))
			require.NoError(t, err)
			assert.True(t, canonicaljson.Equal(got, decode(t, c.want)), "got %v", got)
		})
	}
}

func TestRPCTypeToCanonical_Errors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in       string
		wantPath string
	}{
		{`"U512"`, "<root>"},
		{`42`, "<root>"},
		{`{"Vector":"U512"}`, ".Vector"},
		{`{"Vector":"U8","Reference":"U8"}`, "<root>"},
		{`{"Tuple":["U8"]}`, "<root>"},
		{`{"TypeParameter":-1}`, ".TypeParameter"},
		{`{"TypeParameter":1.5}`, ".TypeParameter"},
		{`{"Struct":{"address":"0xzz","module":"m","name":"S"}}`, ".Struct.address"},
		{`{"Struct":{"address":"0x2","module":"","name":"S"}}`, ".Struct.module"},
		{`{"Struct":{"address":"0x2","module":"m","name":"S","typeArguments":["Nope"]}}`, ".Struct.typeArguments[0]"},
		{`{"Struct":{"address":"0x2","module":"m","name":"S","typeArguments":{}}}`, ".Struct.typeArguments"},
	}
	for _, c := range cases {
		_, err := RPCTypeToCanonical(decode(t, c.in))
		var te *TypeError
		require.True(t, errors.As(err, &te), "input %s: got %v", c.in, err)
		assert.Equal(t, SchemaRPC, te.Schema)
		assert.Equal(t, c.wantPath, te.Path, "input %s", c.in)
		assert.Contains(t, err.Error(), c.wantPath)
	}
}

func TestBytecodeTypeToCanonical(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"primitive", `{"kind":"u128"}`, `{"kind":"u128"}`},
		{"vector", `{"kind":"vector","type":{"kind":"u8"}}`, `{"kind":"vector","type":{"kind":"u8"}}`},
		{"ref default immutable", `{"kind":"ref","to":{"kind":"signer"}}`, `{"kind":"ref","mutable":false,"to":{"kind":"signer"}}`},
		{"type param", `{"kind":"type_param","index":3}`, `{"kind":"type_param","index":3}`},
		{
			"datatype long address",
			`{"kind":"datatype","address":"` + suiFramework + `","module":"tx_context","name":"TxContext","type_args":[]}`,
			`{"kind":"datatype","address":"` + suiFramework + `","module":"tx_context","name":"TxContext","type_args":[]}`,
		},
		{
			"datatype short address, args absent",
			`{"kind":"datatype","address":"0x2","module":"clock","name":"Clock"}`,
			`{"kind":"datatype","address":"` + suiFramework + `","module":"clock","name":"Clock","type_args":[]}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := BytecodeTypeToCanonical(decode(t, c.in))
			require.NoError(t, err)
			assert.True(t, canonicaljson.Equal(got, decode(t, c.want)), "got %v", got)
		})
	}
}

func TestBytecodeTypeToCanonical_Errors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in       string
		wantPath string
	}{
		{`"u64"`, "<root>"},
		{`{"type":"u64"}`, "<root>"},
		{`{"kind":"u512"}`, ".kind"},
		{`{"kind":"vector"}`, ".type"},
		{`{"kind":"ref","mutable":"yes","to":{"kind":"u8"}}`, ".mutable"},
		{`{"kind":"type_param","index":"0"}`, ".index"},
		{`{"kind":"datatype","address":"0x2","module":"m","name":"S","type_args":[{"kind":"nope"}]}`, ".type_args[0].kind"},
	}
	for _, c := range cases {
		_, err := BytecodeTypeToCanonical(decode(t, c.in))
		var te *TypeError
		require.True(t, errors.As(err, &te), "input %s: got %v", c.in, err)
		assert.Equal(t, SchemaBytecode, te.Schema)
		assert.Equal(t, c.wantPath, te.Path, "input %s", c.in)
	}
}

func TestBothSchemasAgreeAfterCanonicalization(t *testing.T) {
	t.Parallel()
	rpc, err := RPCTypeToCanonical(decode(t, `{"MutableReference":{"Struct":{"address":"0x2","module":"tx_context","name":"TxContext","typeArguments":[]}}}`))
	require.NoError(t, err)
	bc, err := BytecodeTypeToCanonical(decode(t, `{"kind":"ref","mutable":true,"to":{"kind":"datatype","address":"`+suiFramework+`","module":"tx_context","name":"TxContext","type_args":[]}}`))
	require.NoError(t, err)

	assert.Equal(t, CanonicalizeValue(rpc), CanonicalizeValue(bc))
}

func TestTypeParamIndexAcceptsAnyNumericDecoding(t *testing.T) {
	t.Parallel()
	for _, v := range []any{2, int64(2), uint64(2), 2.0, json.Number("2")} {
		idx, err := typeParamIndex(v)
		require.NoError(t, err, "%#v", v)
		assert.Equal(t, 2, idx)
	}
	_, err := typeParamIndex(json.Number("abc"))
	assert.Error(t, err)
}

func TestTypeErrorSnippetTruncated(t *testing.T) {
	t.Parallel()
	big := map[string]any{}
	for i := 0; i < 50; i++ {
		big[string(rune('a'+i%26))+string(rune('a'+i/26))] = "xxxxxxxxxx"
	}
	_, err := RPCTypeToCanonical(big)
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 200)
}
