package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/canonicaljson"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/typetag"
)

// Canonical kinds.
const (
	KindVector    = "vector"
	KindRef       = "ref"
	KindDatatype  = "datatype"
	KindTypeParam = "type_param"
)

var primitives = map[string]struct{}{
	"bool":    {},
	"u8":      {},
	"u16":     {},
	"u32":     {},
	"u64":     {},
	"u128":    {},
	"u256":    {},
	"address": {},
	"signer":  {},
}

// unorderedMembers lists canonical object members whose arrays are sets.
var unorderedMembers = []string{"abilities", "constraints"}

// CanonicalizeValue deep-sorts set-like members and unifies numbers so that equal
// canonical values compare equal regardless of production order.
func CanonicalizeValue(v any) any {
	return canonicaljson.Canonicalize(v, unorderedMembers...)
}

// RPCTypeToCanonical converts an RPC type expression into the canonical form.
//
//	"U64"                                    -> {"kind":"u64"}
//	{"Vector": T}                            -> {"kind":"vector","type":T'}
//	{"Reference": T} / {"MutableReference": T} -> {"kind":"ref","mutable":b,"to":T'}
//	{"TypeParameter": 0}                     -> {"kind":"type_param","index":0}
//	{"Struct": {"address","module","name","typeArguments"}}
//	                                         -> {"kind":"datatype",...,"type_args":[...]}
func RPCTypeToCanonical(v any) (map[string]any, error) {
	return rpcType(v, "")
}

func rpcType(v any, path string) (map[string]any, error) {
	switch x := v.(type) {
	case string:
		k := strings.ToLower(x)
		if _, ok := primitives[k]; !ok {
			return nil, typeErrorf(SchemaRPC, path, "unrecognized primitive %q", x)
		}
		return map[string]any{"kind": k}, nil
	case map[string]any:
		if len(x) != 1 {
			return nil, typeErrorf(SchemaRPC, path, "expected single-variant object, got %s", snippet(x))
		}
		for variant, inner := range x {
			p := ptrJoin(path, variant)
			switch variant {
			case "Vector":
				elem, err := rpcType(inner, p)
				if err != nil {
					return nil, err
				}
				return map[string]any{"kind": KindVector, "type": elem}, nil
			case "Reference", "MutableReference":
				to, err := rpcType(inner, p)
				if err != nil {
					return nil, err
				}
				return map[string]any{"kind": KindRef, "mutable": variant == "MutableReference", "to": to}, nil
			case "TypeParameter":
				idx, err := typeParamIndex(inner)
				if err != nil {
					return nil, typeErrorf(SchemaRPC, p, "%v", err)
				}
				return map[string]any{"kind": KindTypeParam, "index": idx}, nil
			case "Struct":
				return rpcStruct(inner, p)
			default:
				return nil, typeErrorf(SchemaRPC, path, "unrecognized variant %q", variant)
			}
		}
	}
	return nil, typeErrorf(SchemaRPC, path, "unrecognized type expression %s", snippet(v))
}

func rpcStruct(v any, path string) (map[string]any, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, typeErrorf(SchemaRPC, path, "struct must be an object, got %s", snippet(v))
	}
	out, err := datatypeHeader(SchemaRPC, m, path)
	if err != nil {
		return nil, err
	}
	var args []any
	if raw, present := Get(m, "typeArguments", "type_arguments"); present {
		args, ok = asSlice(raw)
		if !ok {
			return nil, typeErrorf(SchemaRPC, ptrJoin(path, "typeArguments"), "must be an array")
		}
	}
	targs := make([]any, 0, len(args))
	for i, a := range args {
		c, err := rpcType(a, ptrJoin(path, fmt.Sprintf("typeArguments[%d]", i)))
		if err != nil {
			return nil, err
		}
		targs = append(targs, c)
	}
	out["type_args"] = targs
	return out, nil
}

// BytecodeTypeToCanonical validates a bytecode type expression and returns it in canonical form.
// The bytecode decoder already emits the canonical shape; this normalizes addresses to long form,
// fills absent type_args/mutable, and rejects anything else.
func BytecodeTypeToCanonical(v any) (map[string]any, error) {
	return bytecodeType(v, "")
}

func bytecodeType(v any, path string) (map[string]any, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, typeErrorf(SchemaBytecode, path, "type must be an object, got %s", snippet(v))
	}
	kind, ok := m["kind"].(string)
	if !ok {
		return nil, typeErrorf(SchemaBytecode, path, "missing kind in %s", snippet(v))
	}
	if _, ok := primitives[kind]; ok {
		return map[string]any{"kind": kind}, nil
	}
	switch kind {
	case KindVector:
		elem, err := bytecodeType(m["type"], ptrJoin(path, "type"))
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindVector, "type": elem}, nil
	case KindRef:
		mutable := false
		if raw, present := m["mutable"]; present {
			b, ok := raw.(bool)
			if !ok {
				return nil, typeErrorf(SchemaBytecode, ptrJoin(path, "mutable"), "must be a boolean")
			}
			mutable = b
		}
		to, err := bytecodeType(m["to"], ptrJoin(path, "to"))
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindRef, "mutable": mutable, "to": to}, nil
	case KindTypeParam:
		idx, err := typeParamIndex(m["index"])
		if err != nil {
			return nil, typeErrorf(SchemaBytecode, ptrJoin(path, "index"), "%v", err)
		}
		return map[string]any{"kind": KindTypeParam, "index": idx}, nil
	case KindDatatype:
		out, err := datatypeHeader(SchemaBytecode, m, path)
		if err != nil {
			return nil, err
		}
		var args []any
		if raw, present := m["type_args"]; present {
			args, ok = asSlice(raw)
			if !ok {
				return nil, typeErrorf(SchemaBytecode, ptrJoin(path, "type_args"), "must be an array")
			}
		}
		targs := make([]any, 0, len(args))
		for i, a := range args {
			c, err := bytecodeType(a, ptrJoin(path, fmt.Sprintf("type_args[%d]", i)))
			if err != nil {
				return nil, err
			}
			targs = append(targs, c)
		}
		out["type_args"] = targs
		return out, nil
	default:
		return nil, typeErrorf(SchemaBytecode, ptrJoin(path, "kind"), "unrecognized kind %q", kind)
	}
}

// datatypeHeader reads address/module/name shared by both struct encodings.
func datatypeHeader(schema Schema, m map[string]any, path string) (map[string]any, error) {
	addr, ok := m["address"].(string)
	if !ok {
		return nil, typeErrorf(schema, ptrJoin(path, "address"), "must be a string")
	}
	long, err := typetag.NormalizeAddress(addr)
	if err != nil {
		return nil, typeErrorf(schema, ptrJoin(path, "address"), "%v", err)
	}
	mod, ok := m["module"].(string)
	if !ok || mod == "" {
		return nil, typeErrorf(schema, ptrJoin(path, "module"), "must be a non-empty string")
	}
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return nil, typeErrorf(schema, ptrJoin(path, "name"), "must be a non-empty string")
	}
	return map[string]any{
		"kind":    KindDatatype,
		"address": long,
		"module":  mod,
		"name":    name,
	}, nil
}

// typeParamIndex accepts any numeric decoding of a non-negative integer.
func typeParamIndex(v any) (int, error) {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("type parameter index %q is not a number", x.String())
		}
		f = n
	default:
		return 0, fmt.Errorf("type parameter index must be a number, got %s", snippet(v))
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxUint16 {
		return 0, fmt.Errorf("type parameter index %v is not a valid index", f)
	}
	return int(f), nil
}
