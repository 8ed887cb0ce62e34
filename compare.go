package smi

import (
	"github.com/Evan-Kim2028/sui-move-interface-extractor/canonicaljson"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/normalize"
)

// schemaKeys names where each schema keeps a concept. Every entry is an alias list: the first
// key present wins, so a producer that renames a field gets a new alias, not a new code path.
type schemaKeys struct {
	Modules    []string
	Structs    []string
	Functions  []string
	Abilities  []string
	TypeParams []string
	Constraint []string
	Phantom    []string
	Native     []string
	Fields     []string
	Name       []string
	Type       []string
	Visibility []string
	Entry      []string
	Params     []string
	Returns    []string
}

var rpcKeys = schemaKeys{
	Modules:    []string{"modules"},
	Structs:    []string{"structs"},
	Functions:  []string{"exposedFunctions", "exposed_functions"},
	Abilities:  []string{"abilities"},
	TypeParams: []string{"typeParameters"},
	Constraint: []string{"constraints"},
	Phantom:    []string{"isPhantom"},
	Fields:     []string{"fields"},
	Name:       []string{"name"},
	Type:       []string{"type"},
	Visibility: []string{"visibility"},
	Entry:      []string{"isEntry"},
	Params:     []string{"parameters"},
	Returns:    []string{"return"},
}

var bytecodeKeys = schemaKeys{
	Modules:    []string{"modules"},
	Structs:    []string{"structs"},
	Functions:  []string{"functions"},
	Abilities:  []string{"abilities"},
	TypeParams: []string{"type_params"},
	Constraint: []string{"constraints"},
	Phantom:    []string{"is_phantom"},
	Native:     []string{"is_native"},
	Fields:     []string{"fields"},
	Name:       []string{"name"},
	Type:       []string{"type"},
	Visibility: []string{"visibility"},
	Entry:      []string{"is_entry"},
	Params:     []string{"params"},
	Returns:    []string{"returns"},
}

// Compare reconciles an RPC-reported package interface against the interface decoded from the
// package bytecode. Both arguments are decoded JSON (map[string]any trees); neither is modified.
//
// Compare never fails. Missing keys read as empty, disagreements and unparseable type expressions
// become mismatch records, and the summary always reflects everything that was examined. The
// mismatch list is ordered by discovery: module-level first, then per module (lexicographic)
// struct-level, then function-level.
func Compare(rpc, bytecode any, opts ...CompareOption) (Summary, []Mismatch) {
	o := DefaultCompareOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return CompareWithOptions(rpc, bytecode, o)
}

// CompareWithOptions is Compare with an explicit options value.
func CompareWithOptions(rpc, bytecode any, o CompareOptions) (Summary, []Mismatch) {
	c := &comparison{rec: NewMismatchRecorder(o.MaxMismatches, o.IncludeValues)}
	c.run(rpc, bytecode)
	c.summary.MismatchesTotal = c.rec.Total()
	c.summary.MismatchesRecorded = len(c.rec.Mismatches())
	return c.summary, c.rec.Mismatches()
}

// comparison is the state of one Compare call.
type comparison struct {
	rec     *MismatchRecorder
	summary Summary
}

func (c *comparison) run(rpc, bytecode any) {
	rpcModules, _ := normalize.GetObject(rpc, rpcKeys.Modules...)
	byteModules, _ := normalize.GetObject(bytecode, bytecodeKeys.Modules...)

	diff := ModuleSetDiff(sortedKeys(rpcModules), sortedKeys(byteModules))
	c.summary.ModulesMissingInBytecode = len(diff.MissingInRight)
	c.summary.ModulesExtraInBytecode = len(diff.ExtraInRight)
	for _, m := range diff.MissingInRight {
		c.rec.Record(modulePath(m), "module missing in bytecode", rpcModules[m], nil)
	}
	for _, m := range diff.ExtraInRight {
		c.rec.Record(modulePath(m), "extra module in bytecode", nil, byteModules[m])
	}

	for _, m := range sortedKeys(rpcModules) {
		byteMod, ok := byteModules[m]
		if !ok {
			continue
		}
		c.summary.ModulesCompared++
		rpcMod := rpcModules[m]
		c.compareStructs(m, rpcMod, byteMod)
		c.compareFunctions(m, rpcMod, byteMod)
	}
}

// compareType canonicalizes both sides of one type position and records a mismatch when they
// differ or either side cannot be parsed. It reports whether a mismatch was recorded.
// A parse failure replaces the equality check; the RPC side is reported first.
func (c *comparison) compareType(path, reason string, rpcRaw, byteRaw any) bool {
	r, rerr := normalize.RPCTypeToCanonical(rpcRaw)
	b, berr := normalize.BytecodeTypeToCanonical(byteRaw)
	switch {
	case rerr != nil:
		c.rec.Record(path, "rpc type parse error: "+rerr.Error(), rpcRaw, nil)
		return true
	case berr != nil:
		c.rec.Record(path, "bytecode type parse error: "+berr.Error(), nil, byteRaw)
		return true
	}
	rc := normalize.CanonicalizeValue(r)
	bc := normalize.CanonicalizeValue(b)
	if canonicaljson.Equal(rc, bc) {
		return false
	}
	c.rec.Record(path, reason, rc, bc)
	return true
}

func modulePath(module string) string {
	return "modules/" + module
}

// raw returns the value stored under keys, or nil.
func raw(v any, keys []string) any {
	x, _ := normalize.Get(v, keys...)
	return x
}

// array returns the array stored under keys; anything else reads as empty.
func array(v any, keys []string) []any {
	x, _ := normalize.GetArray(v, keys...)
	return x
}

// flag returns the boolean stored under keys; anything else reads as false.
func flag(v any, keys []string) bool {
	x, _ := normalize.GetBool(v, keys...)
	return x
}
