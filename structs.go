package smi

import (
	"fmt"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/normalize"
)

// compareStructs reconciles the structs of one module. The RPC side defines the required
// surface: structs only the bytecode declares are not reported.
func (c *comparison) compareStructs(module string, rpcMod, byteMod any) {
	rpcStructs, _ := normalize.GetObject(rpcMod, rpcKeys.Structs...)
	byteStructs, _ := normalize.GetObject(byteMod, bytecodeKeys.Structs...)
	names := sortedKeys(rpcStructs)
	base := modulePath(module) + "/structs/"

	for _, name := range names {
		if _, ok := byteStructs[name]; !ok {
			c.summary.StructMismatches++
			c.rec.Record(base+name, "struct missing in bytecode", rpcStructs[name], nil)
		}
	}

	for _, name := range names {
		byteStruct, ok := byteStructs[name]
		if !ok {
			continue
		}
		c.summary.StructsCompared++
		c.compareStruct(base+name, rpcStructs[name], byteStruct)
	}
}

func (c *comparison) compareStruct(path string, rs, bs any) {
	c.compareStructAbilities(path, rs, bs)
	c.compareStructTypeParams(path, rs, bs)
	c.compareFields(path, rs, bs)
}

func (c *comparison) compareStructAbilities(path string, rs, bs any) {
	rpcRaw := raw(rs, rpcKeys.Abilities)
	byteRaw := raw(bs, bytecodeKeys.Abilities)
	if normalize.AbilitiesFromValue(rpcRaw).Equal(normalize.AbilitiesFromValue(byteRaw)) {
		return
	}
	c.summary.StructMismatches++
	c.rec.Record(path+"/abilities", "abilities mismatch", rpcRaw, byteRaw)
}

// structTypeParam is the comparable view of a struct type parameter.
type structTypeParam struct {
	Constraints normalize.AbilitySet `json:"constraints"`
	IsPhantom   bool                 `json:"is_phantom"`
}

func (c *comparison) compareStructTypeParams(path string, rs, bs any) {
	rpcTPs := array(rs, rpcKeys.TypeParams)
	byteTPs := array(bs, bytecodeKeys.TypeParams)
	if len(rpcTPs) != len(byteTPs) {
		c.summary.StructMismatches++
		c.rec.Record(path+"/type_params",
			fmt.Sprintf("type param arity mismatch (rpc=%d bytecode=%d)", len(rpcTPs), len(byteTPs)),
			raw(rs, rpcKeys.TypeParams), raw(bs, bytecodeKeys.TypeParams))
		return
	}
	for i := range rpcTPs {
		r := structTypeParam{
			Constraints: normalize.AbilitiesFromValue(raw(rpcTPs[i], rpcKeys.Constraint)),
			IsPhantom:   flag(rpcTPs[i], rpcKeys.Phantom),
		}
		b := structTypeParam{
			Constraints: normalize.AbilitiesFromValue(raw(byteTPs[i], bytecodeKeys.Constraint)),
			IsPhantom:   flag(byteTPs[i], bytecodeKeys.Phantom),
		}
		if r.Constraints.Equal(b.Constraints) && r.IsPhantom == b.IsPhantom {
			continue
		}
		c.summary.StructMismatches++
		c.rec.Record(fmt.Sprintf("%s/type_params[%d]", path, i), "struct type param mismatch", r, b)
	}
}

// compareFields checks field count, then each position's name and type. Native bytecode structs
// expose no fields, so an RPC description with none is expected.
func (c *comparison) compareFields(path string, rs, bs any) {
	rpcFields := array(rs, rpcKeys.Fields)
	byteFields := array(bs, bytecodeKeys.Fields)

	if flag(bs, bytecodeKeys.Native) && len(rpcFields) == 0 {
		return
	}
	if len(rpcFields) != len(byteFields) {
		c.summary.StructMismatches++
		c.rec.Record(path+"/fields",
			fmt.Sprintf("field count mismatch (rpc=%d bytecode=%d)", len(rpcFields), len(byteFields)),
			raw(rs, rpcKeys.Fields), raw(bs, bytecodeKeys.Fields))
		return
	}

	for i := range rpcFields {
		rf, bf := rpcFields[i], byteFields[i]
		fieldPath := fmt.Sprintf("%s/fields[%d]", path, i)

		rname, _ := normalize.GetString(rf, rpcKeys.Name...)
		bname, _ := normalize.GetString(bf, bytecodeKeys.Name...)
		if rname != bname {
			c.summary.StructMismatches++
			c.rec.Record(fieldPath+"/name", "field name mismatch", raw(rf, rpcKeys.Name), raw(bf, bytecodeKeys.Name))
			continue
		}

		if c.compareType(fieldPath+"/type", "field type mismatch", raw(rf, rpcKeys.Type), raw(bf, bytecodeKeys.Type)) {
			c.summary.StructMismatches++
		}
	}
}
