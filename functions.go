package smi

import (
	"fmt"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/normalize"
)

const (
	visibilityUnknown = "<unknown>"
	visibilityMissing = "<missing>"
)

// compareFunctions reconciles the RPC-exposed functions of one module against the bytecode.
// Each check on a function runs independently, so one function can produce several records.
func (c *comparison) compareFunctions(module string, rpcMod, byteMod any) {
	rpcFuns, _ := normalize.GetObject(rpcMod, rpcKeys.Functions...)
	byteFuns, _ := normalize.GetObject(byteMod, bytecodeKeys.Functions...)
	base := modulePath(module) + "/functions/"

	for _, name := range sortedKeys(rpcFuns) {
		rf := rpcFuns[name]
		bf, ok := byteFuns[name]
		if !ok {
			c.summary.FunctionMismatches++
			c.rec.Record(base+name, "function missing in bytecode", rf, nil)
			continue
		}
		c.summary.FunctionsCompared++

		path := base + name
		c.compareVisibility(path, rf, bf)
		c.compareEntry(path, rf, bf)
		c.compareFunctionTypeParams(path, rf, bf)
		c.compareTypeList(path+"/params", "param", array(rf, rpcKeys.Params), array(bf, bytecodeKeys.Params),
			raw(rf, rpcKeys.Params), raw(bf, bytecodeKeys.Params))
		c.compareTypeList(path+"/returns", "return", array(rf, rpcKeys.Returns), array(bf, bytecodeKeys.Returns),
			raw(rf, rpcKeys.Returns), raw(bf, bytecodeKeys.Returns))
	}
}

func (c *comparison) compareVisibility(path string, rf, bf any) {
	rpcRaw := raw(rf, rpcKeys.Visibility)
	byteRaw := raw(bf, bytecodeKeys.Visibility)

	rv, ok := normalize.RPCVisibilityToString(rpcRaw)
	if !ok {
		rv = visibilityUnknown
	}
	bv, ok := byteRaw.(string)
	if !ok {
		bv = visibilityMissing
	}
	if rv == bv {
		return
	}
	c.summary.FunctionMismatches++
	c.rec.Record(path+"/visibility", "visibility mismatch", rpcRaw, byteRaw)
}

func (c *comparison) compareEntry(path string, rf, bf any) {
	if flag(rf, rpcKeys.Entry) == flag(bf, bytecodeKeys.Entry) {
		return
	}
	c.summary.FunctionMismatches++
	c.rec.Record(path+"/is_entry", "entry mismatch", raw(rf, rpcKeys.Entry), raw(bf, bytecodeKeys.Entry))
}

// functionTypeParam is the comparable view of a function type parameter. Functions carry no
// phantom marker.
type functionTypeParam struct {
	Constraints normalize.AbilitySet `json:"constraints"`
}

func (c *comparison) compareFunctionTypeParams(path string, rf, bf any) {
	rpcTPs := array(rf, rpcKeys.TypeParams)
	byteTPs := array(bf, bytecodeKeys.TypeParams)
	if len(rpcTPs) != len(byteTPs) {
		c.summary.FunctionMismatches++
		c.rec.Record(path+"/type_params",
			fmt.Sprintf("type param arity mismatch (rpc=%d bytecode=%d)", len(rpcTPs), len(byteTPs)),
			raw(rf, rpcKeys.TypeParams), raw(bf, bytecodeKeys.TypeParams))
		return
	}
	for i := range rpcTPs {
		// RPC function type parameters are bare ability sets.
		r := functionTypeParam{Constraints: normalize.AbilitiesFromValue(rpcTPs[i])}
		b := functionTypeParam{Constraints: normalize.AbilitiesFromValue(raw(byteTPs[i], bytecodeKeys.Constraint))}
		if r.Constraints.Equal(b.Constraints) {
			continue
		}
		c.summary.FunctionMismatches++
		c.rec.Record(fmt.Sprintf("%s/type_params[%d]", path, i), "function type param constraints mismatch", r, b)
	}
}

// compareTypeList checks a parameter or return list: length first, then each position.
// noun is "param" or "return" and shapes the reasons.
func (c *comparison) compareTypeList(path, noun string, rpcList, byteList []any, rpcRaw, byteRaw any) {
	if len(rpcList) != len(byteList) {
		c.summary.FunctionMismatches++
		c.rec.Record(path,
			fmt.Sprintf("%s count mismatch (rpc=%d bytecode=%d)", noun, len(rpcList), len(byteList)),
			rpcRaw, byteRaw)
		return
	}
	for i := range rpcList {
		if c.compareType(fmt.Sprintf("%s[%d]", path, i), noun+" type mismatch", rpcList[i], byteList[i]) {
			c.summary.FunctionMismatches++
		}
	}
}
