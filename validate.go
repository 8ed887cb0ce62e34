package smi

import (
	"fmt"
	"strings"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/normalize"
)

type shapeOptions struct {
	requireSupportedSchemaVersion bool
}

// ShapeOption configures CheckShape.
type ShapeOption func(*shapeOptions)

// WithRequireSupportedSchemaVersion requires the bytecode document's schema_version to be within
// the supported range. By default the version is not inspected.
func WithRequireSupportedSchemaVersion() ShapeOption {
	return func(o *shapeOptions) { o.requireSupportedSchemaVersion = true }
}

// CheckShape reports structural problems that Compare would silently read as empty: a
// `modules` value that is not an object, a `fields` value that is not an array, and so on.
// It does not parse type expressions; Compare reports those as mismatches.
//
// CheckShape is an opt-in strict mode. It never changes what Compare returns.
func CheckShape(rpc, bytecode any, opts ...ShapeOption) error {
	var o shapeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var errs []string

	if o.requireSupportedSchemaVersion {
		v, err := SchemaVersion(bytecode)
		switch {
		case err != nil:
			errs = append(errs, "bytecode."+err.Error())
		case !IsSupportedSchemaVersion(v):
			errs = append(errs, fmt.Sprintf("bytecode.schema_version: unsupported version %d (supported %d-%d)",
				v, MinSupportedSchemaVersion, MaxTestedSchemaVersion))
		}
	}

	s := shapeChecker{errs: &errs}
	s.document("rpc", rpc, rpcKeys, rpcShape)
	s.document("bytecode", bytecode, bytecodeKeys, bytecodeShape)

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Problems: errs}
}

// ValidationError is a deterministic, multi-problem validation error.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid interface"
	}
	return "invalid interface: " + strings.Join(e.Problems, "; ")
}

// schemaShape lists the per-schema differences the checker cares about.
type schemaShape struct {
	// RPC function type parameters are bare ability sets, not objects.
	functionTypeParamsAreObjects bool
	visibilityIsString           bool
}

var (
	rpcShape      = schemaShape{}
	bytecodeShape = schemaShape{functionTypeParamsAreObjects: true, visibilityIsString: true}
)

type shapeChecker struct {
	errs *[]string
}

func (s shapeChecker) add(path, msg string) {
	*s.errs = append(*s.errs, path+": "+msg)
}

func (s shapeChecker) document(prefix string, doc any, keys schemaKeys, shape schemaShape) {
	if _, ok := doc.(map[string]any); !ok {
		s.add(prefix, "must be an object")
		return
	}
	modules, ok := s.object(prefix, doc, keys.Modules)
	if !ok {
		return
	}
	for _, m := range sortedKeys(modules) {
		mp := fmt.Sprintf("%s.modules[%q]", prefix, m)
		mod := modules[m]
		if _, ok := mod.(map[string]any); !ok {
			s.add(mp, "must be an object")
			continue
		}
		if structs, ok := s.object(mp, mod, keys.Structs); ok {
			for _, name := range sortedKeys(structs) {
				s.structDef(fmt.Sprintf("%s.structs[%q]", mp, name), structs[name], keys)
			}
		}
		if funs, ok := s.object(mp, mod, keys.Functions); ok {
			for _, name := range sortedKeys(funs) {
				s.function(fmt.Sprintf("%s.%s[%q]", mp, keys.Functions[0], name), funs[name], keys, shape)
			}
		}
	}
}

func (s shapeChecker) structDef(path string, v any, keys schemaKeys) {
	if _, ok := v.(map[string]any); !ok {
		s.add(path, "must be an object")
		return
	}
	s.bool(path, v, keys.Native)
	if tps, ok := s.array(path, v, keys.TypeParams); ok {
		for i, tp := range tps {
			tpp := fmt.Sprintf("%s.%s[%d]", path, keys.TypeParams[0], i)
			if _, ok := tp.(map[string]any); !ok {
				s.add(tpp, "must be an object")
				continue
			}
			s.bool(tpp, tp, keys.Phantom)
		}
	}
	if fields, ok := s.array(path, v, keys.Fields); ok {
		for i, f := range fields {
			fp := fmt.Sprintf("%s.fields[%d]", path, i)
			if _, ok := f.(map[string]any); !ok {
				s.add(fp, "must be an object")
				continue
			}
			if _, ok := normalize.GetString(f, keys.Name...); !ok {
				s.add(fp+".name", "must be a string")
			}
			if _, ok := normalize.Get(f, keys.Type...); !ok {
				s.add(fp+".type", "required")
			}
		}
	}
}

func (s shapeChecker) function(path string, v any, keys schemaKeys, shape schemaShape) {
	if _, ok := v.(map[string]any); !ok {
		s.add(path, "must be an object")
		return
	}
	if shape.visibilityIsString {
		if x, ok := normalize.Get(v, keys.Visibility...); ok {
			if _, isString := x.(string); !isString {
				s.add(path+"."+keys.Visibility[0], "must be a string")
			}
		}
	}
	s.bool(path, v, keys.Entry)
	if tps, ok := s.array(path, v, keys.TypeParams); ok && shape.functionTypeParamsAreObjects {
		for i, tp := range tps {
			if _, ok := tp.(map[string]any); !ok {
				s.add(fmt.Sprintf("%s.%s[%d]", path, keys.TypeParams[0], i), "must be an object")
			}
		}
	}
	s.array(path, v, keys.Params)
	s.array(path, v, keys.Returns)
}

// object checks every alias present under v and returns the first that is an object.
func (s shapeChecker) object(path string, v any, keys []string) (map[string]any, bool) {
	m := v.(map[string]any)
	for _, k := range keys {
		x, present := m[k]
		if !present {
			continue
		}
		if obj, ok := x.(map[string]any); ok {
			return obj, true
		}
		s.add(path+"."+k, "must be an object")
	}
	return nil, false
}

func (s shapeChecker) array(path string, v any, keys []string) ([]any, bool) {
	m := v.(map[string]any)
	for _, k := range keys {
		x, present := m[k]
		if !present {
			continue
		}
		if arr, ok := x.([]any); ok {
			return arr, true
		}
		s.add(path+"."+k, "must be an array")
	}
	return nil, false
}

func (s shapeChecker) bool(path string, v any, keys []string) {
	m := v.(map[string]any)
	for _, k := range keys {
		x, present := m[k]
		if !present {
			continue
		}
		if _, ok := x.(bool); !ok {
			s.add(path+"."+k, "must be a boolean")
		}
	}
}
