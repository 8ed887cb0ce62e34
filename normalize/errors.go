package normalize

import (
	"fmt"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/canonicaljson"
)

// Schema names the producer of a type expression.
type Schema string

const (
	SchemaRPC      Schema = "rpc"
	SchemaBytecode Schema = "bytecode"
)

// TypeError reports a type expression that does not match its schema's grammar.
type TypeError struct {
	Schema  Schema
	Path    string
	Message string
}

func (e *TypeError) Error() string {
	if e == nil {
		return "type error"
	}
	return fmt.Sprintf("%s: %s", pathOrRoot(e.Path), e.Message)
}

func typeErrorf(schema Schema, path, format string, args ...any) *TypeError {
	return &TypeError{Schema: schema, Path: pathOrRoot(path), Message: fmt.Sprintf(format, args...)}
}

const snippetLimit = 96

// snippet renders v for error messages, truncated so one bad fragment cannot flood a report.
func snippet(v any) string {
	s, err := canonicaljson.String(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	if len(s) > snippetLimit {
		return s[:snippetLimit] + "…"
	}
	return s
}
