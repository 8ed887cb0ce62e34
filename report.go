package smi

import (
	"fmt"
	"io"
	"strings"

	"github.com/Evan-Kim2028/sui-move-interface-extractor/canonicaljson"
	"github.com/Evan-Kim2028/sui-move-interface-extractor/typetag"
)

// Report is the serializable result of comparing one package.
type Report struct {
	PackageID  string     `json:"package_id,omitempty"`
	Summary    Summary    `json:"summary"`
	Mismatches []Mismatch `json:"mismatches"`
}

// CompareReport runs Compare and wraps the result for packageID.
func CompareReport(packageID string, rpc, bytecode any, opts ...CompareOption) Report {
	summary, mismatches := Compare(rpc, bytecode, opts...)
	return Report{PackageID: packageID, Summary: summary, Mismatches: mismatches}
}

// OK reports whether the comparison found no mismatches at all.
func (r Report) OK() bool { return r.Summary.MismatchesTotal == 0 }

// Truncated reports whether more mismatches were found than the report carries.
func (r Report) Truncated() bool { return r.Summary.MismatchesTotal > len(r.Mismatches) }

// Headline summarizes the outcome in one line.
func (r Report) Headline() string {
	id := r.PackageID
	if id == "" {
		id = "package"
	}
	total := r.Summary.MismatchesTotal
	switch {
	case total == 0:
		return fmt.Sprintf("%s: interfaces match (%d modules, %d structs, %d functions compared)",
			id, r.Summary.ModulesCompared, r.Summary.StructsCompared, r.Summary.FunctionsCompared)
	case r.Truncated():
		return fmt.Sprintf("%s: %d %s found, showing first %d", id, total, plural(total, "issue"), len(r.Mismatches))
	default:
		return fmt.Sprintf("%s: %d %s found", id, total, plural(total, "issue"))
	}
}

// WriteText writes a human-readable rendering of the report to w.
// Canonical type values are shown in Move syntax.
func (r Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(r.Headline())
	sb.WriteByte('\n')
	s := r.Summary
	fmt.Fprintf(&sb, "  modules: %d compared, %d missing in bytecode, %d extra in bytecode\n",
		s.ModulesCompared, s.ModulesMissingInBytecode, s.ModulesExtraInBytecode)
	fmt.Fprintf(&sb, "  structs: %d compared, %d mismatches\n", s.StructsCompared, s.StructMismatches)
	fmt.Fprintf(&sb, "  functions: %d compared, %d mismatches\n", s.FunctionsCompared, s.FunctionMismatches)
	for _, m := range r.Mismatches {
		fmt.Fprintf(&sb, "- %s: %s\n", m.Path, m.Reason)
		if m.RPC != nil {
			fmt.Fprintf(&sb, "    rpc:      %s\n", displayValue(m.RPC))
		}
		if m.Bytecode != nil {
			fmt.Fprintf(&sb, "    bytecode: %s\n", displayValue(m.Bytecode))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func displayValue(v any) string {
	if m, ok := v.(map[string]any); ok {
		if _, isType := m["kind"]; isType {
			return typetag.Format(m)
		}
	}
	s, err := canonicaljson.String(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
