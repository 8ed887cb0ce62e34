package smi

// Summary counts what a comparison looked at and what it found.
// MismatchesTotal is exact even when the mismatch list was capped.
type Summary struct {
	ModulesCompared          int `json:"modules_compared"`
	ModulesMissingInBytecode int `json:"modules_missing_in_bytecode"`
	ModulesExtraInBytecode   int `json:"modules_extra_in_bytecode"`
	StructsCompared          int `json:"structs_compared"`
	StructMismatches         int `json:"struct_mismatches"`
	FunctionsCompared        int `json:"functions_compared"`
	FunctionMismatches       int `json:"function_mismatches"`
	MismatchesTotal          int `json:"mismatches_total"`
	// MismatchesRecorded is the length of the returned mismatch list.
	MismatchesRecorded int `json:"mismatches_recorded"`
}

// Mismatch is one disagreement between the RPC and bytecode descriptions.
//
// Path is slash-delimited (`modules/pool/functions/swap/params[1]`). RPC and Bytecode hold the
// offending fragments; either may be nil when that side is absent or values are not included.
type Mismatch struct {
	Path     string `json:"path"`
	Reason   string `json:"reason"`
	RPC      any    `json:"rpc,omitempty"`
	Bytecode any    `json:"bytecode,omitempty"`
}

// DefaultMaxMismatches caps the mismatch list when no option overrides it.
const DefaultMaxMismatches = 200

// CompareOptions controls how mismatches are materialized. It never changes what is counted.
type CompareOptions struct {
	// MaxMismatches caps the returned list. Zero returns no records; negative is treated as zero.
	MaxMismatches int
	// IncludeValues attaches the offending RPC/bytecode fragments to each record.
	IncludeValues bool
}

// DefaultCompareOptions returns the options Compare uses when none are given.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{MaxMismatches: DefaultMaxMismatches, IncludeValues: true}
}

// CompareOption configures Compare.
type CompareOption func(*CompareOptions)

// WithMaxMismatches caps the number of materialized mismatch records.
func WithMaxMismatches(n int) CompareOption {
	return func(o *CompareOptions) { o.MaxMismatches = n }
}

// WithIncludeValues controls whether records carry the offending fragments.
// Turn it off when reports leave a trusted boundary.
func WithIncludeValues(include bool) CompareOption {
	return func(o *CompareOptions) { o.IncludeValues = include }
}
