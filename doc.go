// Package smi reconciles two descriptions of a published Sui Move package's public interface:
// the normalized modules reported by a full node's RPC and the interface decoded from the
// package bytecode. It enumerates every place they disagree so callers that build transactions
// from the RPC view can tell when it has drifted from what the chain will execute.
//
// # Quick Start
//
//	var rpc, bytecode any
//	_ = json.Unmarshal(rpcJSON, &rpc)
//	_ = json.Unmarshal(bytecodeJSON, &bytecode)
//
//	summary, mismatches := smi.Compare(rpc, bytecode, smi.WithMaxMismatches(50))
//	fmt.Println(summary.MismatchesTotal)
//	for _, m := range mismatches {
//	    fmt.Println(m.Path, m.Reason)
//	}
//
// # Schemas
//
// The RPC document uses camelCase keys and surface type syntax (`"U64"`, `{"Vector": ...}`,
// `{"Struct": {...}}`). The bytecode document uses snake_case keys and already carries types in
// the canonical `{"kind": ...}` shape. Both sides are reduced to that shape with the normalize
// package before they are compared, so the same type spelled two ways is not a mismatch.
//
// # Degradation
//
// Compare never fails. Absent keys read as empty or false, values of the wrong JSON type read
// as absent, and type expressions that cannot be parsed become mismatch records naming the parse
// error. CheckShape reports the structural problems Compare reads past, for callers that want a
// strict mode.
//
// # Ordering and Caps
//
// Mismatches are listed module-level first, then for each common module (lexicographic) its
// struct-level records, then its function-level records. The list is capped by
// WithMaxMismatches; Summary.MismatchesTotal always counts everything found.
//
// # Concurrency
//
// Compare does not modify its inputs and keeps no global state. Independent calls are safe to
// run concurrently, including over the same input documents. A MismatchRecorder is not safe for
// concurrent use.
//
// # Subpackages
//
//   - canonicaljson: RFC 8785 (JCS) serialization and deep canonicalization of JSON values
//   - normalize: type, ability, and visibility normalization for both schemas
//   - typetag: Sui address and `address::module::Name` handling, Move-syntax type rendering
package smi
