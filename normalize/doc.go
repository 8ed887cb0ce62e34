// Package normalize reduces the two published descriptions of a Move module to comparable values.
//
// The RPC service (sui_getNormalizedMoveModulesByPackage) and the bytecode decoder describe the
// same abilities, visibilities and type expressions with different surface syntax. This package
// maps both onto one canonical form. It is:
//   - pure (no IO, no shared state; safe for concurrent use)
//   - deterministic (identical inputs give identical outputs)
//   - fail-closed for type expressions (unknown shapes return *TypeError, never a guess)
//   - lenient for everything else (absent or malformed ability lists are the empty set)
package normalize
