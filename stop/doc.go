// Package stop decides, per batch item and once per iteration, whether
// the solver should keep going.
//
// The stop package provides:
//
//   - Status, the compact per-item stop/finalize bit-state.
//   - Criterion and Factory, the check protocol and its configuration-
//     time construction step.
//   - Iteration, Time and ResidualNorm criteria.
//   - Combine, OR-composition over a factory sequence with nil entries
//     silently dropped (an all-nil or empty sequence is a configuration
//     error, reported before any solve work starts).
//
// Combination semantics are strictly OR: an item stops as soon as any
// constituent criterion fires; criteria are consulted in construction
// order and never re-mark an already stopped item, so the earliest
// listed criterion owns the stopping id on simultaneous fires. Once an
// item is finalized its status is immutable.
package stop
