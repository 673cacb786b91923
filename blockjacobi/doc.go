// Package blockjacobi builds and applies the dense block-Jacobi
// preconditioner used by the batched solver engine.
//
// The blockjacobi package provides:
//
//   - Inverter, an in-place Gauss-Jordan elimination with implicit full
//     pivoting over a cooperative lane group (one matrix row per lane).
//   - A fused right-hand-side variant that solves A z = y during
//     elimination, for the apply-immediately path.
//   - ExtractInverse, which undoes the double permutation of the
//     register image into a row-major dense inverse.
//   - Preconditioner, the cached inverse built from a batch item's
//     diagonal block and applied as z = M^-1 y each iteration.
//
// Failure is local and branch-free: a zero pivot column marks the block
// singular through a sticky status flag while every lane keeps
// executing the remaining steps, so the group never diverges. Callers
// treat a failed block as an identity preconditioner for that item
// only.
package blockjacobi
