// Package batch holds the uniform-batch containers the solver engine
// consumes: a shared-sparsity CSR matrix batch and a dense multivector
// batch.
//
// The batch package provides:
//
//   - CSR, N independent sparse systems sharing one sparsity pattern
//     (one row-pointer/column-index pair, per-item value planes).
//   - MultiVector, N dense vectors stored contiguously with O(1)
//     per-item views.
//   - Central validators returning package sentinels via errors.Is.
//
// Containers are storage only: they never synchronize, and per-item
// views alias the backing slice so the engine can update solutions in
// place. Conversion from coordinate formats and device placement are
// intentionally out of scope.
package batch
