// SPDX-License-Identifier: MIT
// Package: batch
//
// Purpose:
//   - Provide a single, canonical source of truth for cross-container
//     compatibility checks used by the solver front door.
//   - Return plain sentinel errors (no wrapping) so call sites can wrap
//     uniformly at their facade.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.

package batch

// ValidateSystem checks that a is a non-nil square batch matrix and that
// b and x are conformable right-hand-side and solution batches.
//
// Implementation: NotNil -> Square -> item counts -> row counts.
// Returns: nil or a plain sentinel (ErrNilOperand, ErrBadShape,
// ErrDimensionMismatch).
// Complexity: O(1).
func ValidateSystem(a *CSR, b, x *MultiVector) error {
	if a == nil || b == nil || x == nil {
		return ErrNilOperand
	}
	if a.Rows != a.Cols {
		return ErrBadShape
	}
	if b.Items != a.Items || x.Items != a.Items {
		return ErrDimensionMismatch
	}
	if b.Rows != a.Rows || x.Rows != a.Rows {
		return ErrDimensionMismatch
	}

	return nil
}
