// SPDX-License-Identifier: MIT
// Package batch: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// batch containers. Constructors and validators MUST return these
// sentinels and tests MUST check them via errors.Is. No container panics
// on user-triggered conditions; panics are reserved for programmer
// errors in private helpers.

package batch

import "errors"

var (
	// ErrBadShape is returned when a requested batch shape is invalid
	// (items <= 0, rows <= 0, or cols <= 0).
	ErrBadShape = errors.New("batch: invalid shape")

	// ErrBadSparsity indicates an inconsistent CSR skeleton: row-pointer
	// length, monotonicity, or column indices out of bounds.
	ErrBadSparsity = errors.New("batch: invalid sparsity pattern")

	// ErrDimensionMismatch indicates incompatible dimensions between
	// operands, e.g. a value plane whose length is not items*nnz, or a
	// vector batch that does not match the matrix batch.
	ErrDimensionMismatch = errors.New("batch: dimension mismatch")

	// ErrNilOperand indicates that a nil container (receiver or
	// argument) was used.
	ErrNilOperand = errors.New("batch: nil operand")

	// ErrItemOutOfRange indicates a batch-item index outside [0, Items).
	ErrItemOutOfRange = errors.New("batch: item index out of range")
)
