// SPDX-License-Identifier: MIT
// Package blockjacobi: the per-item cached preconditioner.
// Generate inverts one batch item's diagonal block once; Apply then
// runs every iteration as a dense matvec against the cached inverse.

package blockjacobi

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/krylov/batch"
)

// StorageElems reports the number of float64 elements one item's
// cached inverse occupies; solvers size preconditioner work storage
// from this before planning memory.
func StorageElems(n int) int { return n * n }

// Preconditioner holds one item's dense inverse, or the identity
// fallback when the block proved singular during generation.
//
// The inverse lives in caller-provided storage so the solver can place
// it in whichever arena the launch plan selected.
type Preconditioner struct {
	n       int
	ok      bool
	norm    float64   // infinity norm of the source block, taken pre-elimination
	inverse []float64 // row-major, stride n; aliases the storage passed to Generate
}

// Generate builds the preconditioner for batch item of m.
//
// Implementation:
//   - Stage 1: scatter the item's sparse block into the inverter's
//     lane-distributed dense image.
//   - Stage 2: run the implicitly pivoted inversion.
//   - Stage 3: on success, extract the unpermuted inverse into storage;
//     on a singular block, keep the identity fallback for this item.
//
// Inputs:
//   - invr:    the worker's inverter; its group must cover m.Rows lanes.
//   - m:       the uniform batch, square items (Rows == Cols).
//   - item:    batch item index in [0, m.Items).
//   - storage: at least StorageElems(m.Rows) elements; overwritten.
//
// Returns:
//   - *Preconditioner and nil, or nil and a sentinel: ErrBlockTooLarge
//     when the block exceeds the inverter's lane group,
//     batch.ErrBadShape for non-square items, batch.ErrItemOutOfRange,
//     batch.ErrDimensionMismatch for short storage.
//
// Notes:
//   - A singular block is NOT an error: the returned preconditioner
//     reports OK() == false and applies the identity.
func Generate(invr *Inverter, m *batch.CSR, item int, storage []float64) (*Preconditioner, error) {
	if m.Rows != m.Cols {
		return nil, batch.ErrBadShape
	}
	if item < 0 || item >= m.Items {
		return nil, batch.ErrItemOutOfRange
	}
	n := m.Rows
	if n > invr.group.Size() {
		return nil, ErrBlockTooLarge
	}
	if len(storage) < StorageElems(n) {
		return nil, batch.ErrDimensionMismatch
	}

	m.DenseBlock(item, invr.blockRows)
	p := &Preconditioner{
		n:       n,
		norm:    invr.InfinityNorm(n, invr.blockRows),
		inverse: storage[:n*n],
	}
	if !invr.Invert(n, invr.blockRows) {
		return p, nil
	}
	invr.ExtractInverse(n, invr.blockRows, p.inverse, n)
	p.ok = true

	return p, nil
}

// OK reports whether generation produced a usable inverse; false means
// Apply degrades to the identity.
func (p *Preconditioner) OK() bool { return p.ok }

// Norm is the infinity norm of the source block, measured before
// elimination destroyed it. A cheap conditioning probe for diagnostics.
func (p *Preconditioner) Norm() float64 { return p.norm }

// Apply computes z = M^-1 y. On the identity fallback it copies y.
//
// Contract: len(y) >= n and len(z) >= n; z must not alias y unless the
// preconditioner is the identity fallback.
//
// Complexity: Time O(n^2), Space O(1).
func (p *Preconditioner) Apply(y, z []float64) {
	if !p.ok {
		copy(z[:p.n], y[:p.n])

		return
	}
	for r := 0; r < p.n; r++ {
		z[r] = floats.Dot(p.inverse[r*p.n:(r+1)*p.n], y[:p.n])
	}
}
