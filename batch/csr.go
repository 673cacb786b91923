// SPDX-License-Identifier: MIT
// Package batch: uniform-batch CSR storage.
// One sparsity skeleton (RowPtr, ColIdx) is shared by every item; only
// the value planes differ. This keeps the per-item footprint at
// nnz*8 bytes and lets kernels precompute row extents once per batch.

package batch

// CSR stores N sparse matrices with identical sparsity in compressed
// sparse row form.
//
// Layout:
//   - RowPtr: len Rows+1, shared by all items, non-decreasing.
//   - ColIdx: len NNZ, shared by all items, each value in [0, Cols).
//   - Values: len Items*NNZ, item i occupying Values[i*NNZ:(i+1)*NNZ].
//
// Invariant: NNZ == int(RowPtr[Rows]). The skeleton is immutable after
// construction; value planes are caller-mutable.
type CSR struct {
	Items int // number of batch items, > 0
	Rows  int // rows per item, > 0
	Cols  int // columns per item, > 0
	NNZ   int // stored entries per item

	RowPtr []int32
	ColIdx []int32
	Values []float64
}

// NewCSR validates and assembles a uniform batch CSR container.
//
// Implementation:
//   - Stage 1: validate shape and skeleton (length, monotonicity,
//     column bounds).
//   - Stage 2: validate the value plane length against items*nnz.
//
// Inputs:
//   - items, rows, cols: batch shape, all > 0.
//   - rowPtr, colIdx:    shared sparsity skeleton.
//   - values:            items*nnz entries, item-major.
//
// Returns:
//   - *CSR and nil, or nil and a sentinel (ErrBadShape, ErrBadSparsity,
//     ErrDimensionMismatch, ErrNilOperand).
//
// Complexity:
//   - Time O(rows + nnz) for the skeleton walk, Space O(1).
func NewCSR(items, rows, cols int, rowPtr, colIdx []int32, values []float64) (*CSR, error) {
	if items <= 0 || rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if rowPtr == nil || colIdx == nil || values == nil {
		return nil, ErrNilOperand
	}
	if len(rowPtr) != rows+1 || rowPtr[0] != 0 {
		return nil, ErrBadSparsity
	}
	for r := 0; r < rows; r++ {
		if rowPtr[r+1] < rowPtr[r] {
			return nil, ErrBadSparsity
		}
	}
	nnz := int(rowPtr[rows])
	if len(colIdx) != nnz {
		return nil, ErrBadSparsity
	}
	for _, c := range colIdx {
		if c < 0 || int(c) >= cols {
			return nil, ErrBadSparsity
		}
	}
	if len(values) != items*nnz {
		return nil, ErrDimensionMismatch
	}

	return &CSR{
		Items:  items,
		Rows:   rows,
		Cols:   cols,
		NNZ:    nnz,
		RowPtr: rowPtr,
		ColIdx: colIdx,
		Values: values,
	}, nil
}

// ItemValues returns the value plane of item i. The view aliases the
// backing slice.
//
// Errors: ErrItemOutOfRange when i is outside [0, Items).
func (m *CSR) ItemValues(i int) ([]float64, error) {
	if i < 0 || i >= m.Items {
		return nil, ErrItemOutOfRange
	}

	return m.Values[i*m.NNZ : (i+1)*m.NNZ : (i+1)*m.NNZ], nil
}

// SpMV computes y = A_i * x for item i.
//
// Contract: len(x) == Cols, len(y) == Rows; callers validate once per
// batch, not per call — this sits on the iteration hot path.
//
// Determinism:
//   - Fixed row-major accumulation in skeleton order.
//
// Complexity:
//   - Time O(nnz), Space O(1).
func (m *CSR) SpMV(item int, x, y []float64) {
	vals := m.Values[item*m.NNZ:]
	var (
		r, k       int
		begin, end int
		acc        float64
	)
	for r = 0; r < m.Rows; r++ {
		acc = 0
		begin, end = int(m.RowPtr[r]), int(m.RowPtr[r+1])
		for k = begin; k < end; k++ {
			acc += vals[k] * x[m.ColIdx[k]]
		}
		y[r] = acc
	}
}

// DenseBlock scatters item i into dst as dense rows (dst[r][c]),
// zero-filling unstored positions. The inverter consumes this as the
// lane-distributed diagonal block.
//
// Contract: len(dst) >= Rows and len(dst[r]) >= Cols.
// Complexity: Time O(rows*cols + nnz), Space O(1).
func (m *CSR) DenseBlock(item int, dst [][]float64) {
	vals := m.Values[item*m.NNZ:]
	for r := 0; r < m.Rows; r++ {
		row := dst[r]
		for c := 0; c < m.Cols; c++ {
			row[c] = 0
		}
		for k := int(m.RowPtr[r]); k < int(m.RowPtr[r+1]); k++ {
			row[m.ColIdx[k]] = vals[k]
		}
	}
}
