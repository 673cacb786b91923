// SPDX-License-Identifier: MIT
// Package batch: uniform-batch dense vector storage.

package batch

// MultiVector stores N dense vectors of equal length contiguously,
// item-major: item i occupies Values[i*Rows:(i+1)*Rows].
type MultiVector struct {
	Items int
	Rows  int

	Values []float64
}

// NewMultiVector allocates a zero-initialized batch of items vectors of
// length rows.
//
// Errors: ErrBadShape when items <= 0 or rows <= 0.
// Complexity: Time O(items*rows) for the allocation, Space O(items*rows).
func NewMultiVector(items, rows int) (*MultiVector, error) {
	if items <= 0 || rows <= 0 {
		return nil, ErrBadShape
	}

	return &MultiVector{
		Items:  items,
		Rows:   rows,
		Values: make([]float64, items*rows),
	}, nil
}

// WrapMultiVector adopts an existing backing slice without copying.
//
// Errors: ErrBadShape on a non-positive shape, ErrNilOperand on a nil
// slice, ErrDimensionMismatch when len(values) != items*rows.
func WrapMultiVector(items, rows int, values []float64) (*MultiVector, error) {
	if items <= 0 || rows <= 0 {
		return nil, ErrBadShape
	}
	if values == nil {
		return nil, ErrNilOperand
	}
	if len(values) != items*rows {
		return nil, ErrDimensionMismatch
	}

	return &MultiVector{Items: items, Rows: rows, Values: values}, nil
}

// Item returns the vector of item i. The view aliases the backing slice
// so engine updates land in the caller's storage.
//
// Errors: ErrItemOutOfRange when i is outside [0, Items).
func (v *MultiVector) Item(i int) ([]float64, error) {
	if i < 0 || i >= v.Items {
		return nil, ErrItemOutOfRange
	}

	return v.Values[i*v.Rows : (i+1)*v.Rows : (i+1)*v.Rows], nil
}
