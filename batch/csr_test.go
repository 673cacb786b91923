// Package batch_test contains unit tests for the uniform-batch containers.
package batch_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/krylov/batch"
)

// tridiag3 builds a 2-item batch of the 3x3 tridiagonal [2,-1] stencil
// with the second item scaled by 10.
func tridiag3(t *testing.T) *batch.CSR {
	t.Helper()

	rowPtr := []int32{0, 2, 5, 7}
	colIdx := []int32{0, 1, 0, 1, 2, 1, 2}
	values := []float64{
		2, -1, -1, 2, -1, -1, 2,
		20, -10, -10, 20, -10, -10, 20,
	}
	m, err := batch.NewCSR(2, 3, 3, rowPtr, colIdx, values)
	if err != nil {
		t.Fatalf("NewCSR: %v", err)
	}

	return m
}

func TestNewCSR_RejectsBadInput(t *testing.T) {
	t.Parallel()

	rowPtr := []int32{0, 1}
	colIdx := []int32{0}
	vals := []float64{1}

	for _, tc := range []struct {
		name string
		err  error
		call func() error
	}{
		{"zero items", batch.ErrBadShape, func() error {
			_, err := batch.NewCSR(0, 1, 1, rowPtr, colIdx, vals)
			return err
		}},
		{"nil skeleton", batch.ErrNilOperand, func() error {
			_, err := batch.NewCSR(1, 1, 1, nil, colIdx, vals)
			return err
		}},
		{"short row pointers", batch.ErrBadSparsity, func() error {
			_, err := batch.NewCSR(1, 2, 2, rowPtr, colIdx, vals)
			return err
		}},
		{"decreasing row pointers", batch.ErrBadSparsity, func() error {
			_, err := batch.NewCSR(1, 2, 2, []int32{0, 1, 0}, colIdx, vals)
			return err
		}},
		{"column out of bounds", batch.ErrBadSparsity, func() error {
			_, err := batch.NewCSR(1, 1, 1, []int32{0, 1}, []int32{5}, vals)
			return err
		}},
		{"value plane too short", batch.ErrDimensionMismatch, func() error {
			_, err := batch.NewCSR(3, 1, 1, rowPtr, colIdx, vals)
			return err
		}},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, tc.err) {
				t.Fatalf("want %v, got %v", tc.err, err)
			}
		})
	}
}

func TestSpMV_PerItemValues(t *testing.T) {
	t.Parallel()

	m := tridiag3(t)
	x := []float64{1, 1, 1}
	y := make([]float64, 3)

	m.SpMV(0, x, y)
	for i, want := range []float64{1, 0, 1} {
		if y[i] != want {
			t.Fatalf("item 0 y[%d]: want %v, got %v", i, want, y[i])
		}
	}

	m.SpMV(1, x, y)
	for i, want := range []float64{10, 0, 10} {
		if y[i] != want {
			t.Fatalf("item 1 y[%d]: want %v, got %v", i, want, y[i])
		}
	}
}

func TestDenseBlock_ScattersAndZeroFills(t *testing.T) {
	t.Parallel()

	m := tridiag3(t)
	dst := make([][]float64, 3)
	for r := range dst {
		dst[r] = []float64{9, 9, 9} // stale garbage must be overwritten
	}

	m.DenseBlock(0, dst)

	want := [][]float64{{2, -1, 0}, {-1, 2, -1}, {0, -1, 2}}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if dst[r][c] != want[r][c] {
				t.Fatalf("block[%d][%d]: want %v, got %v", r, c, want[r][c], dst[r][c])
			}
		}
	}
}

func TestMultiVector_ViewsAliasBacking(t *testing.T) {
	t.Parallel()

	v, err := batch.NewMultiVector(2, 3)
	if err != nil {
		t.Fatalf("NewMultiVector: %v", err)
	}

	item1, err := v.Item(1)
	if err != nil {
		t.Fatalf("Item(1): %v", err)
	}
	item1[0] = 42
	if v.Values[3] != 42 {
		t.Fatal("item view must alias the backing slice")
	}

	if _, err = v.Item(2); !errors.Is(err, batch.ErrItemOutOfRange) {
		t.Fatalf("Item(2): want ErrItemOutOfRange, got %v", err)
	}
}

func TestValidateSystem(t *testing.T) {
	t.Parallel()

	m := tridiag3(t)
	b, _ := batch.NewMultiVector(2, 3)
	x, _ := batch.NewMultiVector(2, 3)
	if err := batch.ValidateSystem(m, b, x); err != nil {
		t.Fatalf("conformable system rejected: %v", err)
	}

	short, _ := batch.NewMultiVector(1, 3)
	if err := batch.ValidateSystem(m, short, x); !errors.Is(err, batch.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
	if err := batch.ValidateSystem(nil, b, x); !errors.Is(err, batch.ErrNilOperand) {
		t.Fatalf("want ErrNilOperand, got %v", err)
	}
}
