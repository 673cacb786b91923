// SPDX-License-Identifier: MIT

package blockjacobi

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/krylov/coop"
)

func newTestInverter(t *testing.T, lanes int) *Inverter {
	t.Helper()
	g, err := coop.NewGroup(lanes)
	if err != nil {
		t.Fatalf("NewGroup(%d): %v", lanes, err)
	}
	inv, err := NewInverter(g)
	if err != nil {
		t.Fatalf("NewInverter: %v", err)
	}

	return inv
}

// laneRows copies an n x n row-major matrix into a fresh lane-distributed
// image sized for the group.
func laneRows(lanes, n int, a []float64) [][]float64 {
	rows := make([][]float64, lanes)
	for lane := range rows {
		rows[lane] = make([]float64, lanes)
		if lane < n {
			copy(rows[lane], a[lane*n:(lane+1)*n])
		}
	}

	return rows
}

func TestNewInverter_Validation(t *testing.T) {
	if _, err := NewInverter(nil); err != ErrNilGroup {
		t.Fatalf("nil group: got %v, want ErrNilGroup", err)
	}
	g, _ := coop.NewGroup(MaxBlockSize + 1)
	if _, err := NewInverter(g); err != ErrBlockTooLarge {
		t.Fatalf("oversized group: got %v, want ErrBlockTooLarge", err)
	}
}

// Inversion must succeed on blocks whose natural pivot order is a
// nontrivial permutation, and the extracted inverse must satisfy
// A * inv(A) = I to high accuracy.
func TestInvert_RoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		lanes int
		a     []float64
	}{
		{"antidiagonal 2x2", 2, 2, []float64{0, 1, 2, 0}},
		{"cyclic 3x3", 3, 4, []float64{1, 2, 0, 0, 0, 3, 4, 0, 0}},
		{"diagonally dominant 4x4", 4, 4, []float64{
			5, 1, 0, -1,
			2, 7, 1, 0,
			0, -1, 6, 2,
			1, 0, 2, 8,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := newTestInverter(t, tc.lanes)
			rows := laneRows(tc.lanes, tc.n, tc.a)
			if !inv.Invert(tc.n, rows) {
				t.Fatalf("Invert reported singular for a regular block")
			}

			got := make([]float64, tc.n*tc.n)
			inv.ExtractInverse(tc.n, rows, got, tc.n)

			a := mat.NewDense(tc.n, tc.n, tc.a)
			x := mat.NewDense(tc.n, tc.n, got)
			var prod mat.Dense
			prod.Mul(a, x)
			for r := 0; r < tc.n; r++ {
				for c := 0; c < tc.n; c++ {
					want := 0.0
					if r == c {
						want = 1.0
					}
					if diff := math.Abs(prod.At(r, c) - want); diff > 1e-12 {
						t.Fatalf("(A*inv)[%d,%d] = %g, want %g", r, c, prod.At(r, c), want)
					}
				}
			}
		})
	}
}

// A structurally singular block must flip the sticky status while the
// loop still runs to completion.
func TestInvert_SingularBlock(t *testing.T) {
	inv := newTestInverter(t, 2)
	rows := laneRows(2, 2, []float64{1, 2, 2, 4})
	if inv.Invert(2, rows) {
		t.Fatalf("Invert accepted a rank-deficient block")
	}
	// The inverter must stay reusable after a failure.
	rows = laneRows(2, 2, []float64{0, 1, 2, 0})
	if !inv.Invert(2, rows) {
		t.Fatalf("Invert failed on a regular block after a singular one")
	}
}

func TestInvert_RejectsBadDimension(t *testing.T) {
	inv := newTestInverter(t, 2)
	rows := laneRows(2, 2, []float64{1, 0, 0, 1})
	if inv.Invert(0, rows) {
		t.Fatalf("Invert accepted n = 0")
	}
	if inv.Invert(3, rows) {
		t.Fatalf("Invert accepted n > lanes")
	}
}

// The fused solve must match the solve-via-extracted-inverse path.
func TestSolve_MatchesExtractedInverse(t *testing.T) {
	const n = 3
	a := []float64{1, 2, 0, 0, 0, 3, 4, 0, 0}
	y := []float64{3, -1.5, 2}

	inv := newTestInverter(t, n)
	rows := laneRows(n, n, a)
	if !inv.Invert(n, rows) {
		t.Fatalf("Invert reported singular")
	}
	invA := make([]float64, n*n)
	inv.ExtractInverse(n, rows, invA, n)
	want := make([]float64, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			want[r] += invA[r*n+c] * y[c]
		}
	}

	rows = laneRows(n, n, a)
	z := make([]float64, n)
	if !inv.Solve(n, rows, y, z) {
		t.Fatalf("Solve reported singular")
	}
	for r := 0; r < n; r++ {
		if math.Abs(z[r]-want[r]) > 1e-12 {
			t.Fatalf("z[%d] = %g, want %g", r, z[r], want[r])
		}
	}
}

// On a singular block the fused solve applies the identity in place.
func TestSolve_SingularFallsBackToIdentity(t *testing.T) {
	inv := newTestInverter(t, 2)
	rows := laneRows(2, 2, []float64{1, 1, 1, 1})
	y := []float64{0.5, -0.25}
	z := make([]float64, 2)
	if inv.Solve(2, rows, y, z) {
		t.Fatalf("Solve accepted a singular block")
	}
	if z[0] != y[0] || z[1] != y[1] {
		t.Fatalf("fallback z = %v, want %v", z, y)
	}
}

func TestInfinityNorm(t *testing.T) {
	inv := newTestInverter(t, 3)
	rows := laneRows(3, 3, []float64{1, -2, 0, 0, 3, 0.5, -1, -1, -1})
	if got := inv.InfinityNorm(3, rows); got != 3.5 {
		t.Fatalf("InfinityNorm = %g, want 3.5", got)
	}
}
