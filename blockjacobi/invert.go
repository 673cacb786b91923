// SPDX-License-Identifier: MIT
// Package blockjacobi: group-collective block inversion.
// The matrix lives lane-distributed (rows[lane] is the row owned by
// lane), elimination runs without row exchanges, and the two recorded
// permutations are undone only on extraction.

package blockjacobi

import (
	"errors"

	"github.com/katalvlaran/krylov/coop"
)

// MaxBlockSize bounds the problem size one lane group can invert: the
// lane-per-row mapping requires n <= lanes and the scratch is sized at
// construction time.
const MaxBlockSize = 32

var (
	// ErrBlockTooLarge is returned when the requested block exceeds the
	// inverter's lane group or MaxBlockSize.
	ErrBlockTooLarge = errors.New("blockjacobi: block larger than lane group")

	// ErrNilGroup is returned when an inverter is built without a group.
	ErrNilGroup = errors.New("blockjacobi: nil cooperative group")
)

// Inverter performs in-place Gauss-Jordan elimination with implicit
// full pivoting over a cooperative lane group. It owns all scratch
// state, so one Inverter serves any number of sequential inversions
// without allocating.
//
// Not safe for concurrent use; the engine gives each worker its own.
type Inverter struct {
	group *coop.Group

	factor  []float64 // per-lane elimination factor
	colVals []float64 // pivot-column snapshot for pivot election
	pivoted []bool    // sticky per-lane exclusion flags
	rhs     []float64 // fused right-hand-side scratch

	// perm[lane] is the solution row lane's result belongs to;
	// transPerm[step] is the lane elected at that step. Together they
	// encode the double permutation ExtractInverse undoes.
	perm      []int
	transPerm []int

	// blockRows is the lane-distributed dense image a generator scatters
	// a sparse block into before elimination destroys it.
	blockRows [][]float64
}

// NewInverter builds an inverter bound to group g.
//
// Inputs:
//   - g: lane group; its size caps the invertible block dimension.
//
// Returns:
//   - *Inverter and nil, or nil and ErrNilGroup / ErrBlockTooLarge when
//     the group exceeds MaxBlockSize lanes (larger groups would make
//     the lane-per-row mapping lose its register-budget meaning).
func NewInverter(g *coop.Group) (*Inverter, error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	if g.Size() > MaxBlockSize {
		return nil, ErrBlockTooLarge
	}
	lanes := g.Size()
	blockRows := make([][]float64, lanes)
	backing := make([]float64, lanes*lanes)
	for lane := range blockRows {
		blockRows[lane] = backing[lane*lanes : (lane+1)*lanes]
	}

	return &Inverter{
		group:     g,
		factor:    make([]float64, lanes),
		colVals:   make([]float64, lanes),
		pivoted:   make([]bool, lanes),
		rhs:       make([]float64, lanes),
		perm:      make([]int, lanes),
		transPerm: make([]int, lanes),
		blockRows: blockRows,
	}, nil
}

// Invert eliminates the n x n block held in rows (one row per lane,
// lanes beyond n ignored) into its permuted inverse. The result stays
// lane-distributed; ExtractInverse produces the row-major form.
//
// Implementation:
//   - Stage 1: mark lanes >= n as pre-pivoted so they never win.
//   - Stage 2: for each elimination step, elect the largest-magnitude
//     unpivoted entry of the current column, record both permutations,
//     and apply the Gauss-Jordan transform.
//   - Stage 3: report the sticky status.
//
// Behavior highlights:
//   - A zero pivot clears the status but the loop still runs every
//     remaining step, so all lanes terminate uniformly.
//   - rows is overwritten even on failure.
//
// Returns:
//   - true when every pivot was nonzero; false marks the block
//     singular (callers fall back to identity for this item only).
//
// Complexity:
//   - Time O(n * lanes * n), Space O(1) beyond construction scratch.
func (inv *Inverter) Invert(n int, rows [][]float64) bool {
	if n <= 0 || n > inv.group.Size() {
		return false
	}
	lanes := inv.group.Size()
	for lane := 0; lane < lanes; lane++ {
		inv.pivoted[lane] = lane >= n
	}

	status := true
	for i := 0; i < n; i++ {
		for lane := 0; lane < lanes; lane++ {
			inv.colVals[lane] = rows[lane][i]
		}
		piv := inv.group.ChoosePivot(inv.colVals, inv.pivoted)
		inv.pivoted[piv] = true
		inv.perm[piv] = i
		inv.transPerm[i] = piv
		inv.gaussJordanStep(piv, i, n, rows, &status)
	}

	return status
}

// Solve runs the fused elimination that computes z = A^-1 y without
// materializing the inverse: the right-hand side rides along the row
// operations and is unpermuted into z at the end.
//
// Inputs:
//   - n:    block dimension, 0 < n <= group size.
//   - rows: lane-distributed block, overwritten.
//   - y, z: dense vectors of length n; z may alias y.
//
// Returns:
//   - false on a singular block; z is then left equal to y (identity
//     fallback applied in place).
func (inv *Inverter) Solve(n int, rows [][]float64, y, z []float64) bool {
	if n <= 0 || n > inv.group.Size() {
		return false
	}
	lanes := inv.group.Size()
	for lane := 0; lane < lanes; lane++ {
		inv.pivoted[lane] = lane >= n
		if lane < n {
			inv.rhs[lane] = y[lane]
		} else {
			inv.rhs[lane] = 0
		}
	}

	status := true
	for i := 0; i < n; i++ {
		for lane := 0; lane < lanes; lane++ {
			inv.colVals[lane] = rows[lane][i]
		}
		piv := inv.group.ChoosePivot(inv.colVals, inv.pivoted)
		inv.pivoted[piv] = true
		inv.perm[piv] = i
		inv.transPerm[i] = piv
		inv.gaussJordanStepRHS(piv, i, n, rows, inv.rhs, &status)
	}
	if !status {
		copy(z, y[:n])

		return false
	}
	// Undo the row permutation: lane's entry belongs at solution row
	// perm[lane].
	for lane := 0; lane < n; lane++ {
		z[inv.perm[lane]] = inv.rhs[lane]
	}

	return true
}

// ExtractInverse writes the true inverse into dst in row-major order
// with the given stride, undoing both recorded permutations:
//
//	dst[perm[lane]*stride + transPerm[col]] = rows[lane][col]
//
// Must follow a successful Invert on the same rows; the permutation
// arrays are the ones that inversion recorded.
//
// Complexity: Time O(n^2), Space O(1).
func (inv *Inverter) ExtractInverse(n int, rows [][]float64, dst []float64, stride int) {
	for lane := 0; lane < n; lane++ {
		base := inv.perm[lane] * stride
		for col := 0; col < n; col++ {
			dst[base+inv.transPerm[col]] = rows[lane][col]
		}
	}
}

// InfinityNorm reduces the lane-distributed block to its infinity norm
// (maximum absolute row sum). Used for conditioning diagnostics before
// the block is destroyed by elimination.
func (inv *Inverter) InfinityNorm(n int, rows [][]float64) float64 {
	lanes := inv.group.Size()
	for lane := 0; lane < lanes; lane++ {
		sum := 0.0
		if lane < n {
			for col := 0; col < n; col++ {
				v := rows[lane][col]
				if v < 0 {
					v = -v
				}
				sum += v
			}
		}
		inv.colVals[lane] = sum
	}

	return inv.group.Reduce(inv.colVals, func(a, b float64) float64 {
		if a >= b {
			return a
		}

		return b
	})
}
