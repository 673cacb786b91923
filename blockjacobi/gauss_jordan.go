// SPDX-License-Identifier: MIT
// Package blockjacobi: one Gauss-Jordan elimination step.
// The step is written in group-collective form: every lane owns one
// matrix row, the pivot row travels by broadcast, and all lanes run
// identical control flow whether or not the step failed.

package blockjacobi

// gaussJordanStep eliminates column keyCol using row keyRow across the
// whole group. On a zero pivot element the sticky status is cleared and
// the step becomes a uniform no-op for every lane.
//
// Implementation:
//   - Stage 1: broadcast the pivot element; fail uniformly when zero.
//   - Stage 2: each lane derives its elimination factor (the pivot lane
//     takes the reciprocal, others take -a[keyCol]/pivot).
//   - Stage 3: walk the row: the pivot lane's contribution is zeroed,
//     then every lane accumulates factor * broadcast(pivot row).
//   - Stage 4: column keyCol receives the factors, storing the
//     reciprocal on the pivot lane.
//
// Determinism:
//   - Fixed column order, fixed lane order inside each collective.
//
// Complexity:
//   - Time O(lanes * n), Space O(1) beyond the inverter scratch.
func (inv *Inverter) gaussJordanStep(keyRow, keyCol, n int, rows [][]float64, status *bool) {
	g := inv.group
	pivot := g.Broadcast(rows[keyRow], keyCol)
	if pivot == 0 {
		*status = false

		return
	}

	lanes := g.Size()
	factor := inv.factor
	for lane := 0; lane < lanes; lane++ {
		if lane == keyRow {
			factor[lane] = 1 / pivot
		} else {
			factor[lane] = -rows[lane][keyCol] / pivot
		}
	}

	var keyRowElem float64
	for i := 0; i < n; i++ {
		// Broadcast before any lane writes column i.
		keyRowElem = g.Broadcast(rows[keyRow], i)
		for lane := 0; lane < lanes; lane++ {
			if lane == keyRow {
				rows[lane][i] = 0
			}
			rows[lane][i] += factor[lane] * keyRowElem
		}
	}
	for lane := 0; lane < lanes; lane++ {
		rows[lane][keyCol] = factor[lane]
	}
}

// gaussJordanStepRHS is gaussJordanStep carrying a right-hand side: the
// rhs vector (one entry per lane) undergoes the same elementary row
// operations as the matrix columns, so after all steps it holds the
// row-permuted solution of A z = y without the inverse ever being
// materialized.
func (inv *Inverter) gaussJordanStepRHS(keyRow, keyCol, n int, rows [][]float64, rhs []float64, status *bool) {
	g := inv.group
	pivot := g.Broadcast(rows[keyRow], keyCol)
	pivotRHS := g.Broadcast(rhs, keyRow)
	if pivot == 0 {
		*status = false

		return
	}

	lanes := g.Size()
	factor := inv.factor
	for lane := 0; lane < lanes; lane++ {
		if lane == keyRow {
			factor[lane] = 1 / pivot
			rhs[lane] = pivotRHS * factor[lane]
		} else {
			factor[lane] = -rows[lane][keyCol] / pivot
			rhs[lane] += pivotRHS * factor[lane]
		}
	}

	var keyRowElem float64
	for i := 0; i < n; i++ {
		keyRowElem = g.Broadcast(rows[keyRow], i)
		for lane := 0; lane < lanes; lane++ {
			if lane == keyRow {
				rows[lane][i] = 0
			}
			rows[lane][i] += factor[lane] * keyRowElem
		}
	}
	for lane := 0; lane < lanes; lane++ {
		rows[lane][keyCol] = factor[lane]
	}
}
