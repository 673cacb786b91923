// SPDX-License-Identifier: MIT
// Package coop: lockstep execution-group primitives.
// This file defines the Group type and the collective operations every
// cooperative kernel (block inversion, collective matvec, reductions)
// is built from. All collectives are pure with respect to the group and
// deterministic: fixed lane visitation order, no global state.

package coop

import "errors"

// ErrBadGroupSize is returned when a group is requested with a
// non-positive lane count.
var ErrBadGroupSize = errors.New("coop: group size must be > 0")

// ErrLaneMismatch indicates a lane-indexed operand whose length does not
// equal the group size.
var ErrLaneMismatch = errors.New("coop: operand length does not match group size")

// Group is a set of lanes executing in lockstep. Lane-local state lives
// in caller-owned slices indexed by lane rank; the Group only carries
// the size and the collective semantics.
//
// Behavior highlights:
//   - All collectives visit lanes in rank order 0..Size()-1.
//   - No collective allocates.
//
// Determinism:
//   - Identical inputs produce identical outputs; reductions accumulate
//     in rank order, never tree order.
type Group struct {
	size int
}

// NewGroup constructs a group of the given lane count.
//
// Inputs:
//   - size: number of lanes, must be > 0.
//
// Returns:
//   - *Group and nil, or nil and ErrBadGroupSize.
//
// Complexity:
//   - Time O(1), Space O(1).
func NewGroup(size int) (*Group, error) {
	if size <= 0 {
		return nil, ErrBadGroupSize
	}

	return &Group{size: size}, nil
}

// Size reports the number of lanes in the group.
func (g *Group) Size() int { return g.size }

// Shuffle returns the value held by lane src. It is the emulated
// equivalent of a SIMD-group shuffle: every lane observes the same
// result.
//
// Contract: len(vals) == Size(); src in [0, Size()). Violations are
// programmer errors and panic, matching slice indexing semantics.
// Complexity: O(1).
func (g *Group) Shuffle(vals []float64, src int) float64 {
	return vals[src]
}

// Broadcast is Shuffle with the source fixed by the caller; it exists to
// keep call sites readable where the source lane is a pivot, not data.
func (g *Group) Broadcast(vals []float64, src int) float64 {
	return vals[src]
}

// Reduce folds one value per lane into a single result using op,
// accumulating in lane-rank order starting from vals[0].
//
// Inputs:
//   - vals: one contribution per lane, len(vals) == Size().
//   - op:   associative combiner (sum, max, ...).
//
// Returns:
//   - the folded value, identical for every lane.
//
// Determinism:
//   - Strict rank-order accumulation; no reassociation.
//
// Complexity:
//   - Time O(lanes), Space O(1).
func (g *Group) Reduce(vals []float64, op func(a, b float64) float64) float64 {
	acc := vals[0]
	for lane := 1; lane < g.size; lane++ {
		acc = op(acc, vals[lane])
	}

	return acc
}

// ChoosePivot selects the lane holding the largest magnitude among
// lanes whose pivoted flag is still false. Ties break toward the lowest
// lane rank. Returns -1 when every lane is already pivoted.
//
// This is the group-collective pivot election of implicitly pivoted
// Gauss-Jordan elimination: all lanes reach it together and all lanes
// observe the same winner.
//
// Inputs:
//   - vals:    candidate magnitudes' source values, one per lane.
//   - pivoted: sticky per-lane exclusion flags, one per lane.
//
// Complexity:
//   - Time O(lanes), Space O(1).
//
// AI-Hints:
//   - Magnitude comparison uses abs(vals[lane]); pass the pivot-column
//     entries directly, not pre-folded magnitudes.
func (g *Group) ChoosePivot(vals []float64, pivoted []bool) int {
	best := -1
	bestMag := -1.0
	var mag float64
	for lane := 0; lane < g.size; lane++ {
		if pivoted[lane] {
			continue
		}
		mag = vals[lane]
		if mag < 0 {
			mag = -mag
		}
		// Strict > keeps the lowest lane on ties.
		if mag > bestMag {
			bestMag, best = mag, lane
		}
	}

	return best
}
