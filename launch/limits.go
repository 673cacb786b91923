// SPDX-License-Identifier: MIT
// Package launch: explicit hardware capacity model.

package launch

import "errors"

const (
	// ElemSize is the byte width of one working-precision element.
	ElemSize = 8

	// Alignment is the element granularity strides and row counts are
	// padded to, keeping per-item global slices alias-free and keeping
	// vector starts on cache-line friendly boundaries.
	Alignment = 8

	// NumWorkVectors is the fixed count of per-item Krylov workspace
	// vectors (r, r̂, p, p̂, v, s, ŝ, t, x).
	NumWorkVectors = 9

	// RegistersPerLane is the planning estimate of the register budget
	// one lane of the iteration kernel consumes.
	RegistersPerLane = 64
)

var (
	// ErrBadParameter is returned for non-positive problem dimensions or
	// a malformed limits value.
	ErrBadParameter = errors.New("launch: bad planning parameter")

	// ErrResourceExhausted is returned when no enumerated configuration
	// fits the hardware: the batch is rejected before any work runs.
	ErrResourceExhausted = errors.New("launch: problem exceeds hardware limits")
)

// HardwareLimits is the capacity triple planning decisions are made
// against. It is passed in explicitly so the planner never consults
// ambient device state.
type HardwareLimits struct {
	SharedMemPerGroup    int // fast-memory bytes available to one group
	MaxRegistersPerGroup int // register-file budget of one group
	MaxLanesPerGroup     int // hard ceiling on group width
	WarpSize             int // native lockstep width; lane counts are multiples of it
}

// ReferenceLimits models the software reference backend: a modest
// fast-memory budget and CPU-friendly group shape. Tests and the
// emulated executor start from this.
func ReferenceLimits() HardwareLimits {
	return HardwareLimits{
		SharedMemPerGroup:    64 * 1024,
		MaxRegistersPerGroup: 64 * 1024,
		MaxLanesPerGroup:     1024,
		WarpSize:             32,
	}
}

func (h HardwareLimits) valid() bool {
	return h.SharedMemPerGroup >= 0 &&
		h.MaxRegistersPerGroup > 0 &&
		h.MaxLanesPerGroup > 0 &&
		h.WarpSize > 0 &&
		h.MaxLanesPerGroup >= h.WarpSize
}

// Validate reports ErrBadParameter for a malformed limits value
// (negative budgets, zero warp width, ceiling below one warp).
func (h HardwareLimits) Validate() error {
	if !h.valid() {
		return ErrBadParameter
	}

	return nil
}

// PaddedRows rounds a row count up to the stride alignment.
func PaddedRows(rows int) int {
	return (rows + Alignment - 1) / Alignment * Alignment
}

// Lanes derives the execution-group width for items with the given row
// count.
//
// Implementation:
//   - Stage 1: size by work: one warp per four rows, at least two
//     warps so reductions always have partners.
//   - Stage 2: clamp by the register file (RegistersPerLane estimate)
//     and the hard lane ceiling, both rounded down to warp multiples.
//   - Stage 3: reject when the clamps push below the two-warp floor.
//
// Returns:
//   - the lane count and nil, or 0 and ErrBadParameter /
//     ErrResourceExhausted.
func Lanes(rows int, limits HardwareLimits) (int, error) {
	if rows <= 0 || !limits.valid() {
		return 0, ErrBadParameter
	}

	numWarps := rows / 4
	if numWarps < 2 {
		numWarps = 2
	}
	lanes := numWarps * limits.WarpSize

	regCap := limits.MaxRegistersPerGroup / RegistersPerLane / limits.WarpSize * limits.WarpSize
	laneCap := limits.MaxLanesPerGroup / limits.WarpSize * limits.WarpSize
	if regCap < laneCap {
		laneCap = regCap
	}
	if lanes > laneCap {
		lanes = laneCap
	}
	if lanes < 2*limits.WarpSize {
		return 0, ErrResourceExhausted
	}

	return lanes, nil
}
