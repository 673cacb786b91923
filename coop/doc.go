// Package coop models the warp-synchronous execution group that batched
// kernels cooperate through: a small fixed set of lanes that exchange
// values only via group-collective broadcast, shuffle and reduction.
//
// The coop package provides:
//
//   - Group, the lockstep lane set sized once at construction.
//   - Shuffle/Broadcast collectives over lane-indexed slices.
//   - Reduce for inner products, norms and extrema.
//   - ChoosePivot, the magnitude-argmax collective used by pivoted
//     Gauss-Jordan elimination (lowest lane wins ties).
//
// The reference backend emulates lockstep execution on a single
// goroutine: every collective walks all lanes in a fixed order, so the
// group can never diverge and results are bitwise deterministic. A lane
// that has logically failed keeps participating in every collective;
// failure is carried as a sticky flag by the caller, never as an early
// return.
package coop
