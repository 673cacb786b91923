// SPDX-License-Identifier: MIT
// Package stop: the check protocol shared by all criteria.

package stop

// Norms carries the per-item norm estimates available at a check point.
// Residual is the recurrence residual-norm estimate (always present on
// the iteration path; may be nil for norm-free checks). Implicit is the
// optional implicit-residual estimate; nil when the caller has none —
// there is exactly one check signature, the legacy norm-free variant is
// expressed by leaving Implicit nil.
type Norms struct {
	Residual []float64
	Implicit []float64
}

// Criterion decides, once per iteration, which items stop.
//
// Check protocol:
//   - A criterion may mark items via Status.Stop with its own id, and
//     must never unmark or re-mark an item (Stop enforces this).
//   - oneChanged reports whether this call changed at least one status.
//   - allStopped reports whether, accounting for finalize, every item in
//     statuses is now done.
//   - finalize=true instructs the criterion to freeze statuses via
//     Finalize after its decision; finalized items are immutable.
//
// Criteria are immutable after Generate and safe for concurrent Check
// calls on disjoint status slices — the batch engine checks each item
// from its own execution group.
type Criterion interface {
	Check(iteration int, norms Norms, statuses []Status, finalize bool) (oneChanged, allStopped bool)
}

// Problem describes the batch a criterion is generated for.
// RHSNorms carries the per-item right-hand-side norms used as the
// baseline of relative-residual checks; it may be nil for criteria that
// do not need it.
type Problem struct {
	NumItems int
	RHSNorms []float64
}

// Factory builds a Criterion bound to one batch invocation. Parameter
// validation happens at factory construction; Generate only validates
// the problem descriptor.
type Factory interface {
	Generate(p Problem) (Criterion, error)
}

// validateProblem is the shared Generate-side guard.
func validateProblem(p Problem) error {
	if p.NumItems <= 0 {
		return ErrBadProblem
	}
	if p.RHSNorms != nil && len(p.RHSNorms) != p.NumItems {
		return ErrBadProblem
	}

	return nil
}

// finalizeAll freezes every status in the slice; shared by criteria so
// the finalize flag behaves identically across the set.
func finalizeAll(statuses []Status) {
	for i := range statuses {
		statuses[i].Finalize()
	}
}
