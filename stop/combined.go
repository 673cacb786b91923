// SPDX-License-Identifier: MIT
// Package stop: OR-composition of criterion factories.
//
// Combination rules (enforced in tests):
//   - nil factory entries are silently dropped, wherever they appear,
//     as long as at least one non-nil entry remains;
//   - an empty sequence, or a sequence that is all nil after dropping,
//     fails with ErrUnsupportedConfiguration at construction time;
//   - constituents are consulted in the order given, and an item that
//     has already stopped is never re-marked, so the earliest-listed
//     criterion owns stopping_id on a simultaneous fire.

package stop

// Combine builds one factory from a sequence of constituent factories
// under OR semantics.
//
// Implementation:
//   - Stage 1: drop nil entries, preserving order.
//   - Stage 2: reject a configuration with zero survivors.
//
// Inputs:
//   - factories: ordered criterion factories; nil entries tolerated.
//
// Returns:
//   - Factory and nil, or nil and ErrUnsupportedConfiguration.
//
// Complexity:
//   - Time O(k) over k entries, Space O(k).
//
// AI-Hints:
//   - Order factories cheapest-first; the composite short-circuits
//     nothing (every constituent sees every check) but stopping ids
//     resolve first-wins.
func Combine(factories ...Factory) (Factory, error) {
	kept := make([]Factory, 0, len(factories))
	for _, f := range factories {
		if f != nil {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil, ErrUnsupportedConfiguration
	}

	return combinedFactory{factories: kept}, nil
}

type combinedFactory struct {
	factories []Factory
}

// Generate generates every constituent against the same problem; the
// first constituent error aborts generation.
func (f combinedFactory) Generate(p Problem) (Criterion, error) {
	criteria := make([]Criterion, len(f.factories))
	for i, cf := range f.factories {
		c, err := cf.Generate(p)
		if err != nil {
			return nil, err
		}
		criteria[i] = c
	}

	return &combinedCriterion{criteria: criteria}, nil
}

type combinedCriterion struct {
	criteria []Criterion
}

// Check consults every constituent in order. Finalization is performed
// exactly once, after the last constituent decided, so no constituent
// observes half-frozen statuses.
func (c *combinedCriterion) Check(iteration int, norms Norms, statuses []Status, finalize bool) (oneChanged, allStopped bool) {
	for _, crit := range c.criteria {
		changed, _ := crit.Check(iteration, norms, statuses, false)
		oneChanged = oneChanged || changed
	}
	if finalize {
		finalizeAll(statuses)
	}

	return oneChanged, finalize || AllStopped(statuses)
}
