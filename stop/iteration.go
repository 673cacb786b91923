// SPDX-License-Identifier: MIT
// Package stop: iteration-count limit criterion.

package stop

// Iteration returns a factory for the iteration-count limit: every item
// still running stops once the iteration index reaches maxIters.
//
// Inputs:
//   - maxIters: limit, must be > 0.
//
// Errors:
//   - ErrBadParameter when maxIters <= 0 (configuration-time, never at
//     check time).
//
// Complexity:
//   - Check is O(items) per call, allocation-free.
func Iteration(maxIters int) (Factory, error) {
	if maxIters <= 0 {
		return nil, ErrBadParameter
	}

	return iterationFactory{maxIters: maxIters}, nil
}

type iterationFactory struct {
	maxIters int
}

func (f iterationFactory) Generate(p Problem) (Criterion, error) {
	if err := validateProblem(p); err != nil {
		return nil, err
	}

	return &iterationCriterion{maxIters: f.maxIters}, nil
}

type iterationCriterion struct {
	maxIters int
}

// Check fires for every running item once iteration >= maxIters.
func (c *iterationCriterion) Check(iteration int, _ Norms, statuses []Status, finalize bool) (oneChanged, allStopped bool) {
	if iteration >= c.maxIters {
		for i := range statuses {
			if statuses[i].Stop(IDIteration) {
				oneChanged = true
			}
		}
	}
	if finalize {
		finalizeAll(statuses)
	}

	return oneChanged, finalize || AllStopped(statuses)
}
