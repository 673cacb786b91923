// SPDX-License-Identifier: MIT
// Package stop: residual-norm threshold criterion.
// The decision uses the caller-supplied residual-norm estimate for the
// item; implicit norms ride along in Norms for observers but do not
// drive the decision.

package stop

// ResidualMode selects the baseline the residual norm is compared
// against.
type ResidualMode uint8

const (
	// Relative compares against tol * ||b|| of the item (default).
	Relative ResidualMode = iota
	// Absolute compares against tol directly.
	Absolute
)

// ResidualNorm returns a factory for the residual threshold criterion.
//
// Inputs:
//   - tol:  non-negative finite tolerance.
//   - mode: Relative (needs Problem.RHSNorms at Generate) or Absolute.
//
// Errors:
//   - ErrBadParameter when tol is negative or NaN, or mode is unknown.
//   - Relative mode additionally fails Generate with ErrBadProblem when
//     the problem carries no baseline norms.
//
// Notes:
//   - Check expects norms and statuses sized to the generated problem;
//     the batch engine generates one criterion set per item (a problem
//     of size one), so every Check sees matching length-one views.
func ResidualNorm(tol float64, mode ResidualMode) (Factory, error) {
	if tol < 0 || tol != tol || mode > Absolute {
		return nil, ErrBadParameter
	}

	return residualFactory{tol: tol, mode: mode}, nil
}

type residualFactory struct {
	tol  float64
	mode ResidualMode
}

func (f residualFactory) Generate(p Problem) (Criterion, error) {
	if err := validateProblem(p); err != nil {
		return nil, err
	}
	c := &residualCriterion{tol: f.tol}
	if f.mode == Relative {
		if p.RHSNorms == nil {
			return nil, ErrBadProblem
		}
		// Bind per-item thresholds once; the check path stays a bare
		// comparison.
		c.thresholds = make([]float64, p.NumItems)
		for i, n := range p.RHSNorms {
			c.thresholds[i] = f.tol * n
		}
	}

	return c, nil
}

type residualCriterion struct {
	tol        float64
	thresholds []float64 // nil in Absolute mode
}

// Check stops item i when norms.Residual[i] drops to or below its
// threshold. A nil Residual leaves every item untouched — norm-free
// check points cannot fire this criterion.
func (c *residualCriterion) Check(_ int, norms Norms, statuses []Status, finalize bool) (oneChanged, allStopped bool) {
	if norms.Residual != nil {
		var threshold float64
		for i := range statuses {
			if statuses[i].HasStopped() {
				continue
			}
			if c.thresholds != nil {
				threshold = c.thresholds[i]
			} else {
				threshold = c.tol
			}
			if norms.Residual[i] <= threshold && statuses[i].Stop(IDResidual) {
				oneChanged = true
			}
		}
	}
	if finalize {
		finalizeAll(statuses)
	}

	return oneChanged, finalize || AllStopped(statuses)
}
