// SPDX-License-Identifier: MIT
// Package stop: wall-clock time limit criterion.
// The limit is checked once per iteration, never preemptively: a long
// iteration overruns the limit and is cut at the next check point.

package stop

import "time"

// Time returns a factory for the wall-clock limit. The clock starts at
// Generate, i.e. when the batch invocation binds its criteria, not at
// factory construction.
//
// Inputs:
//   - limit: positive duration budget for the whole batch invocation.
//
// Errors:
//   - ErrBadParameter when limit <= 0.
func Time(limit time.Duration) (Factory, error) {
	if limit <= 0 {
		return nil, ErrBadParameter
	}

	return timeFactory{limit: limit}, nil
}

// TimeWithClock is Time with an injectable clock, for deterministic
// tests. now must not be nil.
func TimeWithClock(limit time.Duration, now func() time.Time) (Factory, error) {
	if limit <= 0 || now == nil {
		return nil, ErrBadParameter
	}

	return timeFactory{limit: limit, now: now}, nil
}

type timeFactory struct {
	limit time.Duration
	now   func() time.Time
}

func (f timeFactory) Generate(p Problem) (Criterion, error) {
	if err := validateProblem(p); err != nil {
		return nil, err
	}
	clock := f.now
	if clock == nil {
		clock = time.Now
	}

	return &timeCriterion{deadline: clock().Add(f.limit), now: clock}, nil
}

type timeCriterion struct {
	deadline time.Time
	now      func() time.Time
}

func (c *timeCriterion) Check(_ int, _ Norms, statuses []Status, finalize bool) (oneChanged, allStopped bool) {
	if !c.now().Before(c.deadline) {
		for i := range statuses {
			if statuses[i].Stop(IDTime) {
				oneChanged = true
			}
		}
	}
	if finalize {
		finalizeAll(statuses)
	}

	return oneChanged, finalize || AllStopped(statuses)
}
