// Package stop_test: OR-composition and null-tolerance rules.
package stop_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/krylov/stop"
)

// neverFires is a criterion/factory pair that never stops anything;
// used to prove OR composition does not require agreement.
type neverFires struct{}

func (neverFires) Generate(stop.Problem) (stop.Criterion, error) { return neverFires{}, nil }

func (neverFires) Check(_ int, _ stop.Norms, statuses []stop.Status, finalize bool) (bool, bool) {
	if finalize {
		for i := range statuses {
			statuses[i].Finalize()
		}
	}
	return false, finalize || stop.AllStopped(statuses)
}

// firesAt stops every running item once iteration >= at, with its own id.
type firesAt struct {
	at int
	id uint8
}

func (f firesAt) Generate(stop.Problem) (stop.Criterion, error) { return f, nil }

func (f firesAt) Check(iteration int, _ stop.Norms, statuses []stop.Status, finalize bool) (bool, bool) {
	changed := false
	if iteration >= f.at {
		for i := range statuses {
			if statuses[i].Stop(f.id) {
				changed = true
			}
		}
	}
	if finalize {
		for i := range statuses {
			statuses[i].Finalize()
		}
	}
	return changed, finalize || stop.AllStopped(statuses)
}

// runUntilStopped drives a criterion like the engine does: one check per
// iteration, returning the iteration at which all items stopped.
func runUntilStopped(t *testing.T, c stop.Criterion, items, limit int) int {
	t.Helper()

	statuses := make([]stop.Status, items)
	for it := 0; it <= limit; it++ {
		if _, all := c.Check(it, stop.Norms{}, statuses, false); all {
			return it
		}
	}
	t.Fatalf("criterion never stopped within %d iterations", limit)
	return -1
}

func TestCombine_ORSemantics(t *testing.T) {
	t.Parallel()

	iter10, err := stop.Iteration(10)
	require.NoError(t, err)

	// Iteration limit 10 combined with a criterion that never fires
	// stops after exactly 10 iterations.
	f, err := stop.Combine(iter10, neverFires{})
	require.NoError(t, err)
	c, err := f.Generate(stop.Problem{NumItems: 4})
	require.NoError(t, err)
	require.Equal(t, 10, runUntilStopped(t, c, 4, 100))

	// A constituent firing at iteration 3 wins over the limit of 10.
	f, err = stop.Combine(iter10, firesAt{at: 3, id: stop.IDTime})
	require.NoError(t, err)
	c, err = f.Generate(stop.Problem{NumItems: 4})
	require.NoError(t, err)
	require.Equal(t, 3, runUntilStopped(t, c, 4, 100))
}

func TestCombine_FirstListedOwnsStoppingID(t *testing.T) {
	t.Parallel()

	// Both constituents fire at iteration 2; the earlier one must own
	// stopping_id.
	f, err := stop.Combine(firesAt{at: 2, id: stop.IDTime}, firesAt{at: 2, id: stop.IDResidual})
	require.NoError(t, err)
	c, err := f.Generate(stop.Problem{NumItems: 2})
	require.NoError(t, err)

	statuses := make([]stop.Status, 2)
	changed, all := c.Check(2, stop.Norms{}, statuses, false)
	require.True(t, changed)
	require.True(t, all)
	for i := range statuses {
		require.Equal(t, stop.IDTime, statuses[i].ID())
	}
}

func TestCombine_NullTolerance(t *testing.T) {
	t.Parallel()

	iter10, err := stop.Iteration(10)
	require.NoError(t, err)

	// {valid, nil} succeeds and behaves as {valid}.
	f, err := stop.Combine(iter10, nil)
	require.NoError(t, err)
	c, err := f.Generate(stop.Problem{NumItems: 1})
	require.NoError(t, err)
	require.Equal(t, 10, runUntilStopped(t, c, 1, 100))

	// {nil, valid} also succeeds: position does not matter.
	f, err = stop.Combine(nil, iter10)
	require.NoError(t, err)
	_, err = f.Generate(stop.Problem{NumItems: 1})
	require.NoError(t, err)

	// {nil, nil} and {} fail with the configuration sentinel.
	_, err = stop.Combine(nil, nil)
	require.ErrorIs(t, err, stop.ErrUnsupportedConfiguration)
	_, err = stop.Combine()
	require.ErrorIs(t, err, stop.ErrUnsupportedConfiguration)
}

func TestCombine_FinalizeFreezesOnce(t *testing.T) {
	t.Parallel()

	f, err := stop.Combine(firesAt{at: 0, id: stop.IDIteration})
	require.NoError(t, err)
	c, err := f.Generate(stop.Problem{NumItems: 3})
	require.NoError(t, err)

	statuses := make([]stop.Status, 3)
	_, all := c.Check(0, stop.Norms{}, statuses, true)
	require.True(t, all)
	for i := range statuses {
		require.True(t, statuses[i].IsFinalized())
	}

	// Subsequent checks cannot alter finalized items.
	changed, _ := c.Check(5, stop.Norms{}, statuses, false)
	require.False(t, changed)
	for i := range statuses {
		require.Equal(t, stop.IDIteration, statuses[i].ID())
	}
}

func TestTimeCriterion_DeadlineViaInjectedClock(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	current := base
	clock := func() time.Time { return current }

	f, err := stop.TimeWithClock(time.Second, clock)
	require.NoError(t, err)
	c, err := f.Generate(stop.Problem{NumItems: 2})
	require.NoError(t, err)

	statuses := make([]stop.Status, 2)
	changed, all := c.Check(0, stop.Norms{}, statuses, false)
	require.False(t, changed)
	require.False(t, all)

	current = base.Add(2 * time.Second)
	changed, all = c.Check(1, stop.Norms{}, statuses, false)
	require.True(t, changed)
	require.True(t, all)
	require.Equal(t, stop.IDTime, statuses[0].ID())
}
