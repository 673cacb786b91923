// Package record_test contains unit tests for the passive event recorder.
package record_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/krylov/record"
)

func TestRecorder_CapturesSubscribedKinds(t *testing.T) {
	t.Parallel()

	r := record.New(record.AllocationCompleted | record.IterationComplete)

	r.OnAllocationStarted(record.MemoryRecord{Device: "ref", Bytes: 64})
	r.OnAllocationCompleted(record.MemoryRecord{Device: "ref", Bytes: 64, Location: 0xbeef})
	r.OnIterationComplete(record.IterationRecord{Item: 0, NumIterations: 2, ResidualNorm: 1e-12, AllStopped: true})

	// Unsubscribed kind: nothing captured.
	require.Empty(t, r.AllocationsStarted())

	allocs := r.AllocationsCompleted()
	require.Len(t, allocs, 1)
	require.Equal(t, 64, allocs[0].Bytes)
	require.Equal(t, uintptr(0xbeef), allocs[0].Location)

	iters := r.Iterations()
	require.Len(t, iters, 1)
	require.True(t, iters[0].AllStopped)
}

func TestRecorder_AppendOrderWithinKind(t *testing.T) {
	t.Parallel()

	r := record.New(record.CriterionCheckCompleted)
	for it := 0; it < 5; it++ {
		r.OnCriterionCheckCompleted(record.CriterionCheckRecord{Iteration: it})
	}

	recs := r.CriterionChecksCompleted()
	require.Len(t, recs, 5)
	for it, rec := range recs {
		require.Equal(t, it, rec.Iteration)
	}
}

func TestRecorder_UnifiedCriterionCheckSignature(t *testing.T) {
	t.Parallel()

	r := record.New(record.CriterionCheckCompleted)

	implicit := 0.25
	r.OnCriterionCheckCompleted(record.CriterionCheckRecord{Iteration: 1, ResidualNorm: 0.5, ImplicitNorm: &implicit})
	r.OnCriterionCheckCompleted(record.CriterionCheckRecord{Iteration: 2, ResidualNorm: 0.1})

	recs := r.CriterionChecksCompleted()
	require.Len(t, recs, 2)
	require.NotNil(t, recs[0].ImplicitNorm)
	require.Equal(t, 0.25, *recs[0].ImplicitNorm)
	require.Nil(t, recs[1].ImplicitNorm, "norm-free form carries nil, not zero")
}

func TestRecorder_NilAndClear(t *testing.T) {
	t.Parallel()

	// A nil recorder is a valid no-op observer.
	var nilRec *record.Recorder
	nilRec.OnIterationComplete(record.IterationRecord{})
	require.Nil(t, nilRec.Iterations())
	require.False(t, nilRec.Enabled(record.IterationComplete))

	r := record.New(record.AllKinds)
	r.OnFreeCompleted(record.MemoryRecord{Bytes: 8})
	r.OnObjectDeleted(record.ObjectRecord{Object: "workspace"})
	require.Len(t, r.FreesCompleted(), 1)
	require.Len(t, r.ObjectsDeleted(), 1)

	r.Clear()
	require.Empty(t, r.FreesCompleted())
	require.Empty(t, r.ObjectsDeleted())
	require.True(t, r.Enabled(record.FreeCompleted), "Clear keeps the subscription mask")
}

func TestRecorder_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	const goroutines, perG = 8, 50
	r := record.New(record.IterationComplete)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(item int) {
			defer wg.Done()
			for k := 0; k < perG; k++ {
				r.OnIterationComplete(record.IterationRecord{Item: item, NumIterations: k})
			}
		}(g)
	}
	wg.Wait()

	require.Len(t, r.Iterations(), goroutines*perG)
}
