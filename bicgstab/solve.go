// SPDX-License-Identifier: MIT
// Package bicgstab: the batch solve front door.
//
// Solve validates, plans, and binds everything before any item runs:
// configuration errors (bad shapes, impossible geometry, unusable
// stopping configuration) reject the whole batch up front, so a batch
// either runs completely or not at all. After that point every failure
// is per-item and lands in the returned status slice.

package bicgstab

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/krylov/batch"
	"github.com/katalvlaran/krylov/blockjacobi"
	"github.com/katalvlaran/krylov/coop"
	"github.com/katalvlaran/krylov/launch"
	"github.com/katalvlaran/krylov/record"
	"github.com/katalvlaran/krylov/stop"
)

// ItemStatus is the per-item outcome of one batch invocation. It is
// always populated, even for items that broke down: Iterations and
// ResidualNorm then describe the last computed iterate.
type ItemStatus struct {
	Converged    bool
	Breakdown    bool
	Iterations   int
	ResidualNorm float64
	StoppingID   uint8
}

// Solve runs the batched BiCGSTAB iteration on every item of the
// system A_i x_i = b_i.
//
// Implementation:
//   - Stage 1: validate the system and the group geometry.
//   - Stage 2: plan storage placement for the batch.
//   - Stage 3: bind one criterion set per item (criteria observe one
//     item each, so lanes of still-running items never contend).
//   - Stage 4: allocate the global workspace and fan items out across
//     the worker pool; each worker owns its fast arena and inverter.
//
// Inputs:
//   - a:    uniform batch matrix, square items.
//   - b:    right-hand sides, conformable to a.
//   - x:    initial guesses in, final iterates out.
//
// Returns:
//   - one ItemStatus per item and nil, or nil and a configuration
//     error (batch.ErrBadShape and friends, launch.ErrBadParameter,
//     launch.ErrResourceExhausted, stop generation errors) raised
//     before any item ran.
//
// Determinism:
//   - Per-item arithmetic is sequential and reduction order is fixed,
//     so results do not depend on the worker count.
func (s *Solver) Solve(a *batch.CSR, b, x *batch.MultiVector) ([]ItemStatus, error) {
	if err := batch.ValidateSystem(a, b, x); err != nil {
		return nil, err
	}
	if _, err := launch.Lanes(a.Rows, s.limits); err != nil {
		return nil, err
	}

	precElems := 0
	if s.blockJacobi && a.Rows <= blockjacobi.MaxBlockSize {
		precElems = blockjacobi.StorageElems(a.Rows)
	}
	cfg, err := launch.PlanStorage(a.Rows, 1, precElems, s.limits)
	if err != nil {
		return nil, err
	}

	// Bind criteria before any work: a stopping configuration that
	// cannot generate rejects the batch here.
	rhsNorms := make([]float64, a.Items)
	for i := range rhsNorms {
		bi, _ := b.Item(i) // in range, validated above
		rhsNorms[i] = floats.Norm(bi, 2)
	}
	criteria := make([]stop.Criterion, a.Items)
	s.rec.OnFactoryGenerateStarted(record.FactoryRecord{Factory: "stop", Input: "batch"})
	for i := range criteria {
		c, genErr := s.factory.Generate(stop.Problem{NumItems: 1, RHSNorms: rhsNorms[i : i+1]})
		if genErr != nil {
			return nil, genErr
		}
		criteria[i] = c
	}
	s.rec.OnFactoryGenerateCompleted(record.FactoryRecord{Factory: "stop", Input: "batch", Output: "criteria"})

	strideElems := cfg.GlobalStrideElems()
	globalBytes := a.Items * cfg.GlobalStrideBytes
	var global []float64
	s.rec.OnAllocationStarted(record.MemoryRecord{Device: "ref", Bytes: globalBytes})
	if strideElems > 0 {
		global = make([]float64, a.Items*strideElems)
	}
	s.rec.OnAllocationCompleted(record.MemoryRecord{Device: "ref", Bytes: globalBytes})

	workers := s.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, a.Items)

	statuses := make([]ItemStatus, a.Items)
	s.rec.OnApplyStarted(record.ApplyRecord{Operator: "batch_bicgstab", Item: -1})
	var wg sync.WaitGroup
	chunk := (a.Items + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, a.Items)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			s.runRange(a, b, x, cfg, criteria, global, strideElems, statuses, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	s.rec.OnApplyCompleted(record.ApplyRecord{Operator: "batch_bicgstab", Item: -1})

	s.rec.OnFreeStarted(record.MemoryRecord{Device: "ref", Bytes: globalBytes})
	s.rec.OnFreeCompleted(record.MemoryRecord{Device: "ref", Bytes: globalBytes})

	return statuses, nil
}

// runRange solves items [lo, hi) on one worker. The worker owns its
// fast arena and inverter; items touch only their own global slice, so
// workers never synchronize.
func (s *Solver) runRange(
	a *batch.CSR, b, x *batch.MultiVector,
	cfg launch.StorageConfig, criteria []stop.Criterion,
	global []float64, strideElems int,
	statuses []ItemStatus, lo, hi int,
) {
	shared := make([]float64, cfg.SharedElems())

	var invr *blockjacobi.Inverter
	if cfg.PrecElems > 0 {
		g, err := coop.NewGroup(a.Rows)
		if err == nil {
			invr, _ = blockjacobi.NewInverter(g)
		}
	}

	for i := lo; i < hi; i++ {
		var globalItem []float64
		if strideElems > 0 {
			globalItem = global[i*strideElems : (i+1)*strideElems]
		}
		ws := carveWorkspace(cfg, a.Rows, shared, globalItem)

		var prec *blockjacobi.Preconditioner
		if invr != nil {
			s.rec.OnOperationLaunched(record.OperationRecord{Device: "ref", Name: "blockjacobi_generate"})
			p, err := blockjacobi.Generate(invr, a, i, ws.prec)
			s.rec.OnOperationCompleted(record.OperationRecord{Device: "ref", Name: "blockjacobi_generate"})
			if err == nil && p.OK() {
				prec = p
			}
			// A singular block runs this item unpreconditioned.
		}

		bi, _ := b.Item(i)
		xi, _ := x.Item(i)
		eng := engine{a: a, item: i, prec: prec, crit: criteria[i], rec: s.rec, ws: ws}
		r := eng.run(bi, xi)
		statuses[i] = ItemStatus{
			Converged:    !r.breakdown && r.stoppingID == stop.IDResidual,
			Breakdown:    r.breakdown,
			Iterations:   r.iterations,
			ResidualNorm: r.residual,
			StoppingID:   r.stoppingID,
		}
	}
}
