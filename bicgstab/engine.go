// SPDX-License-Identifier: MIT
// Package bicgstab: the per-item Krylov iteration state machine.
//
// One engine runs one batch item to termination:
//
//	Init -> Iterate -> {Converged | MaxIterationsReached | Breakdown} -> Done
//
// Termination is checked once per full iteration through the bound
// criterion set, plus the early convergence probe on s. Breakdown
// (vanishing rho, <r̂,v> or <t,t>) is local to the item: the engine
// keeps the last computed x and reports the condition, it never aborts
// sibling items.

package bicgstab

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/krylov/batch"
	"github.com/katalvlaran/krylov/blockjacobi"
	"github.com/katalvlaran/krylov/record"
	"github.com/katalvlaran/krylov/stop"
)

// breakdownThreshold is eps^2 of the working precision: inner products
// below it make the recurrence undefined.
const breakdownThreshold = 0x1p-104

type engine struct {
	a    *batch.CSR
	item int
	prec *blockjacobi.Preconditioner // nil runs unpreconditioned
	crit stop.Criterion
	rec  *record.Recorder
	ws   workspace
}

type itemResult struct {
	iterations int
	residual   float64
	breakdown  bool
	stoppingID uint8
}

// applyPrec computes z = M^-1 y, degrading to the identity when no
// preconditioner is bound.
func (e *engine) applyPrec(y, z []float64) {
	if e.prec != nil {
		e.prec.Apply(y, z)

		return
	}
	copy(z, y)
}

// run drives one item from the caller's initial guess to termination.
// b is the item's right-hand side; xOut carries the initial guess in
// and the final iterate out.
//
// Implementation:
//   - Init: r = b - A*x, r̂ = r, rho = alpha = omega = 1, p = v = 0.
//   - Iterate: the BiCGSTAB recurrence with the preconditioner fused in
//     through pHat/sHat; the criterion set is consulted at the top of
//     every iteration and once more mid-iteration on s.
//   - Done: statuses are frozen through a finalizing check and the
//     iteration-complete milestone fires exactly once.
func (e *engine) run(b, xOut []float64) itemResult {
	ws := e.ws
	copy(ws.x, xOut)

	// r = b - A*x, shadow residual pinned to r0.
	e.a.SpMV(e.item, ws.x, ws.r)
	for i := range ws.r {
		ws.r[i] = b[i] - ws.r[i]
	}
	copy(ws.rHat, ws.r)
	for i := range ws.p {
		ws.p[i] = 0
		ws.v[i] = 0
	}
	rho, alpha, omega := 1.0, 1.0, 1.0

	var (
		statuses [1]stop.Status
		normBuf  [1]float64
		res      itemResult
	)
	view := statuses[:]
	resNorm := floats.Norm(ws.r, 2)

	iter := 0
	for ; ; iter++ {
		resNorm = floats.Norm(ws.r, 2)
		normBuf[0] = resNorm
		e.rec.OnCriterionCheckStarted(record.CriterionCheckRecord{
			Item: e.item, Iteration: iter, ResidualNorm: resNorm,
		})
		changed, all := e.crit.Check(iter, stop.Norms{Residual: normBuf[:]}, view, false)
		e.rec.OnCriterionCheckCompleted(record.CriterionCheckRecord{
			Item: e.item, Iteration: iter, ResidualNorm: resNorm,
			StoppingID: view[0].ID(), OneChanged: changed, AllStopped: all,
		})
		if view[0].HasStopped() {
			res.iterations = iter

			break
		}

		rhoNew := floats.Dot(ws.rHat, ws.r)
		if math.Abs(rhoNew) < breakdownThreshold {
			res.breakdown = true
			res.iterations = iter

			break
		}
		beta := (rhoNew / rho) * (alpha / omega)
		for i := range ws.p {
			ws.p[i] = ws.r[i] + beta*(ws.p[i]-omega*ws.v[i])
		}
		e.applyPrec(ws.p, ws.pHat)
		e.a.SpMV(e.item, ws.pHat, ws.v)

		den := floats.Dot(ws.rHat, ws.v)
		if math.Abs(den) < breakdownThreshold {
			res.breakdown = true
			res.iterations = iter

			break
		}
		alpha = rhoNew / den
		for i := range ws.s {
			ws.s[i] = ws.r[i] - alpha*ws.v[i]
		}

		// Early convergence probe: s is the residual of the half-step
		// iterate x + alpha*pHat.
		sNorm := floats.Norm(ws.s, 2)
		normBuf[0] = sNorm
		e.rec.OnCriterionCheckStarted(record.CriterionCheckRecord{
			Item: e.item, Iteration: iter, ResidualNorm: resNorm, ImplicitNorm: &sNorm,
		})
		changed, all = e.crit.Check(iter, stop.Norms{Residual: normBuf[:], Implicit: normBuf[:]}, view, false)
		e.rec.OnCriterionCheckCompleted(record.CriterionCheckRecord{
			Item: e.item, Iteration: iter, ResidualNorm: resNorm, ImplicitNorm: &sNorm,
			StoppingID: view[0].ID(), OneChanged: changed, AllStopped: all,
		})
		if view[0].HasStopped() {
			floats.AddScaled(ws.x, alpha, ws.pHat)
			copy(ws.r, ws.s)
			resNorm = sNorm
			res.iterations = iter + 1

			break
		}

		e.applyPrec(ws.s, ws.sHat)
		e.a.SpMV(e.item, ws.sHat, ws.t)
		tt := floats.Dot(ws.t, ws.t)
		if tt < breakdownThreshold {
			res.breakdown = true
			res.iterations = iter

			break
		}
		omega = floats.Dot(ws.t, ws.s) / tt

		floats.AddScaled(ws.x, alpha, ws.pHat)
		floats.AddScaled(ws.x, omega, ws.sHat)
		for i := range ws.r {
			ws.r[i] = ws.s[i] - omega*ws.t[i]
		}
		rho = rhoNew
	}

	// Freeze the status so late observers can never flip it.
	normBuf[0] = resNorm
	e.crit.Check(iter, stop.Norms{Residual: normBuf[:]}, view, true)

	copy(xOut, ws.x)
	res.residual = resNorm
	res.stoppingID = view[0].ID()
	e.rec.OnIterationComplete(record.IterationRecord{
		Item:          e.item,
		NumIterations: res.iterations,
		ResidualNorm:  resNorm,
		AllStopped:    true,
	})

	return res
}
